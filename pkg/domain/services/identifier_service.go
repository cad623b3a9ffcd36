package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// IDComparator orders record identifiers with numeric awareness, so "MP9" sorts before "MP10"
// and "9" before "10".
type IDComparator struct {
	idPattern *regexp.Regexp
}

// NewIDComparator creates a new identifier comparator with the default pattern
func NewIDComparator() *IDComparator {
	// Pattern matches ids like 42, MP-0042, CARGO17
	pattern := regexp.MustCompile(`^(\D*?)(\d+)$`)
	return &IDComparator{
		idPattern: pattern,
	}
}

// CompareIDs compares two identifiers.
// Returns: -1 if id1 < id2, 0 if equal, 1 if id1 > id2
func (c *IDComparator) CompareIDs(id1, id2 string) int {
	if id1 == id2 {
		return 0
	}

	prefix1, num1, err1 := c.parseID(id1)
	prefix2, num2, err2 := c.parseID(id2)

	// If either parsing fails, fall back to string comparison
	if err1 != nil || err2 != nil {
		return strings.Compare(id1, id2)
	}

	if prefix1 != prefix2 {
		return strings.Compare(prefix1, prefix2)
	}

	if num1 < num2 {
		return -1
	} else if num1 > num2 {
		return 1
	}
	// Same value with different zero padding
	return strings.Compare(id1, id2)
}

// Less reports whether id1 orders before id2
func (c *IDComparator) Less(id1, id2 string) bool {
	return c.CompareIDs(id1, id2) < 0
}

// SortIDs sorts identifiers in place
func (c *IDComparator) SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return c.Less(ids[i], ids[j])
	})
}

// parseID extracts the prefix and numeric portion from an identifier
func (c *IDComparator) parseID(id string) (string, uint64, error) {
	matches := c.idPattern.FindStringSubmatch(id)
	if len(matches) != 3 {
		return "", 0, fmt.Errorf("invalid id format: %s", id)
	}

	num, err := strconv.ParseUint(matches[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid numeric portion in id %s: %v", id, err)
	}

	return matches[1], num, nil
}
