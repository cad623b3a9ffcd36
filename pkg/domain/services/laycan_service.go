package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// laycanPattern matches "5", "5-10", "28-3", "28 Jan - 3 Feb", "5 to 10"
var laycanPattern = regexp.MustCompile(
	`^(\d{1,2})(?:\s*([a-z]{3,9})\.?)?(?:\s*(?:-|–|—|to)\s*(\d{1,2})(?:\s*([a-z]{3,9})\.?)?)?$`,
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ParseLaycan converts a free-text laycan window into a concrete date range, interpreting
// bare day numbers against the reference month and year.
//
// When the end day is smaller than the start day the window rolls into the following month
// (and year, for December). A written month name is placed in the year that keeps it within
// six months of the reference month. This is a syntactic heuristic: "30-2" always means 30th to the
// 2nd of the next month. Unparseable text yields an invalid range, never an error.
func ParseLaycan(text string, month, year int) entities.LaycanRange {
	if month < 1 || month > 12 || year <= 0 {
		return entities.LaycanRange{}
	}

	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return entities.LaycanRange{}
	}

	m := laycanPattern.FindStringSubmatch(normalized)
	if m == nil {
		return entities.LaycanRange{}
	}

	startDay, _ := strconv.Atoi(m[1])
	endDay := startDay
	if m[3] != "" {
		endDay, _ = strconv.Atoi(m[3])
	}

	startMonth, ok := monthFromName(m[2])
	if !ok {
		return entities.LaycanRange{}
	}
	endMonth, ok := monthFromName(m[4])
	if !ok {
		return entities.LaycanRange{}
	}

	wraps := endDay < startDay
	ref := monthIndex(year, month)
	var startIdx, endIdx int
	switch {
	case startMonth != 0 && endMonth != 0:
		startIdx = nearestMonthIndex(ref, startMonth)
		endIdx = startIdx + (endMonth-startMonth+12)%12
		if endIdx == startIdx && wraps {
			return entities.LaycanRange{}
		}
	case startMonth != 0:
		startIdx = nearestMonthIndex(ref, startMonth)
		endIdx = startIdx
		if wraps {
			endIdx++
		}
	case endMonth != 0:
		endIdx = nearestMonthIndex(ref, endMonth)
		startIdx = endIdx
		if wraps {
			startIdx--
		}
	default:
		startIdx = ref
		endIdx = startIdx
		if wraps {
			endIdx++
		}
	}

	start, ok := dayInMonth(startIdx, startDay)
	if !ok {
		return entities.LaycanRange{}
	}
	end, ok := dayInMonth(endIdx, endDay)
	if !ok {
		return entities.LaycanRange{}
	}

	return entities.LaycanRange{Valid: true, Start: start, End: end}
}

// monthFromName resolves a month name or abbreviation; an empty name resolves to 0
func monthFromName(name string) (int, bool) {
	if name == "" {
		return 0, true
	}
	for i, full := range monthNames {
		if strings.HasPrefix(full, name) {
			return i + 1, true
		}
	}
	return 0, false
}

func monthIndex(year, month int) int {
	return year*12 + month - 1
}

// nearestMonthIndex returns the index of month in the year closest to ref, within (-6, +6]
func nearestMonthIndex(ref, month int) int {
	idx := monthIndex(ref/12, month)
	switch diff := idx - ref; {
	case diff > 6:
		idx -= 12
	case diff <= -6:
		idx += 12
	}
	return idx
}

// dayInMonth builds a UTC midnight date, rejecting days the month does not have
func dayInMonth(idx, day int) (time.Time, bool) {
	year, month := idx/12, idx%12+1
	if day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// DaysInMonth returns the number of days in a calendar month
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly normalizes a timestamp to UTC midnight of its calendar date in loc
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
