package entities

import (
	"fmt"
	"strings"
	"time"
)

// CargoStatus is the lifecycle state of a cargo
type CargoStatus string

const (
	StatusPlanned            CargoStatus = "Planned"
	StatusPendingNomination  CargoStatus = "Pending Nomination"
	StatusPendingTLApproval  CargoStatus = "Pending TL Approval"
	StatusNominationReleased CargoStatus = "Nomination Released"
	StatusLoading            CargoStatus = "Loading"
	StatusCompletedLoading   CargoStatus = "Completed Loading"
	StatusInRoad             CargoStatus = "In-Road (Pending Discharge)"
	StatusDischargeComplete  CargoStatus = "Discharge Complete"
)

var knownStatuses = []CargoStatus{
	StatusPlanned,
	StatusPendingNomination,
	StatusPendingTLApproval,
	StatusNominationReleased,
	StatusLoading,
	StatusCompletedLoading,
	StatusInRoad,
	StatusDischargeComplete,
}

// ParseCargoStatus maps a status label onto a known status, ignoring case and
// punctuation. Unknown labels are kept verbatim.
func ParseCargoStatus(s string) CargoStatus {
	key := statusKey(s)
	for _, status := range knownStatuses {
		if statusKey(string(status)) == key {
			return status
		}
	}
	return CargoStatus(strings.TrimSpace(s))
}

func statusKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsKnown reports whether the status is one of the known lifecycle states
func (s CargoStatus) IsKnown() bool {
	for _, status := range knownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsCompleted reports whether loading or discharge has finished
func (s CargoStatus) IsCompleted() bool {
	return s == StatusCompletedLoading || s == StatusDischargeComplete
}

// String returns the status label
func (s CargoStatus) String() string {
	return string(s)
}

// Cargo is an actual vessel lifting against a contract
type Cargo struct {
	ID            string
	ContractID    string
	MonthlyPlanID string
	VesselName    *string // nil = vessel to be assigned
	ProductName   string
	Quantity      Quantity
	Status        CargoStatus
	LaycanWindow  string

	FiveNDDate      *time.Time
	FiveNDCompleted bool

	// TNGIssued is the nomination document flag (nil = not tracked)
	TNGIssued *bool
}

// NewCargo creates a validated Cargo
func NewCargo(id, contractID, productName string, quantity Quantity, status CargoStatus) (*Cargo, error) {
	if id == "" {
		return nil, fmt.Errorf("cargo id cannot be empty")
	}
	if contractID == "" {
		return nil, fmt.Errorf("contract id cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}

	return &Cargo{
		ID:          id,
		ContractID:  contractID,
		ProductName: productName,
		Quantity:    quantity,
		Status:      status,
	}, nil
}

// IsTBA reports whether no vessel has been assigned yet
func (c *Cargo) IsTBA() bool {
	return c.VesselName == nil || strings.TrimSpace(*c.VesselName) == ""
}

// Vessel returns the vessel name, or "TBA" when unassigned
func (c *Cargo) Vessel() string {
	if c.IsTBA() {
		return "TBA"
	}
	return *c.VesselName
}
