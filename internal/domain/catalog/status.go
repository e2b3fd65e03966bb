package catalog

import "strings"

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusSold      Status = "SOLD"
	StatusReserved  Status = "RESERVED"
)

var Statuses = []Status{StatusAvailable, StatusSold, StatusReserved}

// ParseStatus accepts any casing ("sold", "Sold") and reports whether the
// value is one of the known statuses.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusSold:
		return StatusSold, true
	case StatusReserved:
		return StatusReserved, true
	default:
		return "", false
	}
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}
