package enums

import "fmt"

// CheckinMethod records how an attendance entry was produced.
type CheckinMethod string

const (
	CheckinMethodCode   CheckinMethod = "code"
	CheckinMethodManual CheckinMethod = "manual"
)

var validCheckinMethods = []CheckinMethod{
	CheckinMethodCode,
	CheckinMethodManual,
}

// String implements fmt.Stringer.
func (c CheckinMethod) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckinMethod.
func (c CheckinMethod) IsValid() bool {
	for _, candidate := range validCheckinMethods {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckinMethod converts raw input into a CheckinMethod.
func ParseCheckinMethod(value string) (CheckinMethod, error) {
	for _, candidate := range validCheckinMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkin method %q", value)
}
