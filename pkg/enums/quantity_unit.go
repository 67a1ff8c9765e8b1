package enums

import "fmt"

// QuantityUnit is the unit a cart line is measured in.
type QuantityUnit string

const (
	QuantityUnitKg     QuantityUnit = "kg"
	QuantityUnitPieces QuantityUnit = "pieces"
)

var validQuantityUnits = []QuantityUnit{
	QuantityUnitKg,
	QuantityUnitPieces,
}

// String implements fmt.Stringer.
func (u QuantityUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known QuantityUnit.
func (u QuantityUnit) IsValid() bool {
	for _, candidate := range validQuantityUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseQuantityUnit converts raw input into a QuantityUnit.
func ParseQuantityUnit(value string) (QuantityUnit, error) {
	for _, candidate := range validQuantityUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quantity unit %q", value)
}
