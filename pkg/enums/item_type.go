package enums

import "fmt"

// ItemType identifies one of the two product lines sold by the shop.
type ItemType string

const (
	ItemTypeBroiler ItemType = "broiler"
	ItemTypeCountry ItemType = "country"
)

var validItemTypes = []ItemType{
	ItemTypeBroiler,
	ItemTypeCountry,
}

// ItemTypes returns every known item type in catalog order.
func ItemTypes() []ItemType {
	out := make([]ItemType, len(validItemTypes))
	copy(out, validItemTypes)
	return out
}

// String implements fmt.Stringer.
func (i ItemType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemType.
func (i ItemType) IsValid() bool {
	for _, candidate := range validItemTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemType converts raw input into an ItemType.
func ParseItemType(value string) (ItemType, error) {
	for _, candidate := range validItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item type %q", value)
}
