package enums

import "fmt"

// ActivatableProductType identifies which physical product family a claimable
// QR code belongs to.
type ActivatableProductType string

const (
	ProductTypePetTag          ActivatableProductType = "pet_tag"
	ProductTypeBusinessDisplay ActivatableProductType = "business_display"
)

var validActivatableProductTypes = []ActivatableProductType{
	ProductTypePetTag,
	ProductTypeBusinessDisplay,
}

// String implements fmt.Stringer.
func (p ActivatableProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ActivatableProductType.
func (p ActivatableProductType) IsValid() bool {
	for _, candidate := range validActivatableProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseActivatableProductType converts raw input into an ActivatableProductType.
func ParseActivatableProductType(value string) (ActivatableProductType, error) {
	for _, candidate := range validActivatableProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
