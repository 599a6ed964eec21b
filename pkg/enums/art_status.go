package enums

import "fmt"

// ArtStatus tracks a display artwork through customer approval.
type ArtStatus string

const (
	ArtStatusDraft     ArtStatus = "draft"
	ArtStatusSubmitted ArtStatus = "submitted"
	ArtStatusApproved  ArtStatus = "approved"
)

var validArtStatuses = []ArtStatus{
	ArtStatusDraft,
	ArtStatusSubmitted,
	ArtStatusApproved,
}

// String implements fmt.Stringer.
func (a ArtStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ArtStatus.
func (a ArtStatus) IsValid() bool {
	for _, candidate := range validArtStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseArtStatus converts raw input into an ArtStatus.
func ParseArtStatus(value string) (ArtStatus, error) {
	for _, candidate := range validArtStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid art status %q", value)
}
