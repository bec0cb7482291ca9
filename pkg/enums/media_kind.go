package enums

import "fmt"

// MediaKind classifies what an uploaded object is attached to.
type MediaKind string

const (
	MediaKindOfferPhoto   MediaKind = "OFFER_PHOTO"
	MediaKindGymPhoto     MediaKind = "GYM_PHOTO"
	MediaKindProfilePhoto MediaKind = "PROFILE_PHOTO"
)

var validMediaKinds = []MediaKind{
	MediaKindOfferPhoto,
	MediaKindGymPhoto,
	MediaKindProfilePhoto,
}

func (m MediaKind) String() string {
	return string(m)
}

// IsValid reports whether the kind is a known value.
func (m MediaKind) IsValid() bool {
	for _, valid := range validMediaKinds {
		if m == valid {
			return true
		}
	}
	return false
}

// ParseMediaKind converts a raw string into a MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	kind := MediaKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid media kind: %q", value)
	}
	return kind, nil
}
