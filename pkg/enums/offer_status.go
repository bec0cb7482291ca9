package enums

import "fmt"

// OfferStatus tracks the moderation state of an offer.
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusApproved OfferStatus = "APPROVED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

var validOfferStatuses = []OfferStatus{
	OfferStatusPending,
	OfferStatusApproved,
	OfferStatusRejected,
}

func (o OfferStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OfferStatus.
func (o OfferStatus) IsValid() bool {
	for _, candidate := range validOfferStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOfferStatus converts raw input into an OfferStatus.
func ParseOfferStatus(value string) (OfferStatus, error) {
	for _, candidate := range validOfferStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer status %q", value)
}
