package enums

import "fmt"

// ModerationDecision is the admin verdict applied to a pending offer or
// association.
type ModerationDecision string

const (
	ModerationDecisionApprove ModerationDecision = "approve"
	ModerationDecisionReject  ModerationDecision = "reject"
)

var validModerationDecisions = []ModerationDecision{
	ModerationDecisionApprove,
	ModerationDecisionReject,
}

func (m ModerationDecision) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ModerationDecision.
func (m ModerationDecision) IsValid() bool {
	for _, candidate := range validModerationDecisions {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModerationDecision converts raw input into a ModerationDecision.
func ParseModerationDecision(value string) (ModerationDecision, error) {
	for _, candidate := range validModerationDecisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid moderation decision %q", value)
}
