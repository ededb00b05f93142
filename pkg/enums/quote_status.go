package enums

import "fmt"

// QuoteStatus tracks the lifecycle of a quote. A quote is in_production
// exactly while every line item carries a supplier assignment; undoing the
// last assignment reverts it to approved.
type QuoteStatus string

const (
	QuoteStatusDraft        QuoteStatus = "draft"
	QuoteStatusSent         QuoteStatus = "sent"
	QuoteStatusApproved     QuoteStatus = "approved"
	QuoteStatusRejected     QuoteStatus = "rejected"
	QuoteStatusInProduction QuoteStatus = "in_production"
	QuoteStatusReady        QuoteStatus = "ready"
	QuoteStatusDelivered    QuoteStatus = "delivered"
	QuoteStatusCancelled    QuoteStatus = "cancelled"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusInProduction,
	QuoteStatusReady,
	QuoteStatusDelivered,
	QuoteStatusCancelled,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
