package enums

import "fmt"

// AuctionPaymentStatus marks whether the winning payment for an auction settled.
type AuctionPaymentStatus string

const (
	AuctionPaymentStatusUnpaid AuctionPaymentStatus = "unpaid"
	AuctionPaymentStatusPaid   AuctionPaymentStatus = "paid"
)

var validAuctionPaymentStatuses = []AuctionPaymentStatus{
	AuctionPaymentStatusUnpaid,
	AuctionPaymentStatusPaid,
}

// String implements fmt.Stringer.
func (p AuctionPaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known AuctionPaymentStatus.
func (p AuctionPaymentStatus) IsValid() bool {
	for _, candidate := range validAuctionPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseAuctionPaymentStatus converts raw input into an AuctionPaymentStatus.
func ParseAuctionPaymentStatus(value string) (AuctionPaymentStatus, error) {
	for _, candidate := range validAuctionPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid auction payment status %q", value)
}
