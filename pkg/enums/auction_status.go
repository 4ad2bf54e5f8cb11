package enums

import "fmt"

// AuctionStatus is the time-derived lifecycle phase of an auction listing.
type AuctionStatus string

const (
	AuctionStatusUpcoming AuctionStatus = "upcoming"
	AuctionStatusActive   AuctionStatus = "active"
	AuctionStatusEnded    AuctionStatus = "ended"
)

var validAuctionStatuses = []AuctionStatus{
	AuctionStatusUpcoming,
	AuctionStatusActive,
	AuctionStatusEnded,
}

// String implements fmt.Stringer.
func (s AuctionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known AuctionStatus.
func (s AuctionStatus) IsValid() bool {
	for _, candidate := range validAuctionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAuctionStatus converts raw input into an AuctionStatus.
func ParseAuctionStatus(value string) (AuctionStatus, error) {
	for _, candidate := range validAuctionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid auction status %q", value)
}
