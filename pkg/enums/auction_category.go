package enums

import "fmt"

// AuctionCategory classifies an auction listing.
type AuctionCategory string

const (
	AuctionCategoryElectronics  AuctionCategory = "electronics"
	AuctionCategoryFurniture    AuctionCategory = "furniture"
	AuctionCategoryClothing     AuctionCategory = "clothing"
	AuctionCategoryBooks        AuctionCategory = "books"
	AuctionCategoryCollectibles AuctionCategory = "collectibles"
	AuctionCategoryArt          AuctionCategory = "art"
	AuctionCategoryJewelry      AuctionCategory = "jewelry"
	AuctionCategoryVehicles     AuctionCategory = "vehicles"
	AuctionCategoryOther        AuctionCategory = "other"
)

var validAuctionCategories = []AuctionCategory{
	AuctionCategoryElectronics,
	AuctionCategoryFurniture,
	AuctionCategoryClothing,
	AuctionCategoryBooks,
	AuctionCategoryCollectibles,
	AuctionCategoryArt,
	AuctionCategoryJewelry,
	AuctionCategoryVehicles,
	AuctionCategoryOther,
}

// String implements fmt.Stringer.
func (c AuctionCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known AuctionCategory.
func (c AuctionCategory) IsValid() bool {
	for _, candidate := range validAuctionCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseAuctionCategory converts raw input into an AuctionCategory.
func ParseAuctionCategory(value string) (AuctionCategory, error) {
	for _, candidate := range validAuctionCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid auction category %q", value)
}
