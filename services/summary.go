package services

import "home-tracker/models"

// Summarize computes the dashboard stat-card numbers for a normalized
// dataset: the valid-listing count and the price range. Every listing in
// the slice already has a positive price, so no re-filtering happens here.
func Summarize(listings []models.Listing) models.SearchSummary {
	summary := models.SearchSummary{TotalListings: len(listings)}
	if len(listings) == 0 {
		return summary
	}

	summary.MinPrice = listings[0].Price
	summary.MaxPrice = listings[0].Price
	for _, l := range listings[1:] {
		if l.Price < summary.MinPrice {
			summary.MinPrice = l.Price
		}
		if l.Price > summary.MaxPrice {
			summary.MaxPrice = l.Price
		}
	}
	return summary
}
