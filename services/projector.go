package services

import "home-tracker/models"

// Project maps normalized listings onto scatter-plot points, one per
// listing and in the same order: X is the bedroom count, Y is the price.
// RefIndex for element i is exactly i — the listing's position in the slice
// being plotted, not its OriginalIndex in the raw feed. The charting engine
// echoes it back on interaction, so positional lookups into the engine's
// internal arrays are never needed.
func Project(listings []models.Listing) []models.ChartPoint {
	points := make([]models.ChartPoint, len(listings))
	for i, l := range listings {
		points[i] = models.ChartPoint{X: l.Beds, Y: l.Price, RefIndex: i}
	}
	return points
}
