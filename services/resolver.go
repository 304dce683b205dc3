package services

import "home-tracker/models"

// Resolve maps a click event from the charting engine back to the struck
// listing. When several points overlap, the engine's own hit-test order
// decides: the first hit in the event wins. Returns nil when nothing was
// struck, or when the embedded RefIndex does not fit the current dataset
// (a stale event from a chart that has since been replaced).
func Resolve(event models.ClickEvent, listings []models.Listing) *models.Listing {
	if len(event.Hits) == 0 {
		return nil
	}
	ref := event.Hits[0].RefIndex
	if ref < 0 || ref >= len(listings) {
		return nil
	}
	return &listings[ref]
}
