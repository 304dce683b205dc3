// Package chart defines the boundary to the scatter-chart engine. The
// engine takes a dataset of points carrying RefIndex metadata, reports
// pointer interactions as hit events, and supports zoom reset. A fresh
// engine instance is built per search; the previous one is closed first.
package chart

import "home-tracker/models"

// Engine is the charting capability the dashboard drives. Implementations
// must echo each point's RefIndex back unchanged in click hits, whatever
// internal order they store the dataset in.
type Engine interface {
	// Render replaces the engine's dataset with the given points.
	Render(points []models.ChartPoint) error
	// Highlight emphasizes the point carrying the given RefIndex.
	Highlight(refIndex int)
	// ClearHighlight reverts all points to their steady-state encoding.
	ClearHighlight()
	// ResetZoom restores the default viewport after pan/zoom.
	ResetZoom()
	// Close releases the engine's resources. The engine is unusable after.
	Close() error
}

// Factory builds a fresh Engine for each completed search.
type Factory func() Engine
