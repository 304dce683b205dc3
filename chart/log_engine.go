package chart

import (
	"errors"

	"home-tracker/models"
	"home-tracker/utils"
)

// LogEngine is the in-process Engine used when no graphical renderer is
// attached: it writes the dataset and interaction effects to the log. It
// keeps the rendered points so Highlight can name what it emphasizes.
type LogEngine struct {
	logger *utils.Logger
	points []models.ChartPoint
	closed bool
}

// NewLogEngine creates a LogEngine writing to the given logger.
func NewLogEngine(logger *utils.Logger) *LogEngine {
	return &LogEngine{logger: logger}
}

// Render replaces the engine's dataset.
func (e *LogEngine) Render(points []models.ChartPoint) error {
	if e.closed {
		return errors.New("chart: render on closed engine")
	}
	e.points = points
	e.logger.Info("[chart] Rendered %d points (bedrooms vs price)", len(points))
	return nil
}

// Highlight emphasizes one point by its RefIndex.
func (e *LogEngine) Highlight(refIndex int) {
	if e.closed || refIndex < 0 || refIndex >= len(e.points) {
		return
	}
	p := e.points[refIndex]
	e.logger.Debug("[chart] Highlight point %d (%.0f beds, $%.0f)", refIndex, p.X, p.Y)
}

// ClearHighlight reverts all points to the steady-state encoding.
func (e *LogEngine) ClearHighlight() {
	if e.closed {
		return
	}
	e.logger.Debug("[chart] Highlight reverted")
}

// ResetZoom restores the default viewport.
func (e *LogEngine) ResetZoom() {
	if e.closed {
		return
	}
	e.logger.Debug("[chart] Zoom reset")
}

// Close releases the dataset and marks the engine unusable.
func (e *LogEngine) Close() error {
	e.closed = true
	e.points = nil
	return nil
}
