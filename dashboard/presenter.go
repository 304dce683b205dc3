package dashboard

import (
	"home-tracker/models"
	"home-tracker/utils"
)

// NotifyKind tags a user-facing notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
)

// Presenter is the detail and notification surface the session drives. In
// the browser this is the DOM; here it is any consumer of search results —
// a terminal printer, an HTTP layer, or a test fake.
type Presenter interface {
	// ShowSummary displays the valid-listing count and price range.
	ShowSummary(summary models.SearchSummary)
	// ShowListing renders the detail and image panels for one listing.
	ShowListing(listing models.Listing)
	// Notify shows a transient, auto-dismissed message to the user.
	Notify(kind NotifyKind, message string)
}

// LogPresenter renders the presentation surface onto the log.
type LogPresenter struct {
	logger *utils.Logger
}

// NewLogPresenter creates a LogPresenter writing to the given logger.
func NewLogPresenter(logger *utils.Logger) *LogPresenter {
	return &LogPresenter{logger: logger}
}

func (p *LogPresenter) ShowSummary(summary models.SearchSummary) {
	p.logger.Info("[presenter] %d properties | price range $%.0f - $%.0f",
		summary.TotalListings, summary.MinPrice, summary.MaxPrice)
}

func (p *LogPresenter) ShowListing(l models.Listing) {
	p.logger.Info("[presenter] %s — %.0f beds, %.1f baths, %.0f sq ft, $%.0f (%s)",
		l.Address, l.Beds, l.Baths, l.Area, l.Price, l.DetailURL)
	if l.HasImage {
		p.logger.Info("[presenter] Image: %s", l.ImgSrc)
	} else {
		p.logger.Info("[presenter] No image available for this property")
	}
}

func (p *LogPresenter) Notify(kind NotifyKind, message string) {
	if kind == NotifyError {
		p.logger.Warn("[presenter] Toast (%s): %s", kind, message)
		return
	}
	p.logger.Info("[presenter] Toast (%s): %s", kind, message)
}
