// Package dashboard orchestrates the search pipeline: validate the zip
// code, fetch raw listings, normalize, project onto the chart, and resolve
// chart interactions back to listings for the detail presenter.
package dashboard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"home-tracker/chart"
	"home-tracker/models"
	"home-tracker/services"
	"home-tracker/storage"
	"home-tracker/upstream"
	"home-tracker/utils"
)

// highlightDuration is how long a clicked point stays emphasized before it
// reverts to the steady-state encoding.
const highlightDuration = time.Second

var (
	// ErrInvalidZip rejects a malformed postal code before any network call.
	ErrInvalidZip = errors.New("dashboard: invalid zip code")
	// ErrBusy rejects a submission while a search is already in flight.
	ErrBusy = errors.New("dashboard: search already in progress")
)

var (
	zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	validate   = validator.New()
)

func init() {
	// Registration only fails on programmer error (bad tag name); there is
	// no useful recovery.
	if err := validate.RegisterValidation("uszip", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ValidZip reports whether the postal code matches the accepted
// 12345 or 12345-6789 format.
func ValidZip(zipCode string) bool {
	return zipPattern.MatchString(zipCode)
}

// Fetcher returns the raw-listing envelope for a zip code. Satisfied by the
// upstream client and by the cache wrapped around it.
type Fetcher interface {
	FetchListings(zipCode string) (*models.ListingsResponse, error)
}

// searchRequest mirrors the submitted search form.
type searchRequest struct {
	ZipCode string `validate:"required,uszip"`
}

// SearchResult is what a completed search hands to the presentation layer.
type SearchResult struct {
	Summary       models.SearchSummary `json:"summary"`
	Points        []models.ChartPoint  `json:"points"`
	TotalListings int                  `json:"totalListings"`
}

// Session holds one dashboard's state: the listings behind the current
// chart and the chart instance itself. All derived state is replaced
// wholesale on each completed search, never merged in place.
type Session struct {
	fetcher    Fetcher
	charts     chart.Factory
	presenter  Presenter
	store      storage.ListingStore
	normalizer *services.Normalizer
	logger     *utils.Logger

	mu        sync.Mutex
	busy      bool
	listings  []models.Listing
	engine    chart.Engine
	highlight *time.Timer
}

// NewSession wires a Session from its ports. store may be nil when no
// persistence backend is configured.
func NewSession(fetcher Fetcher, charts chart.Factory, presenter Presenter,
	store storage.ListingStore, logger *utils.Logger) *Session {
	return &Session{
		fetcher:    fetcher,
		charts:     charts,
		presenter:  presenter,
		store:      store,
		normalizer: services.NewNormalizer(logger),
		logger:     logger,
	}
}

// Search runs the full pipeline for one submitted zip code. Re-entry while
// a search is in flight is rejected up front — the UI-level equivalent of a
// disabled submit control; the request already out is never cancelled. On
// any failure the previously displayed data stays untouched.
func (s *Session) Search(zipCode string) (*SearchResult, error) {
	zipCode = strings.TrimSpace(zipCode)
	if err := validate.Struct(searchRequest{ZipCode: zipCode}); err != nil {
		s.presenter.Notify(NotifyError, "Please enter a valid ZIP code format (e.g., 12345 or 12345-6789)")
		return nil, ErrInvalidZip
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Warn("[dashboard] Search for %s rejected: another search in flight", zipCode)
		return nil, ErrBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	resp, err := s.fetcher.FetchListings(zipCode)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			s.presenter.Notify(NotifyError, apiErr.Message)
		} else {
			s.logger.Error("[dashboard] Fetch failed for %s: %v", zipCode, err)
			s.presenter.Notify(NotifyError, "Network error. Please check your connection and try again.")
		}
		return nil, err
	}

	listings := s.normalizer.Normalize(resp.Listings)
	points := services.Project(listings)
	summary := services.Summarize(listings)

	s.replaceChart(listings, points)

	if s.store != nil {
		if err := s.store.Save(zipCode, listings); err != nil {
			s.logger.Warn("[dashboard] Persist failed for %s: %v", zipCode, err)
		}
	}

	total := resp.TotalListings
	if total == 0 {
		total = len(resp.Listings)
	}

	s.presenter.ShowSummary(summary)
	s.presenter.Notify(NotifySuccess,
		fmt.Sprintf("Successfully loaded %d properties for %s", total, zipCode))

	return &SearchResult{Summary: summary, Points: points, TotalListings: total}, nil
}

// replaceChart tears down the previous chart instance before building its
// replacement, then swaps all derived state in one step.
func (s *Session) replaceChart(listings []models.Listing, points []models.ChartPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.highlight != nil {
		s.highlight.Stop()
		s.highlight = nil
	}
	if s.engine != nil {
		if err := s.engine.Close(); err != nil {
			s.logger.Warn("[dashboard] Chart teardown: %v", err)
		}
	}

	s.engine = s.charts()
	if err := s.engine.Render(points); err != nil {
		s.logger.Error("[dashboard] Chart render: %v", err)
	}
	s.listings = listings
}

// Click resolves a chart interaction back to its listing, drives the detail
// presenter and emphasizes the struck point for about a second. Events that
// strike no point change nothing and report ok=false.
func (s *Session) Click(event models.ClickEvent) (*models.Listing, bool) {
	s.mu.Lock()
	listings := s.listings
	engine := s.engine
	s.mu.Unlock()

	listing := services.Resolve(event, listings)
	if listing == nil {
		return nil, false
	}

	s.presenter.ShowListing(*listing)

	if engine != nil {
		engine.Highlight(event.Hits[0].RefIndex)

		s.mu.Lock()
		if s.highlight != nil {
			s.highlight.Stop()
		}
		s.highlight = time.AfterFunc(highlightDuration, func() {
			engine.ClearHighlight()
		})
		s.mu.Unlock()
	}

	return listing, true
}

// ResetZoom restores the current chart's default viewport.
func (s *Session) ResetZoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		s.engine.ResetZoom()
	}
}

// Close tears down the current chart and cancels any pending highlight
// revert.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.highlight != nil {
		s.highlight.Stop()
		s.highlight = nil
	}
	if s.engine != nil {
		err := s.engine.Close()
		s.engine = nil
		return err
	}
	return nil
}
