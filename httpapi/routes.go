// Package httpapi exposes the dashboard over HTTP: the search submit, the
// chart click dispatch, and zoom reset, mirroring the browser UI's calls.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"home-tracker/dashboard"
	"home-tracker/models"
	"home-tracker/upstream"
)

// ListingReader serves previously stored listings for a zip code.
type ListingReader interface {
	FetchByZip(zipCode string) ([]models.Listing, error)
}

type handlers struct {
	session  *dashboard.Session
	listings ListingReader
}

// RegisterRoutes wires the dashboard routes onto the router. listings may
// be nil when no persistence backend is configured; the stored-listings
// route is then not registered.
func RegisterRoutes(r *mux.Router, session *dashboard.Session, listings ListingReader) {
	h := &handlers{session: session, listings: listings}
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/get_listings", h.getListings).Methods(http.MethodPost)
	r.HandleFunc("/select_point", h.selectPoint).Methods(http.MethodPost)
	r.HandleFunc("/reset_zoom", h.resetZoom).Methods(http.MethodPost)
	if listings != nil {
		r.HandleFunc("/listings/{zip}", h.storedListings).Methods(http.MethodGet)
	}
}

type searchPayload struct {
	ZipCode string `json:"zipCode"`
}

type searchReply struct {
	Success       bool                 `json:"success"`
	TotalListings int                  `json:"totalListings,omitempty"`
	Summary       models.SearchSummary `json:"summary"`
	Points        []models.ChartPoint  `json:"points,omitempty"`
	Error         string               `json:"error,omitempty"`
}

type selectReply struct {
	Success bool            `json:"success"`
	Listing *models.Listing `json:"listing,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type storedReply struct {
	Success  bool             `json:"success"`
	ZipCode  string           `json:"zipCode"`
	Listings []models.Listing `json:"listings"`
}

// errorReply is the shape of every error body: no chart fields, just the
// failure and its message.
type errorReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) getListings(w http.ResponseWriter, r *http.Request) {
	var payload searchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.session.Search(payload.ZipCode)
	if err != nil {
		var apiErr *upstream.APIError
		switch {
		case errors.Is(err, dashboard.ErrInvalidZip):
			writeError(w, http.StatusBadRequest, "zip code must match 12345 or 12345-6789")
		case errors.Is(err, dashboard.ErrBusy):
			writeError(w, http.StatusConflict, "a search is already in progress")
		case errors.As(err, &apiErr):
			writeError(w, http.StatusBadGateway, apiErr.Message)
		default:
			writeError(w, http.StatusBadGateway, "failed to reach the listings service, please try again")
		}
		return
	}

	writeJSON(w, http.StatusOK, searchReply{
		Success:       true,
		TotalListings: result.TotalListings,
		Summary:       result.Summary,
		Points:        result.Points,
	})
}

func (h *handlers) selectPoint(w http.ResponseWriter, r *http.Request) {
	var event models.ClickEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	listing, ok := h.session.Click(event)
	if !ok {
		// A click that strikes no point is not an error; nothing changes.
		writeJSON(w, http.StatusOK, selectReply{Success: false, Error: "no point struck"})
		return
	}
	writeJSON(w, http.StatusOK, selectReply{Success: true, Listing: listing})
}

func (h *handlers) resetZoom(w http.ResponseWriter, r *http.Request) {
	h.session.ResetZoom()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *handlers) storedListings(w http.ResponseWriter, r *http.Request) {
	zip := mux.Vars(r)["zip"]
	if !dashboard.ValidZip(zip) {
		writeError(w, http.StatusBadRequest, "zip code must match 12345 or 12345-6789")
		return
	}

	listings, err := h.listings.FetchByZip(zip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stored listings")
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	writeJSON(w, http.StatusOK, storedReply{Success: true, ZipCode: zip, Listings: listings})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorReply{Success: false, Error: msg})
}
