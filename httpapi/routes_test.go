package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"home-tracker/chart"
	"home-tracker/dashboard"
	"home-tracker/models"
	"home-tracker/upstream"
	"home-tracker/utils"
)

// fakeListingStore keeps saved listings in memory and serves them back,
// standing in for the postgres writer on both its write and read sides.
type fakeListingStore struct {
	mu    sync.Mutex
	byZip map[string][]models.Listing
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{byZip: make(map[string][]models.Listing)}
}

func (s *fakeListingStore) Save(zipCode string, listings []models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byZip[zipCode] = listings
	return nil
}

func (s *fakeListingStore) FetchByZip(zipCode string) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byZip[zipCode], nil
}

func (s *fakeListingStore) Close() error { return nil }

// newTestServer stands up the API against a stubbed upstream endpoint.
func newTestServer(t *testing.T, upstreamHandler http.HandlerFunc) (*httptest.Server, *fakeListingStore, func()) {
	t.Helper()
	logger := utils.NewLogger()

	upstreamSrv := httptest.NewServer(upstreamHandler)
	retry := &utils.RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond, Logger: logger}
	client := upstream.New(upstreamSrv.URL, time.Second, retry, logger)

	store := newFakeListingStore()
	session := dashboard.NewSession(
		client,
		func() chart.Engine { return chart.NewLogEngine(logger) },
		dashboard.NewLogPresenter(logger),
		store,
		logger,
	)

	r := mux.NewRouter()
	RegisterRoutes(r, session, store)
	apiSrv := httptest.NewServer(r)

	return apiSrv, store, func() {
		apiSrv.Close()
		upstreamSrv.Close()
	}
}

func listingsStub(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":       true,
		"totalListings": 2,
		"listings": []map[string]any{
			{"unformattedPrice": 450000, "beds": 3, "address": "1 Main St"},
			{"bedrooms": 4, "unformattedPrice": "600000"},
		},
	})
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d; want 200", resp.StatusCode)
	}
}

func TestGetListings(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"76110"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}

	var reply searchReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if !reply.Success || reply.TotalListings != 2 {
		t.Errorf("reply = %+v; want success with totalListings 2", reply)
	}
	if len(reply.Points) != 2 || reply.Points[1].RefIndex != 1 || reply.Points[1].Y != 600000 {
		t.Errorf("points = %+v; want 2 projected points", reply.Points)
	}
	if reply.Summary.MinPrice != 450000 || reply.Summary.MaxPrice != 600000 {
		t.Errorf("summary = %+v; want price range 450000-600000", reply.Summary)
	}
}

func TestGetListingsInvalidZip(t *testing.T) {
	upstreamCalls := 0
	srv, _, teardown := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		listingsStub(w, r)
	})
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"1234"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", resp.StatusCode)
	}
	if upstreamCalls != 0 {
		t.Errorf("upstream called %d times for invalid zip; want 0", upstreamCalls)
	}
}

func TestGetListingsUpstreamFailure(t *testing.T) {
	srv, _, teardown := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Cannot find listings"})
	})
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"76110"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d; want 502", resp.StatusCode)
	}

	var reply searchReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)
	if reply.Success || reply.Error != "Cannot find listings" {
		t.Errorf("reply = %+v; want the server-supplied error message", reply)
	}
}

func TestSelectPoint(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"76110"}`)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/select_point", `{"hits":[{"refIndex":1}]}`)
	defer resp.Body.Close()

	var reply selectReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if !reply.Success || reply.Listing == nil {
		t.Fatalf("reply = %+v; want a resolved listing", reply)
	}
	if reply.Listing.Price != 600000 || reply.Listing.Beds != 4 || reply.Listing.OriginalIndex != 1 {
		t.Errorf("listing = %+v; want the second normalized listing", reply.Listing)
	}
}

func TestSelectPointNoHit(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"76110"}`)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/select_point", `{"hits":[]}`)
	defer resp.Body.Close()

	var reply selectReply
	_ = json.NewDecoder(resp.Body).Decode(&reply)
	if reply.Success || reply.Listing != nil {
		t.Errorf("reply = %+v; want no listing for an empty hit list", reply)
	}
}

func TestResetZoomRoute(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/reset_zoom", `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d; want 200", resp.StatusCode)
	}
}

func TestStoredListings(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"76110"}`)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/listings/76110")
	if err != nil {
		t.Fatalf("GET /listings/76110: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}

	var reply storedReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if !reply.Success || reply.ZipCode != "76110" {
		t.Errorf("reply = %+v; want success for zip 76110", reply)
	}
	if len(reply.Listings) != 2 || reply.Listings[1].Price != 600000 {
		t.Errorf("listings = %+v; want the 2 normalized listings back", reply.Listings)
	}
}

func TestStoredListingsInvalidZip(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp, err := http.Get(srv.URL + "/listings/banana")
	if err != nil {
		t.Fatalf("GET /listings/banana: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", resp.StatusCode)
	}
}

func TestStoredListingsUnknownZip(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp, err := http.Get(srv.URL + "/listings/90210")
	if err != nil {
		t.Fatalf("GET /listings/90210: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	listings, ok := raw["listings"].([]any)
	if !ok {
		t.Fatalf("listings = %v; want an empty array, not null", raw["listings"])
	}
	if len(listings) != 0 {
		t.Errorf("listings = %v; want none for an unsearched zip", listings)
	}
}

func TestErrorBodyShape(t *testing.T) {
	srv, _, teardown := newTestServer(t, listingsStub)
	defer teardown()

	resp := postJSON(t, srv.URL+"/get_listings", `{"zipCode":"1234"}`)
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if raw["success"] != false {
		t.Errorf("success = %v; want false", raw["success"])
	}
	if raw["error"] == "" || raw["error"] == nil {
		t.Error("error message missing from body")
	}
	for _, key := range []string{"summary", "points", "totalListings"} {
		if _, present := raw[key]; present {
			t.Errorf("error body carries %q; want only success and error", key)
		}
	}
}
