package models

// RawListing is an unvalidated property record as returned by the upstream
// listings endpoint. Key names, value types and nesting depth vary between
// source schema versions, so it stays an untyped map until normalization.
type RawListing map[string]any

// Listing is the canonical, validated property record produced by the
// normalizer. Numeric fields default to 0 and string fields to a sentinel
// when the raw record does not resolve them; only Price > 0 decides whether
// a listing survives normalization.
type Listing struct {
	Beds      float64 `json:"beds"`
	Baths     float64 `json:"baths"`
	Price     float64 `json:"price"`
	Area      float64 `json:"area"`
	Address   string  `json:"address"`
	DetailURL string  `json:"detailUrl"`
	ImgSrc    string  `json:"imgSrc,omitempty"`
	HasImage  bool    `json:"hasImage"`

	// OriginalIndex is the record's position in the raw input sequence,
	// assigned before invalid records are filtered out.
	OriginalIndex int `json:"originalIndex"`
}

// ChartPoint is one plotted point on the beds/price scatter chart.
// RefIndex is the listing's position in the normalized slice being rendered;
// it rides along as point metadata so identity survives any reordering the
// charting engine does internally.
type ChartPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	RefIndex int     `json:"refIndex"`
}

// PointHit identifies one rendered point struck by a pointer interaction.
type PointHit struct {
	RefIndex int `json:"refIndex"`
}

// ClickEvent is the charting engine's interaction payload. Hits appear in
// the engine's own hit-test order; the first entry is the topmost point.
type ClickEvent struct {
	Hits []PointHit `json:"hits"`
}

// SearchSummary holds the stat-card numbers shown after a successful search.
type SearchSummary struct {
	TotalListings int     `json:"totalListings"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
}

// ListingsResponse is the upstream listings endpoint's response envelope.
type ListingsResponse struct {
	Success       bool         `json:"success"`
	Listings      []RawListing `json:"listings,omitempty"`
	TotalListings int          `json:"totalListings,omitempty"`
	Error         string       `json:"error,omitempty"`
}
