package services

import (
	"math"
	"strconv"
	"strings"

	"home-tracker/models"
	"home-tracker/utils"
)

const (
	// unknownAddress is the sentinel for listings with no resolvable address.
	unknownAddress = "unknown"
	// placeholderURL stands in when no detail link resolves.
	placeholderURL = "#"
)

// Candidate key lists per logical field, ordered by schema priority. Price
// tries the unformatted numeric field before the generic one, which some
// schema versions pre-format ("$450,000").
var (
	bedsKeys    = []string{"beds", "bedrooms"}
	bathsKeys   = []string{"baths", "bathrooms"}
	priceKeys   = []string{"unformattedPrice", "price"}
	areaKeys    = []string{"area", "livingArea", "lotAreaValue"}
	addressKeys = []string{"address", "addressStreet"}
	urlKeys     = []string{"detailUrl", "hdpUrl"}
)

// Normalizer turns raw upstream records into canonical Listings.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize maps every raw record to a candidate Listing, assigns
// OriginalIndex from the raw position, then keeps only entries with a
// positive price. Relative order of survivors is preserved. The function is
// pure: the input is never mutated and no state is shared between calls.
func (n *Normalizer) Normalize(raw []models.RawListing) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for i, r := range raw {
		imgSrc, hasImage := ImageSource(r)

		listing := models.Listing{
			Beds:          coerceFloat(FirstValue(r, bedsKeys...)),
			Baths:         coerceFloat(FirstValue(r, bathsKeys...)),
			Price:         coerceFloat(FirstValue(r, priceKeys...)),
			Area:          coerceFloat(FirstValue(r, areaKeys...)),
			Address:       coerceString(FirstValue(r, addressKeys...), unknownAddress),
			DetailURL:     coerceString(FirstValue(r, urlKeys...), placeholderURL),
			ImgSrc:        imgSrc,
			HasImage:      hasImage,
			OriginalIndex: i,
		}

		if listing.Price <= 0 {
			n.logger.Debug("[normalizer] Dropping record %d: no resolvable price", i)
			continue
		}
		result = append(result, listing)
	}

	n.logger.Info("[normalizer] Normalized %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// coerceFloat is the total numeric parser: absent, unparseable, negative and
// non-finite inputs all map to 0. "Invalid" and "missing" are deliberately
// indistinguishable; validity is carried by the price > 0 filter alone.
func coerceFloat(v any) float64 {
	var f float64

	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		cleaned := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(val))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// coerceString returns the trimmed string form of v, or fallback when the
// value is absent, not a string, or blank.
func coerceString(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
