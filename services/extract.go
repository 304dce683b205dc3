package services

import (
	"strconv"
	"strings"

	"home-tracker/models"
)

// noImageSentinel is the literal string the upstream source uses to mean
// "no photo". It must never be returned as an image URL.
const noImageSentinel = "False"

// imagePaths are tried in priority order when resolving a listing photo:
// a flat key first, then the first photo of each known photo collection.
var imagePaths = []string{
	"imgSrc",
	"carouselPhotos.0.url",
	"photos.0.url",
	"primaryPhoto.url",
	"image.url",
}

// FirstValue returns the first present, non-nil value among the candidate
// keys at the top level of the record, or nil when none resolve.
func FirstValue(record models.RawListing, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// PathValue walks a dot-separated path through nested maps and slices.
// Numeric segments index into slices. It returns nil as soon as any hop is
// missing; absence is an expected outcome here, not an error.
func PathValue(record models.RawListing, path string) any {
	var current any = map[string]any(record)

	for _, seg := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok || v == nil {
				return nil
			}
			current = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			current = node[i]
		default:
			return nil
		}
	}
	return current
}

// ImageSource resolves the listing's photo URL. The first candidate path
// that yields a non-empty string other than the upstream's "no image"
// sentinel wins; otherwise the listing has no image.
func ImageSource(record models.RawListing) (string, bool) {
	for _, path := range imagePaths {
		v := PathValue(record, path)
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s != "" && s != noImageSentinel {
			return s, true
		}
	}
	return "", false
}
