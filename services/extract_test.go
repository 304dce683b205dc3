package services

import (
	"testing"

	"home-tracker/models"
)

func TestFirstValueOrder(t *testing.T) {
	record := models.RawListing{"bedrooms": 4.0, "beds": 3.0}

	got := FirstValue(record, "beds", "bedrooms")
	if got != 3.0 {
		t.Errorf("FirstValue preferred %v; want 3 (first candidate wins)", got)
	}
}

func TestFirstValueSkipsNil(t *testing.T) {
	record := models.RawListing{"beds": nil, "bedrooms": 4.0}

	got := FirstValue(record, "beds", "bedrooms")
	if got != 4.0 {
		t.Errorf("FirstValue = %v; want 4 (nil value treated as absent)", got)
	}
}

func TestFirstValueAbsent(t *testing.T) {
	if got := FirstValue(models.RawListing{"other": 1}, "beds", "bedrooms"); got != nil {
		t.Errorf("FirstValue = %v; want nil for all-absent candidates", got)
	}
}

func TestPathValue(t *testing.T) {
	record := models.RawListing{
		"carouselPhotos": []any{
			map[string]any{"url": "http://x/1.jpg"},
			map[string]any{"url": "http://x/2.jpg"},
		},
		"primaryPhoto": map[string]any{"url": "http://x/main.jpg"},
	}

	tests := []struct {
		path string
		want any
	}{
		{"carouselPhotos.0.url", "http://x/1.jpg"},
		{"carouselPhotos.1.url", "http://x/2.jpg"},
		{"primaryPhoto.url", "http://x/main.jpg"},
		{"carouselPhotos.2.url", nil},  // index out of range
		{"carouselPhotos.x.url", nil},  // non-numeric index into slice
		{"photos.0.url", nil},          // missing collection
		{"primaryPhoto.url.deep", nil}, // walking past a leaf
	}

	for _, tt := range tests {
		if got := PathValue(record, tt.path); got != tt.want {
			t.Errorf("PathValue(%q) = %v; want %v", tt.path, got, tt.want)
		}
	}
}

func TestImageSource(t *testing.T) {
	tests := []struct {
		name    string
		record  models.RawListing
		want    string
		wantHas bool
	}{
		{
			name:    "flat key",
			record:  models.RawListing{"imgSrc": "http://x/flat.jpg"},
			want:    "http://x/flat.jpg",
			wantHas: true,
		},
		{
			name: "first carousel photo",
			record: models.RawListing{
				"carouselPhotos": []any{map[string]any{"url": "http://x/1.jpg"}},
			},
			want:    "http://x/1.jpg",
			wantHas: true,
		},
		{
			name: "flat sentinel falls through to carousel",
			record: models.RawListing{
				"imgSrc": "False",
				"photos": []any{map[string]any{"url": "http://x/2.jpg"}},
			},
			want:    "http://x/2.jpg",
			wantHas: true,
		},
		{
			name:    "sentinel only",
			record:  models.RawListing{"imgSrc": "False"},
			want:    "",
			wantHas: false,
		},
		{
			name:    "no image fields",
			record:  models.RawListing{"beds": 3.0},
			want:    "",
			wantHas: false,
		},
		{
			name:    "non-string image value",
			record:  models.RawListing{"imgSrc": 42.0},
			want:    "",
			wantHas: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, has := ImageSource(tt.record)
			if got != tt.want || has != tt.wantHas {
				t.Errorf("ImageSource = (%q, %v); want (%q, %v)", got, has, tt.want, tt.wantHas)
			}
		})
	}
}
