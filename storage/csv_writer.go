package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"home-tracker/models"
)

// CSVExporter writes each zip code's normalized listings to its own CSV
// file under the export directory. It is safe for concurrent use.
type CSVExporter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVExporter ensures the export directory exists.
func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create export dir: %w", err)
	}
	return &CSVExporter{dir: dir}, nil
}

// Save writes <dir>/<zip>.csv, replacing any previous export for that zip.
func (c *CSVExporter) Save(zipCode string, listings []models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, zipCode+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"beds", "baths", "price", "area", "address", "detail_url", "img_src", "has_image", "original_index",
	}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		row := []string{
			strconv.FormatFloat(l.Beds, 'f', -1, 64),
			strconv.FormatFloat(l.Baths, 'f', -1, 64),
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			strconv.FormatFloat(l.Area, 'f', -1, 64),
			l.Address,
			l.DetailURL,
			l.ImgSrc,
			strconv.FormatBool(l.HasImage),
			strconv.Itoa(l.OriginalIndex),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Close is a no-op; each Save opens and closes its own file.
func (c *CSVExporter) Close() error { return nil }
