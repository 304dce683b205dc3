package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"home-tracker/models"
	"home-tracker/utils"
)

// PostgresWriter persists normalized listings to PostgreSQL, keyed by the
// zip code that produced them.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter. The initial ping
// is retried with backoff so a container still starting up does not fail
// the whole launch.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id             SERIAL PRIMARY KEY,
			zip_code       VARCHAR(10)   NOT NULL,
			beds           NUMERIC(4,1)  NOT NULL DEFAULT 0,
			baths          NUMERIC(4,1)  NOT NULL DEFAULT 0,
			price          NUMERIC(12,2) NOT NULL,
			area           NUMERIC(10,1) NOT NULL DEFAULT 0,
			address        TEXT          NOT NULL,
			detail_url     TEXT          NOT NULL,
			img_src        TEXT          NOT NULL DEFAULT '',
			has_image      BOOLEAN       NOT NULL DEFAULT FALSE,
			original_index INT           NOT NULL,
			created_at     TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_zip   ON listings(zip_code);
		CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);
	`)
	return err
}

// Clear deletes the stored listings for one zip code.
func (pw *PostgresWriter) Clear(zipCode string) error {
	_, err := pw.db.Exec("DELETE FROM listings WHERE zip_code = $1", zipCode)
	if err != nil {
		return fmt.Errorf("postgres: clear %s: %w", zipCode, err)
	}
	return nil
}

// Save replaces the zip code's stored listings with the given set.
func (pw *PostgresWriter) Save(zipCode string, listings []models.Listing) error {
	if err := pw.Clear(zipCode); err != nil {
		return err
	}
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(zipCode, listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(zipCode string, batch []models.Listing) error {
	const cols = 10
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			zipCode, l.Beds, l.Baths, l.Price, l.Area,
			l.Address, l.DetailURL, l.ImgSrc, l.HasImage, l.OriginalIndex)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (zip_code, beds, baths, price, area, address, detail_url, img_src, has_image, original_index)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// FetchByZip retrieves the stored listings for one zip code, in the order
// they survived normalization.
func (pw *PostgresWriter) FetchByZip(zipCode string) ([]models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT beds, baths, price, area, address, detail_url, img_src, has_image, original_index
		FROM listings
		WHERE zip_code = $1
		ORDER BY id
	`, zipCode)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %s: %w", zipCode, err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(
			&l.Beds, &l.Baths, &l.Price, &l.Area, &l.Address,
			&l.DetailURL, &l.ImgSrc, &l.HasImage, &l.OriginalIndex,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
