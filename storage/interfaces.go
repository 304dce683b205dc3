package storage

import "home-tracker/models"

// ListingStore is the interface any persistence backend must satisfy.
// Save replaces whatever was previously stored for the zip code.
type ListingStore interface {
	Save(zipCode string, listings []models.Listing) error
	Close() error
}

// multiStore fans writes out to several backends.
type multiStore struct {
	stores []ListingStore
}

// Multi combines several stores into one. Every backend is attempted on
// Save; the first error is returned.
func Multi(stores ...ListingStore) ListingStore {
	return &multiStore{stores: stores}
}

func (m *multiStore) Save(zipCode string, listings []models.Listing) error {
	var first error
	for _, s := range m.stores {
		if err := s.Save(zipCode, listings); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *multiStore) Close() error {
	var first error
	for _, s := range m.stores {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
