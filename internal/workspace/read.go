package workspace

import (
	"github.com/mesh-intelligence/charter/internal/index"
)

// Get returns one document by short code or slug id.
func (s *Service) Get(ref string) (*index.Record, error) {
	var rec *index.Record
	err := s.withStore(func(store *index.Store) error {
		var err error
		rec, err = resolve(store, ref)
		return err
	})
	return rec, err
}

// List returns documents matching the filter, ordered by short code.
func (s *Service) List(f index.Filter) ([]*index.Record, error) {
	var recs []*index.Record
	err := s.withStore(func(store *index.Store) error {
		var err error
		recs, err = store.List(f)
		return err
	})
	return recs, err
}

// Search runs a full-text query over titles and content.
func (s *Service) Search(query string) ([]*index.Record, error) {
	var recs []*index.Record
	err := s.withStore(func(store *index.Store) error {
		var err error
		recs, err = store.Search(query)
		return err
	})
	return recs, err
}

// Children returns the direct children of a document.
func (s *Service) Children(ref string) ([]*index.Record, error) {
	var recs []*index.Record
	err := s.withStore(func(store *index.Store) error {
		rec, err := resolve(store, ref)
		if err != nil {
			return err
		}
		recs, err = store.Children(rec.ID)
		return err
	})
	return recs, err
}
