package index

import "fmt"

// UpdateSearch refreshes the full-text shadow row for one document.
func (s *Store) UpdateSearch(filepath, title, content string) error {
	if err := s.DeleteSearch(filepath); err != nil {
		return err
	}
	if _, err := s.db.Exec(
		`INSERT INTO document_search (filepath, title, content) VALUES (?, ?, ?)`,
		filepath, title, content); err != nil {
		return fmt.Errorf("indexing %s for search: %w", filepath, err)
	}
	return nil
}

// DeleteSearch drops the full-text shadow row for one document.
func (s *Store) DeleteSearch(filepath string) error {
	if _, err := s.db.Exec(
		`DELETE FROM document_search WHERE filepath = ?`, filepath); err != nil {
		return fmt.Errorf("removing %s from search: %w", filepath, err)
	}
	return nil
}

// Search runs a full-text query over titles and content, best match first.
func (s *Store) Search(query string) ([]*Record, error) {
	rows, err := s.db.Query(`SELECT `+recordColumnsQualified+` FROM documents d
        INNER JOIN document_search ON d.filepath = document_search.filepath
        WHERE document_search MATCH ?
        ORDER BY document_search.rank`, query)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}
