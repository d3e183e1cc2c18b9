package index

import "fmt"

// ClearRelationships drops every cached parent/child edge. The sync engine
// recomputes the full edge set after all document upserts so that forward
// references resolve regardless of enumeration order.
func (s *Store) ClearRelationships() error {
	if _, err := s.db.Exec(`DELETE FROM document_relationships`); err != nil {
		return fmt.Errorf("clearing relationships: %w", err)
	}
	return nil
}

// InsertRelationship records a child → parent edge.
func (s *Store) InsertRelationship(childFilepath, parentFilepath, childID, parentID string) error {
	if _, err := s.db.Exec(`INSERT OR REPLACE INTO document_relationships
        (child_filepath, parent_filepath, child_id, parent_id)
        VALUES (?, ?, ?, ?)`,
		childFilepath, parentFilepath, childID, parentID); err != nil {
		return fmt.Errorf("inserting relationship %s -> %s: %w", childID, parentID, err)
	}
	return nil
}

// Children returns the documents whose parent edge points at parentID.
func (s *Store) Children(parentID string) ([]*Record, error) {
	rows, err := s.db.Query(`SELECT `+recordColumnsQualified+` FROM documents d
        INNER JOIN document_relationships r ON d.filepath = r.child_filepath
        WHERE r.parent_id = ? ORDER BY d.short_code`, parentID)
	if err != nil {
		return nil, fmt.Errorf("finding children of %s: %w", parentID, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Parent returns the parent document of childID, or types.ErrNotFound when
// no edge exists.
func (s *Store) Parent(childID string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumnsQualified+` FROM documents d
        INNER JOIN document_relationships r ON d.filepath = r.parent_filepath
        WHERE r.child_id = ?`, childID)
	return scanRecord(row)
}
