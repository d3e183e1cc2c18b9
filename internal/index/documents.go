package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/charter/pkg/types"
)

// Record is one row of the documents table: a denormalized cache of a parsed
// markdown file.
type Record struct {
	Filepath        string
	ID              string
	ShortCode       string
	Title           string
	Type            types.DocumentType
	Phase           types.Phase
	ParentID        string
	BlockedBy       []string
	Content         string
	FileHash        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Archived        bool
	ExitCriteriaMet bool
}

// Filter narrows List results. Nil fields match everything.
type Filter struct {
	Type     types.DocumentType
	Phase    types.Phase
	Archived *bool
}

const recordColumns = `filepath, id, short_code, title, document_type, phase,
    parent_id, blocked_by, content, file_hash, created_at, updated_at,
    archived, exit_criteria_met`

// recordColumnsQualified mirrors recordColumns with a "d." table alias so
// joined queries stay unambiguous when the other table shares column names.
const recordColumnsQualified = `d.filepath, d.id, d.short_code, d.title,
    d.document_type, d.phase, d.parent_id, d.blocked_by, d.content,
    d.file_hash, d.created_at, d.updated_at, d.archived, d.exit_criteria_met`

// Upsert inserts or replaces the row for rec.Filepath.
func (s *Store) Upsert(rec *Record) error {
	blocked, err := json.Marshal(rec.BlockedBy)
	if err != nil {
		return fmt.Errorf("encoding blocked_by: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO documents (`+recordColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(filepath) DO UPDATE SET
            id = excluded.id,
            short_code = excluded.short_code,
            title = excluded.title,
            document_type = excluded.document_type,
            phase = excluded.phase,
            parent_id = excluded.parent_id,
            blocked_by = excluded.blocked_by,
            content = excluded.content,
            file_hash = excluded.file_hash,
            created_at = excluded.created_at,
            updated_at = excluded.updated_at,
            archived = excluded.archived,
            exit_criteria_met = excluded.exit_criteria_met`,
		rec.Filepath, rec.ID, rec.ShortCode, rec.Title, string(rec.Type),
		string(rec.Phase), nullable(rec.ParentID), string(blocked),
		rec.Content, rec.FileHash,
		rec.CreatedAt.UTC().Format(timeFormat),
		rec.UpdatedAt.UTC().Format(timeFormat),
		boolInt(rec.Archived), boolInt(rec.ExitCriteriaMet))
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", rec.Filepath, err)
	}
	return nil
}

// Get returns the row keyed by workspace-relative filepath.
func (s *Store) Get(filepath string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT `+recordColumns+` FROM documents WHERE filepath = ?`, filepath)
	return scanRecord(row)
}

// GetByID returns the document with the given slug id.
func (s *Store) GetByID(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT `+recordColumns+` FROM documents WHERE id = ?`, id)
	return scanRecord(row)
}

// GetByShortCode returns the document with the given short code.
func (s *Store) GetByShortCode(code string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT `+recordColumns+` FROM documents WHERE short_code = ?`, code)
	return scanRecord(row)
}

// Delete removes a document row together with its tags, relationships, and
// search shadow. Reports whether a row existed.
func (s *Store) Delete(filepath string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM documents WHERE filepath = ?`, filepath)
	if err != nil {
		return false, fmt.Errorf("deleting document %s: %w", filepath, err)
	}
	if _, err := s.db.Exec(`DELETE FROM document_tags WHERE document_filepath = ?`, filepath); err != nil {
		return false, fmt.Errorf("deleting tags for %s: %w", filepath, err)
	}
	if _, err := s.db.Exec(
		`DELETE FROM document_relationships WHERE child_filepath = ? OR parent_filepath = ?`,
		filepath, filepath); err != nil {
		return false, fmt.Errorf("deleting relationships for %s: %w", filepath, err)
	}
	if err := s.DeleteSearch(filepath); err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Paths returns every filepath currently indexed.
func (s *Store) Paths() ([]string, error) {
	rows, err := s.db.Query(`SELECT filepath FROM documents ORDER BY filepath`)
	if err != nil {
		return nil, fmt.Errorf("listing document paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// List returns documents matching the filter, ordered by short code.
func (s *Store) List(f Filter) ([]*Record, error) {
	var conds []string
	var args []any
	if f.Type != "" {
		conds = append(conds, "document_type = ?")
		args = append(args, string(f.Type))
	}
	if f.Phase != "" {
		conds = append(conds, "phase = ?")
		args = append(args, string(f.Phase))
	}
	if f.Archived != nil {
		conds = append(conds, "archived = ?")
		args = append(args, boolInt(*f.Archived))
	}

	query := `SELECT ` + recordColumns + ` FROM documents`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY short_code"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ReplaceTags swaps the tag set cached for one document.
func (s *Store) ReplaceTags(filepath string, tags []string) error {
	if _, err := s.db.Exec(`DELETE FROM document_tags WHERE document_filepath = ?`, filepath); err != nil {
		return fmt.Errorf("clearing tags for %s: %w", filepath, err)
	}
	for _, tag := range tags {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO document_tags (document_filepath, tag) VALUES (?, ?)`,
			filepath, tag); err != nil {
			return fmt.Errorf("inserting tag for %s: %w", filepath, err)
		}
	}
	return nil
}

// FindByTag returns documents carrying the given tag string.
func (s *Store) FindByTag(tag string) ([]*Record, error) {
	rows, err := s.db.Query(`SELECT `+recordColumns+` FROM documents d
        INNER JOIN document_tags t ON d.filepath = t.document_filepath
        WHERE t.tag = ? ORDER BY d.short_code`, tag)
	if err != nil {
		return nil, fmt.Errorf("finding documents by tag: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var docType, phase, createdAt, updatedAt, blocked string
	var parentID, content sql.NullString
	var archived, criteriaMet int

	err := row.Scan(&rec.Filepath, &rec.ID, &rec.ShortCode, &rec.Title,
		&docType, &phase, &parentID, &blocked, &content, &rec.FileHash,
		&createdAt, &updatedAt, &archived, &criteriaMet)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document row: %w", err)
	}

	rec.Type = types.DocumentType(docType)
	rec.Phase = types.Phase(phase)
	rec.ParentID = parentID.String
	rec.Content = content.String
	rec.Archived = archived != 0
	rec.ExitCriteriaMet = criteriaMet != 0
	if err := json.Unmarshal([]byte(blocked), &rec.BlockedBy); err != nil {
		return nil, fmt.Errorf("decoding blocked_by: %w", err)
	}
	if rec.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
		return nil, fmt.Errorf("decoding created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
		return nil, fmt.Errorf("decoding updated_at: %w", err)
	}
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var recs []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
