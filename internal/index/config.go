package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mesh-intelligence/charter/pkg/types"
)

// Configuration keys for workspace-level settings.
const (
	ConfigKeyPrefix      = "short_code_prefix"
	ConfigKeyWorkspaceID = "workspace_id"
	ConfigKeyLevels      = "enabled_levels"

	counterKeyFormat = "short_code_counter_%s"
)

// GetConfig returns a configuration value and whether it was present.
func (s *Store) GetConfig(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM configuration WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading configuration %s: %w", key, err)
	}
	return value, true, nil
}

// SetConfig writes a configuration value.
func (s *Store) SetConfig(key, value string) error {
	now := time.Now().UTC().Format(timeFormat)
	if _, err := s.db.Exec(`INSERT INTO configuration (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now); err != nil {
		return fmt.Errorf("writing configuration %s: %w", key, err)
	}
	return nil
}

// AllConfig returns every configuration key/value pair.
func (s *Store) AllConfig() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM configuration ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing configuration: %w", err)
	}
	defer rows.Close()

	all := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		all[k] = v
	}
	return all, rows.Err()
}

// Prefix returns the workspace short-code prefix.
func (s *Store) Prefix() (string, error) {
	prefix, ok, err := s.GetConfig(ConfigKeyPrefix)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("workspace has no short-code prefix configured")
	}
	return prefix, nil
}

// SetPrefix stores the short-code prefix, validating its format.
func (s *Store) SetPrefix(prefix string) error {
	if !types.ValidPrefix(prefix) {
		return fmt.Errorf("prefix must be %d-%d uppercase letters, got %q",
			types.MinPrefixLen, types.MaxPrefixLen, prefix)
	}
	return s.SetConfig(ConfigKeyPrefix, prefix)
}

// NextShortCode increments the per-type counter and returns the next code.
// Counters only move forward; codes are never reused.
func (s *Store) NextShortCode(t types.DocumentType) (types.ShortCode, error) {
	prefix, err := s.Prefix()
	if err != nil {
		return types.ShortCode{}, err
	}

	n, err := s.counter(t)
	if err != nil {
		return types.ShortCode{}, err
	}
	n++
	if err := s.SetConfig(counterKey(t), strconv.Itoa(n)); err != nil {
		return types.ShortCode{}, err
	}

	return types.ShortCode{Prefix: prefix, Type: t, Number: n}, nil
}

// AdvanceCounter raises the per-type counter to at least n. Used when a sync
// pass adopts short codes already present in frontmatter, so later
// assignments cannot collide.
func (s *Store) AdvanceCounter(t types.DocumentType, n int) error {
	current, err := s.counter(t)
	if err != nil {
		return err
	}
	if n <= current {
		return nil
	}
	return s.SetConfig(counterKey(t), strconv.Itoa(n))
}

func (s *Store) counter(t types.DocumentType) (int, error) {
	value, ok, err := s.GetConfig(counterKey(t))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt counter for %s: %w", t, err)
	}
	return n, nil
}

func counterKey(t types.DocumentType) string {
	return fmt.Sprintf(counterKeyFormat, t)
}
