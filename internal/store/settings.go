package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/proteovis/proteovis/internal/data"
)

// SaveSettings persists a dataset's settings, replacing any previous
// version.
func (s *Store) SaveSettings(datasetID string, settings data.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO dataset_settings (dataset_id, settings) VALUES (?, ?)",
		datasetID, string(payload))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// LoadSettings returns the stored settings for a dataset, or fresh
// defaults when none were saved yet.
func (s *Store) LoadSettings(datasetID string) (data.Settings, error) {
	var payload string
	err := s.db.QueryRow(
		"SELECT settings FROM dataset_settings WHERE dataset_id=?", datasetID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return data.NewSettings(), nil
	}
	if err != nil {
		return data.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := data.NewSettings()
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return data.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// SaveSelections replaces a dataset's explicit selections. Only true
// memberships are persisted; absence means "not in group".
func (s *Store) SaveSelections(datasetID string, selections data.SelectionMap) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin selections tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM dataset_selections WHERE dataset_id=?", datasetID); err != nil {
		return fmt.Errorf("clear selections: %w", err)
	}

	for primaryID, groups := range selections {
		for group, in := range groups {
			if !in {
				continue
			}
			if _, err := tx.Exec(
				"INSERT INTO dataset_selections (dataset_id, primary_id, group_name) VALUES (?, ?, ?)",
				datasetID, primaryID, group); err != nil {
				return fmt.Errorf("insert selection: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadSelections returns a dataset's explicit selections.
func (s *Store) LoadSelections(datasetID string) (data.SelectionMap, error) {
	rows, err := s.db.Query(
		"SELECT primary_id, group_name FROM dataset_selections WHERE dataset_id=?", datasetID)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	selections := data.SelectionMap{}
	for rows.Next() {
		var primaryID, group string
		if err := rows.Scan(&primaryID, &group); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		selections.Add(primaryID, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}
	return selections, nil
}
