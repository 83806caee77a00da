package store

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/proteovis/proteovis/internal/data"
)

// ReplaceRows replaces all rows of a dataset. Re-ingestion fully
// replaces prior rows; there is no incremental update path. Rows are
// bulk-inserted through the DuckDB Appender API.
func (s *Store) ReplaceRows(datasetID string, rows []data.Row) error {
	if _, err := s.db.Exec("DELETE FROM dataset_rows WHERE dataset_id=?", datasetID); err != nil {
		return fmt.Errorf("clear dataset rows: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "dataset_rows")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, row := range rows {
		payload, err := json.Marshal(columnPayload(row))
		if err != nil {
			return fmt.Errorf("encode row %s: %w", row.PrimaryID, err)
		}
		if err := appender.AppendRow(datasetID, row.PrimaryID, string(payload)); err != nil {
			return fmt.Errorf("append row %s: %w", row.PrimaryID, err)
		}
	}

	return appender.Flush()
}

// FetchRows loads all rows for a dataset in insertion order. An
// unknown dataset yields an empty slice, not an error.
func (s *Store) FetchRows(datasetID string) ([]data.Row, error) {
	dbRows, err := s.db.Query(
		"SELECT primary_id, row_data FROM dataset_rows WHERE dataset_id=?", datasetID)
	if err != nil {
		return nil, fmt.Errorf("query dataset rows: %w", err)
	}
	defer dbRows.Close()

	var out []data.Row
	for dbRows.Next() {
		var primaryID, payload string
		if err := dbRows.Scan(&primaryID, &payload); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}

		value, err := data.DecodeJSON([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decode row %s: %w", primaryID, err)
		}
		out = append(out, data.NewRow(primaryID, value.Fields()))
	}
	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset rows: %w", err)
	}
	return out, nil
}

// RowCount returns the number of stored rows for a dataset.
func (s *Store) RowCount(datasetID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM dataset_rows WHERE dataset_id=?", datasetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count dataset rows: %w", err)
	}
	return count, nil
}

func columnPayload(row data.Row) map[string]data.Value {
	cols := row.ColumnMap()
	if cols == nil {
		cols = map[string]data.Value{}
	}
	return cols
}
