package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// ReadRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, passed, failed, total
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Passed, &r.Failed, &r.Total); err != nil {
			return nil, fmt.Errorf("read runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run by id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, passed, failed, total
		FROM runs
		WHERE id = ?
	`, id).Scan(&r.ID, &r.CreatedAt, &r.Passed, &r.Failed, &r.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return r, nil
}

// ReadScenarioRecords returns the scenario rows of a run in execution order.
func (s *Store) ReadScenarioRecords(ctx context.Context, runID string) ([]ScenarioRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, position, name, pass, errors, trace_hash
		FROM scenario_results
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read scenario records: %w", err)
	}
	defer rows.Close()

	var records []ScenarioRecord
	for rows.Next() {
		var (
			rec      ScenarioRecord
			pass     int
			errsJSON string
		)
		if err := rows.Scan(&rec.RunID, &rec.Position, &rec.Name, &pass, &errsJSON, &rec.TraceHash); err != nil {
			return nil, fmt.Errorf("read scenario records: scan: %w", err)
		}
		rec.Pass = pass != 0
		if rec.Errors, err = unmarshalErrors(errsJSON); err != nil {
			return nil, fmt.Errorf("read scenario records: %s: %w", rec.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scenario records: %w", err)
	}
	return records, nil
}
