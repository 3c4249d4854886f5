package store

import (
	"context"
	"fmt"
)

// WriteRun stores a run and its scenario records in one transaction.
// A run id that already exists is ignored, along with its records.
// Record RunID and Position are filled in from run and slice order.
func (s *Store) WriteRun(ctx context.Context, run Run, records []ScenarioRecord) error {
	if run.ID == "" {
		return fmt.Errorf("write run: id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, passed, failed, total)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, run.ID, run.CreatedAt, run.Passed, run.Failed, run.Total)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write run: rows affected: %w", err)
	}
	if inserted == 0 {
		return tx.Commit()
	}

	for i, rec := range records {
		errsJSON, err := marshalErrors(rec.Errors)
		if err != nil {
			return fmt.Errorf("write run: scenario %q: %w", rec.Name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO scenario_results (run_id, position, name, pass, errors, trace_hash)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i, rec.Name, boolToInt(rec.Pass), errsJSON, rec.TraceHash)
		if err != nil {
			return fmt.Errorf("write run: scenario %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: commit: %w", err)
	}
	return nil
}
