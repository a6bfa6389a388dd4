package database

import (
	"database/sql"
	"errors"
	"fmt"

	"linkedin-scraper/internal/models"
)

// ErrRunNotFound is returned for an unknown run id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles batch run rows
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db.GetConn()}
}

// CreateRun inserts a run in the running state
func (rr *RunRepository) CreateRun(id, source, outputPath string) error {
	_, err := rr.db.Exec(`
		INSERT INTO runs (id, source, status, output_path) VALUES (?, ?, ?, ?)
	`, id, source, models.RunStatusRunning, outputPath)
	if err != nil {
		return fmt.Errorf("failed to create run %s: %w", id, err)
	}
	return nil
}

// UpdateRunStatus sets the status of a run
func (rr *RunRepository) UpdateRunStatus(id string, status models.RunStatus) error {
	res, err := rr.db.Exec(`
		UPDATE runs
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// GetRun loads one run
func (rr *RunRepository) GetRun(id string) (models.Run, error) {
	var run models.Run
	var source, output sql.NullString
	err := rr.db.QueryRow(`
		SELECT id, source, status, output_path, created_at, updated_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &source, &run.Status, &output, &run.CreatedAt, &run.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return run, err
	}
	run.Source = source.String
	run.OutputPath = output.String
	return run, nil
}

// ListRuns returns the most recent runs first
func (rr *RunRepository) ListRuns(limit int) ([]models.Run, error) {
	query := `SELECT id, source, status, output_path, created_at, updated_at FROM runs ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := rr.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		var source, output sql.NullString
		if err := rows.Scan(&run.ID, &source, &run.Status, &output, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, err
		}
		run.Source = source.String
		run.OutputPath = output.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateOutputPath records where the run writes its JSON array
func (rr *RunRepository) UpdateOutputPath(id, outputPath string) error {
	_, err := rr.db.Exec(`
		UPDATE runs
		SET output_path = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, outputPath, id)
	return err
}
