package database

import (
	"database/sql"
	"fmt"
	"strings"

	"linkedin-scraper/internal/models"
)

// ProfileRepository tracks the per-URL outcome of a run
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db.GetConn()}
}

// ImportURLs adds urls to a run as pending (batch insert)
func (pr *ProfileRepository) ImportURLs(runID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	tx, err := pr.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO run_urls (run_id, url) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, err := stmt.Exec(runID, u); err != nil {
			return fmt.Errorf("failed to insert url %s: %w", u, err)
		}
	}

	return tx.Commit()
}

// GetRemainingURLs returns URLs of a run that are pending or failed, in
// import order
func (pr *ProfileRepository) GetRemainingURLs(runID string) ([]string, error) {
	rows, err := pr.db.Query(`
		SELECT url FROM run_urls
		WHERE run_id = ? AND status IN (?, ?)
		ORDER BY id ASC
	`, runID, models.URLStatusPending, models.URLStatusFailed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

// MarkSuccess stores the scraped record for url
func (pr *ProfileRepository) MarkSuccess(runID, url, name, recordJSON string) error {
	_, err := pr.db.Exec(`
		UPDATE run_urls
		SET status = ?,
			name = ?,
			record_json = ?,
			attempts = attempts + 1,
			last_error = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ? AND url = ?
	`, models.URLStatusSuccess, name, recordJSON, runID, url)
	return err
}

// MarkFailed records the error for url
func (pr *ProfileRepository) MarkFailed(runID, url, lastError string) error {
	_, err := pr.db.Exec(`
		UPDATE run_urls
		SET status = ?,
			attempts = attempts + 1,
			last_error = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE run_id = ? AND url = ?
	`, models.URLStatusFailed, lastError, runID, url)
	return err
}

// GetRecordsJSON returns the stored record of every successful URL
func (pr *ProfileRepository) GetRecordsJSON(runID string) ([]string, error) {
	rows, err := pr.db.Query(`
		SELECT record_json FROM run_urls
		WHERE run_id = ? AND status = ? AND record_json IS NOT NULL
		ORDER BY id ASC
	`, runID, models.URLStatusSuccess)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []string
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// GetRunStats returns URL counts per status for a run
func (pr *ProfileRepository) GetRunStats(runID string) (map[string]int, error) {
	rows, err := pr.db.Query(`
		SELECT status, COUNT(*) as count
		FROM run_urls
		WHERE run_id = ?
		GROUP BY status
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	total := 0
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		total += count
	}
	stats["total"] = total

	return stats, rows.Err()
}
