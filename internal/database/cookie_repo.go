package database

import (
	"database/sql"
	"fmt"

	"linkedin-scraper/internal/models"
)

// CookieRepository stores browser cookies per session key
type CookieRepository struct {
	db *sql.DB
}

// NewCookieRepository creates a new cookie repository
func NewCookieRepository(db *DB) *CookieRepository {
	return &CookieRepository{db: db.GetConn()}
}

// SaveCookies replaces the cookies stored under key
func (cr *CookieRepository) SaveCookies(key string, cookies []models.Cookie) error {
	tx, err := cr.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cookies WHERE session_key = ?`, key); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cookies (session_key, name, value, domain, path, expires, http_only, secure, same_site)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cookies {
		if _, err := stmt.Exec(key, c.Name, c.Value, c.Domain, c.Path, c.Expires, c.HTTPOnly, c.Secure, c.SameSite); err != nil {
			return fmt.Errorf("failed to insert cookie %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// GetCookies returns the cookies stored under key
func (cr *CookieRepository) GetCookies(key string) ([]models.Cookie, error) {
	rows, err := cr.db.Query(`
		SELECT name, value, domain, path, expires, http_only, secure, same_site
		FROM cookies WHERE session_key = ? ORDER BY id
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cookies []models.Cookie
	for rows.Next() {
		var c models.Cookie
		var domain, path, sameSite sql.NullString
		var expires sql.NullFloat64
		if err := rows.Scan(&c.Name, &c.Value, &domain, &path, &expires, &c.HTTPOnly, &c.Secure, &sameSite); err != nil {
			return nil, err
		}
		c.Domain = domain.String
		c.Path = path.String
		c.Expires = expires.Float64
		c.SameSite = sameSite.String
		cookies = append(cookies, c)
	}

	return cookies, rows.Err()
}

// ClearCookies deletes the cookies stored under key
func (cr *CookieRepository) ClearCookies(key string) error {
	_, err := cr.db.Exec(`DELETE FROM cookies WHERE session_key = ?`, key)
	return err
}

// CountCookies returns how many cookies are stored under key
func (cr *CookieRepository) CountCookies(key string) (int, error) {
	var count int
	err := cr.db.QueryRow(`SELECT COUNT(*) FROM cookies WHERE session_key = ?`, key).Scan(&count)
	return count, err
}
