// internal/storage/db_storage.go
package storage

import (
	"errors"
	"fmt"
	"sync"

	"linkedin-scraper/internal/database"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

// DefaultSessionKey names the cookie set used when none is given
const DefaultSessionKey = "default"

// ErrNoURLs is returned for a URL list without any profile URL
var ErrNoURLs = errors.New("no URLs to import")

// DBStorage manages all storage operations using SQLite
type DBStorage struct {
	DB          *database.DB
	RunRepo     *database.RunRepository
	ProfileRepo *database.ProfileRepository
	CookieRepo  *database.CookieRepository
	mutex       sync.Mutex
}

// NewDBStorage creates a new database storage
func NewDBStorage(dbPath string) (*DBStorage, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return &DBStorage{
		DB:          db,
		RunRepo:     database.NewRunRepository(db),
		ProfileRepo: database.NewProfileRepository(db),
		CookieRepo:  database.NewCookieRepository(db),
	}, nil
}

// Close closes the database connection
func (ds *DBStorage) Close() error {
	return ds.DB.Close()
}

// ImportURLsFromFile reads a URL list and registers it as run runID with
// every URL pending. Nothing is written when the list is empty.
func (ds *DBStorage) ImportURLsFromFile(runID, filePath string) ([]string, error) {
	urls, err := utils.ReadURLList(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read urls file: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoURLs, filePath)
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()
	if err := ds.RunRepo.CreateRun(runID, filePath, ""); err != nil {
		return nil, err
	}
	if err := ds.ProfileRepo.ImportURLs(runID, urls); err != nil {
		return nil, fmt.Errorf("failed to import urls: %w", err)
	}
	return urls, nil
}

// CookieJar keeps one login session's cookies in the database
type CookieJar struct {
	dbStorage *DBStorage
	key       string
}

// NewCookieJar creates a jar for the named session
func NewCookieJar(ds *DBStorage, key string) *CookieJar {
	if key == "" {
		key = DefaultSessionKey
	}
	return &CookieJar{dbStorage: ds, key: key}
}

// LoadCookies returns the saved cookies, if any
func (cj *CookieJar) LoadCookies() ([]models.Cookie, error) {
	if cj.dbStorage == nil {
		return nil, fmt.Errorf("database storage not initialized")
	}
	return cj.dbStorage.CookieRepo.GetCookies(cj.key)
}

// SaveCookies replaces the saved cookies
func (cj *CookieJar) SaveCookies(cookies []models.Cookie) error {
	if cj.dbStorage == nil {
		return fmt.Errorf("database storage not initialized")
	}
	cj.dbStorage.mutex.Lock()
	defer cj.dbStorage.mutex.Unlock()
	return cj.dbStorage.CookieRepo.SaveCookies(cj.key, cookies)
}

// ClearCookies forgets the saved session
func (cj *CookieJar) ClearCookies() error {
	if cj.dbStorage == nil {
		return fmt.Errorf("database storage not initialized")
	}
	cj.dbStorage.mutex.Lock()
	defer cj.dbStorage.mutex.Unlock()
	return cj.dbStorage.CookieRepo.ClearCookies(cj.key)
}
