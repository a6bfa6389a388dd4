package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"linkedin-scraper/internal/logging"
	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/record"
	"linkedin-scraper/internal/storage"
)

// StateManager keeps the run ledger in step with the batch
type StateManager struct {
	dbStorage *storage.DBStorage
	runID     string
}

// NewStateManager creates a new StateManager instance
func NewStateManager(ds *storage.DBStorage) *StateManager {
	return &StateManager{dbStorage: ds}
}

// RunID returns the active run, empty before StartRun or ResumeRun
func (sm *StateManager) RunID() string {
	return sm.runID
}

// StartRun registers a new run holding every URL of urlsFile as pending
func (sm *StateManager) StartRun(urlsFile string) (string, []string, error) {
	id := uuid.NewString()
	urls, err := sm.dbStorage.ImportURLsFromFile(id, urlsFile)
	if err != nil {
		return "", nil, err
	}
	sm.runID = id
	return id, urls, nil
}

// ResumeRun reopens runID and returns its pending and failed URLs
func (sm *StateManager) ResumeRun(runID string) (models.Run, []string, error) {
	run, err := sm.dbStorage.RunRepo.GetRun(runID)
	if err != nil {
		return run, nil, err
	}
	urls, err := sm.dbStorage.ProfileRepo.GetRemainingURLs(runID)
	if err != nil {
		return run, nil, err
	}
	if err := sm.dbStorage.RunRepo.UpdateRunStatus(runID, models.RunStatusRunning); err != nil {
		return run, nil, err
	}
	sm.runID = runID
	return run, urls, nil
}

// SetOutputPath remembers the output file so a resume can reuse it
func (sm *StateManager) SetOutputPath(path string) error {
	return sm.dbStorage.RunRepo.UpdateOutputPath(sm.runID, path)
}

// MarkSuccess stores rec against its URL
func (sm *StateManager) MarkSuccess(rec models.ProfileRecord) {
	data, err := record.Marshal(rec)
	if err != nil {
		logging.WithField("url", rec.URL).Errorf("failed to encode record: %v", err)
		return
	}
	if err := sm.dbStorage.ProfileRepo.MarkSuccess(sm.runID, rec.URL, rec.Name, string(data)); err != nil {
		logging.WithFields(map[string]interface{}{"url": rec.URL, "run_id": sm.runID}).Errorf("failed to update ledger: %v", err)
	}
}

// MarkFailed records why url produced no record
func (sm *StateManager) MarkFailed(url string, cause error) {
	if err := sm.dbStorage.ProfileRepo.MarkFailed(sm.runID, url, cause.Error()); err != nil {
		logging.WithFields(map[string]interface{}{"url": url, "run_id": sm.runID}).Errorf("failed to update ledger: %v", err)
	}
}

// Finish closes the run as completed or interrupted
func (sm *StateManager) Finish(interrupted bool) error {
	status := models.RunStatusCompleted
	if interrupted {
		status = models.RunStatusInterrupted
	}
	return sm.dbStorage.RunRepo.UpdateRunStatus(sm.runID, status)
}

// Records returns every record the run has produced so far, including
// those from earlier attempts
func (sm *StateManager) Records() ([]models.ProfileRecord, error) {
	raw, err := sm.dbStorage.ProfileRepo.GetRecordsJSON(sm.runID)
	if err != nil {
		return nil, err
	}
	recs := make([]models.ProfileRecord, 0, len(raw))
	for _, r := range raw {
		var rec models.ProfileRecord
		if err := json.Unmarshal([]byte(r), &rec); err != nil {
			return nil, fmt.Errorf("corrupt record in run %s: %w", sm.runID, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Stats returns URL counts per status for the run
func (sm *StateManager) Stats() (map[string]int, error) {
	return sm.dbStorage.ProfileRepo.GetRunStats(sm.runID)
}
