// Package memory keeps projects and evaluations in process memory. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"sync"
	"time"

	"granteval-go/internal/model"
)

type DB struct {
	mutex sync.RWMutex
	now   func() time.Time

	projects       map[int64]*model.Project
	projectsByExt  map[string]int64
	lastProjectID  int64
	evaluations    map[int64]*model.Evaluation
	evaluationsKey map[evaluationKey]int64
	lastEvalID     int64
}

type evaluationKey struct {
	reviewerID string
	projectID  int64
}

func NewDB() *DB {
	return &DB{
		now:            time.Now,
		projects:       map[int64]*model.Project{},
		projectsByExt:  map[string]int64{},
		evaluations:    map[int64]*model.Evaluation{},
		evaluationsKey: map[evaluationKey]int64{},
	}
}

// SetClock replaces the time source used for last-synced and evaluation
// timestamps.
func (db *DB) SetClock(now func() time.Time) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.now = now
}
