// Package analysis writes one JSON result file per batch run so the outcome
// of a polling pass can be inspected after the fact. A Session is an explicit
// handle: callers open one per batch, append per-email records and finalize
// it when the batch is done. Nothing is shared between sessions, so
// concurrent batches write to independent files.
package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Metadata struct {
	Inbox string `json:"inbox"`
	Total int    `json:"total"`
}

// Record is one per-email result inside a batch.
type Record struct {
	EmailID  string `json:"emailId"`
	Subject  string `json:"subject"`
	Template string `json:"template,omitempty"`
	Category string `json:"category,omitempty"`
	Outcome  string `json:"outcome"`
	Error    string `json:"error,omitempty"`
}

type fileContent struct {
	RunID       string    `json:"runId"`
	Inbox       string    `json:"inbox"`
	StartTime   time.Time `json:"startTime"`
	Total       int       `json:"total"`
	Records     []Record  `json:"records"`
	LastUpdated time.Time `json:"lastUpdated"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

type Session struct {
	mu        sync.Mutex
	path      string
	content   fileContent
	finalized bool
}

// Open creates the results directory if needed and starts a new session file.
func Open(dir string, metadata Metadata) (*Session, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create analysis directory")
	}

	runID := uuid.New().String()
	now := time.Now().UTC()
	session := &Session{
		path: filepath.Join(dir, fmt.Sprintf("email-analysis-%s-%s.json", now.Format("2006-01-02T15-04-05"), runID[:8])),
		content: fileContent{
			RunID:     runID,
			Inbox:     metadata.Inbox,
			StartTime: now,
			Total:     metadata.Total,
			Records:   []Record{},
		},
	}

	if err := session.write(); err != nil {
		return nil, err
	}

	return session, nil
}

// Append adds one record and rewrites the snapshot, so a crashed batch still
// leaves the records processed so far on disk.
func (s *Session) Append(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return errors.New("analysis session already finalized")
	}

	s.content.Records = append(s.content.Records, record)
	s.content.LastUpdated = time.Now().UTC()
	return s.write()
}

// Finalize stamps the completion time, closes the session and returns the
// file path.
func (s *Session) Finalize() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return "", errors.New("analysis session already finalized")
	}

	s.finalized = true
	s.content.CompletedAt = time.Now().UTC()
	if err := s.write(); err != nil {
		return "", err
	}

	return s.path, nil
}

func (s *Session) write() error {
	data, err := json.MarshalIndent(s.content, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal analysis file")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write analysis file")
	}
	return nil
}
