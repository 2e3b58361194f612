package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WritesRecordsAndFinalizes(t *testing.T) {
	dir := t.TempDir()

	session, err := Open(dir, Metadata{Inbox: "beschwerde@example.com", Total: 2})
	require.NoError(t, err)

	require.NoError(t, session.Append(Record{
		EmailID:  "mail-1",
		Subject:  "Beschwerde Linie 706",
		Template: "websiteComplaintForm",
		Category: "Beschwerde stehen gelassen",
		Outcome:  "answered",
	}))
	require.NoError(t, session.Append(Record{
		EmailID: "mail-2",
		Subject: "Fahrplanauskunft",
		Outcome: "failed",
		Error:   "could not determine type of email",
	}))

	path, err := session.Finalize()
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var content struct {
		RunID       string   `json:"runId"`
		Inbox       string   `json:"inbox"`
		Total       int      `json:"total"`
		Records     []Record `json:"records"`
		CompletedAt string   `json:"completedAt"`
	}
	require.NoError(t, json.Unmarshal(data, &content))

	assert.NotEmpty(t, content.RunID)
	assert.Equal(t, "beschwerde@example.com", content.Inbox)
	assert.Equal(t, 2, content.Total)
	require.Len(t, content.Records, 2)
	assert.Equal(t, "mail-1", content.Records[0].EmailID)
	assert.Equal(t, "answered", content.Records[0].Outcome)
	assert.Equal(t, "failed", content.Records[1].Outcome)
	assert.NotEmpty(t, content.CompletedAt)
}

func TestSession_SnapshotSurvivesWithoutFinalize(t *testing.T) {
	dir := t.TempDir()

	session, err := Open(dir, Metadata{Inbox: "beschwerde@example.com", Total: 1})
	require.NoError(t, err)
	require.NoError(t, session.Append(Record{EmailID: "mail-1", Outcome: "answered"}))

	// No Finalize: the snapshot written on Append must already be on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mail-1")
}

func TestSession_AppendAfterFinalizeFails(t *testing.T) {
	session, err := Open(t.TempDir(), Metadata{})
	require.NoError(t, err)

	_, err = session.Finalize()
	require.NoError(t, err)

	assert.Error(t, session.Append(Record{EmailID: "mail-1"}))
}
