package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cjd/internal/models"
)

// sweepRecorderMedia records the referenced set handed to SweepOrphans.
type sweepRecorderMedia struct {
	referenced map[string]struct{}
	deleted    int
}

func (m *sweepRecorderMedia) SaveImage(_, _ string) (string, error) { return "", nil }
func (m *sweepRecorderMedia) SaveAudio(_, _ string) (string, error) { return "", nil }
func (m *sweepRecorderMedia) Delete(_ string) (bool, error)         { return false, nil }
func (m *sweepRecorderMedia) Stats() models.MediaStats              { return models.MediaStats{} }
func (m *sweepRecorderMedia) SweepOrphans(referenced map[string]struct{}) int {
	m.referenced = referenced
	return m.deleted
}

func TestMediaController_Sweep_PassesReferencedClosure(t *testing.T) {
	store := models.NewStore()
	store.UpsertEntry(&models.JournalEntry{
		ID:     "entry_1",
		Images: []string{"/media/images/a.jpg", "/media/images/b.jpg"},
		AudioNotes: []models.AudioNote{
			{ID: "n1", URI: "/media/audio/n1.m4a"},
			{ID: "n2"},
		},
	})
	store.UpsertEntry(&models.JournalEntry{
		ID:     "entry_2",
		Images: []string{"/media/images/c.jpg"},
	})

	media := &sweepRecorderMedia{deleted: 2}
	mc := NewMediaController(&mockLogger{}, media, store)

	rec := httptest.NewRecorder()
	mc.Sweep(rec, httptest.NewRequest(http.MethodPost, "/media/sweep", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body["deletedCount"])

	// The service sees every referenced path and nothing else; audio
	// notes without a uri contribute no path.
	assert.Len(t, media.referenced, 4)
	assert.Contains(t, media.referenced, "/media/images/a.jpg")
	assert.Contains(t, media.referenced, "/media/images/b.jpg")
	assert.Contains(t, media.referenced, "/media/images/c.jpg")
	assert.Contains(t, media.referenced, "/media/audio/n1.m4a")
}
