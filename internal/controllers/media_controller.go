package controllers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"cjd/internal/journal"
	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
)

const maxMediaBodySize = 64 << 20 // 64 MB

type MediaController struct {
	logger providers.Logger
	media  services.MediaServiceInterface
	store  *models.Store
}

func NewMediaController(logger providers.Logger, media services.MediaServiceInterface, store *models.Store) *MediaController {
	return &MediaController{logger: logger, media: media, store: store}
}

func (mc *MediaController) UploadImage(w http.ResponseWriter, r *http.Request) {
	mc.upload(w, r, mc.media.SaveImage)
}

func (mc *MediaController) UploadAudio(w http.ResponseWriter, r *http.Request) {
	mc.upload(w, r, mc.media.SaveAudio)
}

// upload spools the request body to a temp file and hands it to the
// media service, mirroring how the app passes a camera/recorder temp
// file. The temp file is always cleaned up; the permanent copy is the
// service's business.
func (mc *MediaController) upload(w http.ResponseWriter, r *http.Request, save func(tempPath, entryID string) (string, error)) {
	entryID := r.URL.Query().Get("entryId")
	if entryID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBodySize)
	tmp, err := os.CreateTemp("", "cjd-upload-*"+extensionFor(r))
	if err != nil {
		mc.logger.Errorf(providers.TypeMedia, "Cannot create temp file: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r.Body); err != nil {
		tmp.Close()
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	path, err := save(tmpPath, entryID)
	if err != nil {
		// Attachment losses must be loud, not silent.
		mc.logger.Errorf(providers.TypeMedia, "Media save failed for entry %s: %s", entryID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// extensionFor keeps the original extension when the client names the
// file via query, so stored files keep a recognizable type.
func extensionFor(r *http.Request) string {
	if name := r.URL.Query().Get("filename"); name != "" {
		return filepath.Ext(name)
	}
	return ""
}

func (mc *MediaController) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mc.media.Stats())
}

func (mc *MediaController) Sweep(w http.ResponseWriter, r *http.Request) {
	deleted := mc.media.SweepOrphans(journal.ReferencedMediaPaths(mc.store))
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": deleted})
}
