package controllers

import (
	"io"
	"net/http"

	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
)

// Backup documents can be big; allow more than the regular body cap.
const maxImportBodySize = 32 << 20 // 32 MB

type BackupController struct {
	logger providers.Logger
	backup services.BackupServiceInterface
}

func NewBackupController(logger providers.Logger, backup services.BackupServiceInterface) *BackupController {
	return &BackupController{logger: logger, backup: backup}
}

func (bc *BackupController) Export(w http.ResponseWriter, r *http.Request) {
	doc := bc.backup.Export()
	w.Header().Set("Content-Disposition", `attachment; filename="journal-backup.json"`)
	writeJSON(w, http.StatusOK, doc)
}

func (bc *BackupController) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = models.ImportModeMerge
	}

	result := bc.backup.Import(data, mode)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}
