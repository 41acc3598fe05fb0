package controllers

import (
	"net/http"

	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
)

type LockController struct {
	logger providers.Logger
	lock   services.LockServiceInterface
}

func NewLockController(logger providers.Logger, lock services.LockServiceInterface) *LockController {
	return &LockController{logger: logger, lock: lock}
}

// Status serves the cached lock decision; it never does network I/O.
// Clients wanting a fresh decision (e.g. right before a save) POST to
// /lock/check instead.
func (lc *LockController) Status(w http.ResponseWriter, r *http.Request) {
	status, ok := lc.lock.Status()
	if !ok {
		status = &models.LockStatus{
			State:  models.LockActive,
			Reason: "No lock check has run yet",
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (lc *LockController) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lc.lock.CheckStatus(r.Context()))
}
