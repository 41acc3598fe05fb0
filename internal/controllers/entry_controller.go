package controllers

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type EntryController struct {
	logger  providers.Logger
	entries services.EntryServiceInterface
	badges  services.BadgeServiceInterface
	lock    services.LockServiceInterface
	cache   providers.CacheProviderInterface
}

func NewEntryController(logger providers.Logger, entries services.EntryServiceInterface, badges services.BadgeServiceInterface, lock services.LockServiceInterface, cache providers.CacheProviderInterface) *EntryController {
	return &EntryController{
		logger:  logger,
		entries: entries,
		badges:  badges,
		lock:    lock,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func serveFromCacheOrCompute(w http.ResponseWriter, cache providers.CacheProviderInterface, cacheKey string, compute func() (any, error)) {
	if data, ok := cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// requireEditable answers 423 and returns false when the service lock
// currently forbids journal mutation. Render-time gating uses the
// cached decision; callers wanting a fresh one hit /lock/check first.
func (ec *EntryController) requireEditable(w http.ResponseWriter) bool {
	if ec.lock.CanEdit() {
		return true
	}
	writeJSON(w, http.StatusLocked, map[string]string{
		"error":   "journal is locked",
		"message": ec.lock.LockMessage(),
	})
	return false
}

func (ec *EntryController) List(w http.ResponseWriter, r *http.Request) {
	serveFromCacheOrCompute(w, ec.cache, "entries", func() (any, error) {
		return ec.entries.List(), nil
	})
}

func (ec *EntryController) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	entry, ok := ec.entries.Get(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (ec *EntryController) Save(w http.ResponseWriter, r *http.Request) {
	if !ec.requireEditable(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.JournalEntry
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, existed := ec.entries.Get(payload.ID)
	id := ec.entries.Save(&payload)
	if !existed {
		saved, _ := ec.entries.Get(id)
		ec.badges.RecordEntryCreated(saved)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (ec *EntryController) Update(w http.ResponseWriter, r *http.Request) {
	if !ec.requireEditable(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	id := r.URL.Query().Get("id")
	var patch models.EntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if !ec.entries.Update(id, &patch) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (ec *EntryController) Delete(w http.ResponseWriter, r *http.Request) {
	if !ec.requireEditable(w) {
		return
	}
	id := r.URL.Query().Get("id")
	if !ec.entries.Delete(id) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (ec *EntryController) ByMonth(w http.ResponseWriter, r *http.Request) {
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	if errM != nil || errY != nil || month < 1 || month > 12 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cacheKey := "month:" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
	serveFromCacheOrCompute(w, ec.cache, cacheKey, func() (any, error) {
		return ec.entries.ByMonth(time.Month(month), year), nil
	})
}

func (ec *EntryController) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	ec.badges.RecordSearch()
	writeJSON(w, http.StatusOK, ec.entries.Search(query))
}

func (ec *EntryController) Repair(w http.ResponseWriter, r *http.Request) {
	fixed := ec.entries.ValidateAndRepair()
	if fixed > 0 {
		ec.logger.Infof(providers.TypeStore, "Repair pass fixed %d entries", fixed)
	}
	writeJSON(w, http.StatusOK, map[string]int{"fixedCount": fixed})
}
