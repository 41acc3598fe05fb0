package journal

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"cjd/internal/journal/interfaces"
	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/services"
	"cjd/internal/structures"
)

// Scheduler runs the daemon's periodic jobs: snapshot persistence,
// service-lock rechecks and opportunistic orphan sweeps. Orphan sweeps
// are housekeeping, not consistency: a media copy that succeeded before
// an entry write failed leaves an orphan until the next sweep.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       *models.Store
	fileManager *FileManager
	media       services.MediaServiceInterface
	lock        services.LockServiceInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Infof(providers.TypeStore, "Persisted store to file %s", s.config.Persistence.FilePath)
	})

	s.cron.AddFunc(gron.Every(s.config.ServiceLock.RecheckInterval), func() {
		status := s.lock.CheckStatus(context.Background())
		s.logger.Infof(providers.TypeLock, "Periodic lock recheck: %s", status.State)
	})

	if s.config.Media.SweepInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Media.SweepInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			referenced := ReferencedMediaPaths(s.store)
			deleted := s.media.SweepOrphans(referenced)
			if deleted > 0 {
				s.logger.Infof(providers.TypeMedia, "Periodic sweep removed %d orphan(s)", deleted)
			}
			stats := s.media.Stats()
			s.metrics.SetMediaBytes(stats.TotalBytes)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Persisting store to file...")
	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// ReferencedMediaPaths builds the closure set of every media path any
// entry references. The media service is handed this set, never the
// entry records themselves.
func ReferencedMediaPaths(store *models.Store) map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, e := range store.Entries() {
		for _, p := range e.MediaPaths() {
			referenced[p] = struct{}{}
		}
	}
	return referenced
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store *models.Store, fileManager *FileManager, media services.MediaServiceInterface, lock services.LockServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		store:       store,
		fileManager: fileManager,
		media:       media,
		lock:        lock,
	}
}
