package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"

	"cjd/internal/models"
	"cjd/internal/providers"
	"cjd/internal/structures"
)

const (
	// Rolling tamper-log length.
	maxCheckpoints = 10

	// Device clock moving backward more than this between two checks is
	// a high-severity tamper signal.
	backwardTolerance = 60 * time.Second

	// A forward jump bigger than this is a medium-severity signal.
	forwardJumpThreshold = 7 * 24 * time.Hour

	highSignalWeight   = 50
	mediumSignalWeight = 25
	maxConfidence      = 100
	lockConfidence     = 75
)

type LockServiceInterface interface {
	// CheckStatus recomputes the lock state from fresh time inputs and
	// caches the result. This is the only method that touches the
	// network.
	CheckStatus(ctx context.Context) *models.LockStatus

	// Status returns the cached result of the last full check, if any.
	Status() (*models.LockStatus, bool)

	// CanEdit reads the cached decision and never blocks on I/O.
	CanEdit() bool

	// LockMessage returns the cached banner text for the UI.
	LockMessage() string
}

// LockService decides whether the journal is writable: a state machine
// over elapsed service time (network-derived where possible) plus a
// clock-tamper heuristic over a rolling checkpoint log.
type LockService struct {
	store    *models.Store
	profiles ProfileServiceInterface
	sources  []TimeSource
	timeout  time.Duration
	location *time.Location
	grace    time.Duration
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	// deviceClock is swappable so tests can script clock regressions.
	deviceClock func() time.Time

	inFlight atomic.Bool
}

func NewLockService(conf *structures.Config, store *models.Store, profiles ProfileServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) LockServiceInterface {
	location, err := time.LoadLocation(conf.ServiceLock.Timezone)
	if err != nil {
		logger.Errorf(providers.TypeLock, "Unknown timezone %q, falling back to UTC: %s", conf.ServiceLock.Timezone, err)
		location = time.UTC
	}
	return &LockService{
		store:       store,
		profiles:    profiles,
		sources:     NewHTTPTimeSources(conf.ServiceLock.TimeSources),
		timeout:     conf.ServiceLock.SourceTimeout,
		location:    location,
		grace:       time.Duration(conf.ServiceLock.GraceDays) * 24 * time.Hour,
		logger:      logger,
		metrics:     metrics,
		deviceClock: time.Now,
	}
}

func (ls *LockService) CheckStatus(ctx context.Context) *models.LockStatus {
	// Single flight: a second caller while a check runs gets the cache.
	if !ls.inFlight.CompareAndSwap(false, true) {
		if cached, ok := ls.store.LockStatus(); ok {
			return cached
		}
		return &models.LockStatus{State: models.LockActive, Reason: "Status check in progress"}
	}
	defer ls.inFlight.Store(false)

	deviceNow := ls.deviceClock()
	networkTimes := ls.fetchNetworkTimes(ctx)

	ls.store.AppendCheckpoint(&models.TimeCheckpoint{
		DeviceTime:   deviceNow,
		NetworkTimes: networkTimes,
	}, maxCheckpoints)

	trusted := deviceNow.In(ls.location)
	trustLevel := models.TrustDevice
	if len(networkTimes) > 0 {
		trusted = medianTime(networkTimes).In(ls.location)
		trustLevel = models.TrustNetwork
	}

	confidence, highSignals := tamperConfidence(ls.store.Checkpoints())
	status := ls.evaluate(trusted, trustLevel, confidence, highSignals)

	ls.store.PutLockStatus(status)
	ls.metrics.SetLockState(status.State)
	ls.logger.Debugf(providers.TypeLock, "Lock check: state=%s trust=%s confidence=%d", status.State, trustLevel, confidence)
	return status
}

// evaluate applies the transition rules for one status check. A
// high-severity signal anywhere in the rolling log locks on its own:
// a single observed clock regression must not wait for the score to
// accumulate past the threshold.
func (ls *LockService) evaluate(trusted time.Time, trustLevel string, confidence, highSignals int) *models.LockStatus {
	status := &models.LockStatus{
		TrustLevel: trustLevel,
		CheckedAt:  models.FormatInstant(trusted),
	}

	profile, ok := ls.profiles.Get()
	if !ok {
		status.State = models.LockActive
		status.Reason = "No service profile configured yet"
		return status
	}
	endDate, okEnd := models.ParseInstant(profile.EndDate)
	if !okEnd {
		status.State = models.LockActive
		status.Reason = "Service end date is unreadable"
		return status
	}
	graceEnd := endDate.Add(ls.grace)
	status.ServiceEndDate = models.FormatInstant(endDate)
	status.GracePeriodEnd = models.FormatInstant(graceEnd)

	switch {
	case confidence > lockConfidence || highSignals > 0:
		status.State = models.LockTimeManipulation
		status.IsLocked = true
		status.Reason = "Device clock changes look suspicious. Journal is read-only until the clock is stable."
	case trusted.After(graceEnd):
		status.State = models.LockCompleted
		status.IsLocked = true
		status.Reason = "Your service year has ended. The journal is now a read-only keepsake."
	case trusted.After(endDate):
		days := models.DaysBetween(trusted, graceEnd)
		status.State = models.LockGracePeriod
		status.DaysRemaining = days
		status.Reason = fmt.Sprintf("Service completed. %d day(s) left to finish your final entries.", days)
	default:
		days := models.DaysBetween(trusted, endDate)
		status.State = models.LockActive
		status.DaysRemaining = days
		status.Reason = fmt.Sprintf("%d day(s) of service remaining.", days)
	}
	return status
}

// fetchNetworkTimes queries every source concurrently with a per-source
// timeout. Failures are dropped, not errors: the caller falls back to
// the device clock when nothing responds.
func (ls *LockService) fetchNetworkTimes(ctx context.Context) []time.Time {
	var (
		mu    sync.Mutex
		times []time.Time
		wg    sync.WaitGroup
	)
	for _, source := range ls.sources {
		wg.Add(1)
		go func(src TimeSource) {
			defer wg.Done()
			srcCtx, cancel := context.WithTimeout(ctx, ls.timeout)
			defer cancel()
			t, err := src.Now(srcCtx)
			if err != nil {
				ls.logger.Debugf(providers.TypeLock, "Time source %s failed: %s", src.Name(), err)
				return
			}
			mu.Lock()
			times = append(times, t)
			mu.Unlock()
		}(source)
	}
	wg.Wait()
	return times
}

func (ls *LockService) Status() (*models.LockStatus, bool) {
	return ls.store.LockStatus()
}

func (ls *LockService) CanEdit() bool {
	status, ok := ls.store.LockStatus()
	if !ok {
		return true
	}
	return !status.IsLocked
}

func (ls *LockService) LockMessage() string {
	status, ok := ls.store.LockStatus()
	if !ok {
		return ""
	}
	return status.Reason
}

// medianTime picks the median of the collected samples, favoring the
// later of the two middle values on even counts.
func medianTime(times []time.Time) time.Time {
	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted[len(sorted)/2]
}

// tamperConfidence scores the rolling checkpoint log: each backward
// move beyond tolerance is a high signal, each outsized forward jump a
// medium one.
func tamperConfidence(checkpoints []*models.TimeCheckpoint) (confidence, high int) {
	medium := 0
	for i := 1; i < len(checkpoints); i++ {
		delta := checkpoints[i].DeviceTime.Sub(checkpoints[i-1].DeviceTime)
		switch {
		case delta < -backwardTolerance:
			high++
		case delta > forwardJumpThreshold:
			medium++
		}
	}
	confidence = highSignalWeight*high + mediumSignalWeight*medium
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return confidence, high
}
