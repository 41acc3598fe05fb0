package testutil

import (
	"sync"
	"time"

	"cjd/internal/models"
	"cjd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// badge awards per category.
type MockMetrics struct {
	mu          sync.Mutex
	BadgeAwards map[string]int
	LockStates  []string
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{BadgeAwards: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *MockMetrics) SetMediaBytes(_ int64)                            {}

func (m *MockMetrics) IncBadgeAwards(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BadgeAwards[category]++
}

func (m *MockMetrics) SetLockState(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockStates = append(m.LockStates, state)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMediaService implements services.MediaServiceInterface and records
// deletions. FailPaths lists paths whose deletion should error.
type MockMediaService struct {
	mu        sync.Mutex
	Deleted   []string
	FailPaths map[string]error
	SavedAs   string
	SaveErr   error
}

func (m *MockMediaService) SaveImage(tempPath, entryID string) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	return m.SavedAs, nil
}

func (m *MockMediaService) SaveAudio(tempPath, entryID string) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	return m.SavedAs, nil
}

func (m *MockMediaService) Delete(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailPaths[path]; ok {
		return false, err
	}
	m.Deleted = append(m.Deleted, path)
	return true, nil
}

func (m *MockMediaService) SweepOrphans(_ map[string]struct{}) int { return 0 }

func (m *MockMediaService) Stats() models.MediaStats { return models.MediaStats{} }
