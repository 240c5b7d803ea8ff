package testutil

import (
	"sync"
	"time"

	"agendad/internal/models"
	"agendad/internal/providers"
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

// CountByLevel returns how many entries were recorded at a level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCompressor implements interfaces.CompressorInterface as identity.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// MockFeedSource implements interfaces.FeedSourceInterface.
type MockFeedSource struct {
	mu      sync.Mutex
	Payload string
	Err     error
	Fetches int
}

func (m *MockFeedSource) Fetch(_ models.Cohort) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Payload, nil
}

func (m *MockFeedSource) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fetches
}

// MockNotifier implements interfaces.NotifierInterface and records sends.
type MockNotifier struct {
	mu   sync.Mutex
	Sent map[int64][][]string
	Err  error
}

func (m *MockNotifier) Notify(chatID int64, lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.Sent == nil {
		m.Sent = make(map[int64][][]string)
	}
	m.Sent[chatID] = append(m.Sent[chatID], lines)
	return nil
}

// MockCache implements providers.CacheProviderInterface on a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Dels []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	m.Dels = append(m.Dels, key)
}

// MockMetrics implements providers.MetricsProviderInterface with counters.
type MockMetrics struct {
	mu           sync.Mutex
	CacheHits    int
	CacheMisses  int
	FeedFailures int
	Resolves     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *MockMetrics) SetResolvedEvents(_ string, _ int)                {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncFeedFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFailures++
}

func (m *MockMetrics) ObserveResolveDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resolves++
}
