package testutil

import (
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"context"
	"sync"
	"time"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu               sync.Mutex
	Commands         map[string]int
	Announcements    int
	SelectorOutcomes map[string]int
	FollowedTotal    int
	OpenSessions     int
	CatalogCalls     int
	Persists         int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) ObserveCatalogRequest(_ string, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogCalls++
}
func (m *MockMetrics) IncCommand(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Commands == nil {
		m.Commands = make(map[string]int)
	}
	m.Commands[command]++
}
func (m *MockMetrics) AddAnnouncements(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Announcements += count
}
func (m *MockMetrics) IncSelectorOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SelectorOutcomes == nil {
		m.SelectorOutcomes = make(map[string]int)
	}
	m.SelectorOutcomes[outcome]++
}
func (m *MockMetrics) SetFollowedTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FollowedTotal = count
}
func (m *MockMetrics) SetOpenSessions(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenSessions = count
}

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

// MockCompressor is an identity compressor with injectable behaviour.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
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

// MockCatalog implements catalog.ClientInterface with canned answers.
type MockCatalog struct {
	mu sync.Mutex

	Volumes    map[string][]models.VolumeSearchResult
	VolumesErr error

	// IssuesByName is keyed by the lower-cased query.
	IssuesByName    map[string][]models.Issue
	IssuesByNameErr map[string]error

	IssuesByDate    []models.Issue
	IssuesByDateErr error

	SearchCalls []string
	NameCalls   []NameCall
	DateCalls   []time.Time
}

type NameCall struct {
	Name string
	Sort string
}

func (m *MockCatalog) SearchVolumes(_ context.Context, name, _ string) ([]models.VolumeSearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls = append(m.SearchCalls, name)
	if m.VolumesErr != nil {
		return nil, m.VolumesErr
	}
	return m.Volumes[name], nil
}

func (m *MockCatalog) ListIssuesByVolumeName(_ context.Context, name, sort string) ([]models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NameCalls = append(m.NameCalls, NameCall{Name: name, Sort: sort})
	if err, ok := m.IssuesByNameErr[models.FoldName(name)]; ok {
		return nil, err
	}
	return m.IssuesByName[models.FoldName(name)], nil
}

func (m *MockCatalog) ListIssuesByStoreDate(_ context.Context, day time.Time) ([]models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DateCalls = append(m.DateCalls, day)
	if m.IssuesByDateErr != nil {
		return nil, m.IssuesByDateErr
	}
	return m.IssuesByDate, nil
}

// SentMessage is one outgoing message captured by MockMessenger.
type SentMessage struct {
	ChannelID    string
	Text         string
	Announcement *models.Announcement
}

// MockMessenger implements interfaces.MessengerInterface and records everything sent.
type MockMessenger struct {
	mu      sync.Mutex
	Sent    []SentMessage
	Direct  map[string][]string
	Deleted []string
	SendErr error
}

func (m *MockMessenger) SendText(_ context.Context, channelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, SentMessage{ChannelID: channelID, Text: text})
	return nil
}

func (m *MockMessenger) SendAnnouncement(_ context.Context, channelID string, a models.Announcement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, SentMessage{ChannelID: channelID, Announcement: &a})
	return nil
}

func (m *MockMessenger) SendDirect(_ context.Context, userID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Direct == nil {
		m.Direct = make(map[string][]string)
	}
	m.Direct[userID] = append(m.Direct[userID], text)
	return nil
}

func (m *MockMessenger) DeleteMessage(_ context.Context, _ string, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, messageID)
	return nil
}

// Texts returns the plain text messages sent to channelID, in order.
func (m *MockMessenger) Texts(channelID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.Sent {
		if s.ChannelID == channelID && s.Announcement == nil {
			out = append(out, s.Text)
		}
	}
	return out
}

// Announcements returns the announcements sent to channelID, in order.
func (m *MockMessenger) Announcements(channelID string) []models.Announcement {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Announcement
	for _, s := range m.Sent {
		if s.ChannelID == channelID && s.Announcement != nil {
			out = append(out, *s.Announcement)
		}
	}
	return out
}

// Last returns the most recent text sent to channelID or "".
func (m *MockMessenger) Last(channelID string) string {
	texts := m.Texts(channelID)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// SyncDispatcher runs submitted tasks inline, which keeps tests deterministic.
type SyncDispatcher struct {
	Submitted int
}

func (d *SyncDispatcher) Submit(task func()) {
	d.Submitted++
	task()
}

func (d *SyncDispatcher) Stop() {}

// ManualTimers captures AfterFunc callbacks so tests decide when a timeout fires.
type ManualTimers struct {
	mu     sync.Mutex
	Timers []*ManualTimer
}

type ManualTimer struct {
	Duration time.Duration
	fn       func()
	stopped  bool
}

func (m *ManualTimers) AfterFunc(d time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &ManualTimer{Duration: d, fn: fn}
	m.Timers = append(m.Timers, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		was := !t.stopped
		t.stopped = true
		return was
	}
}

// FireLatest runs the most recently armed timer if it has not been stopped.
func (m *ManualTimers) FireLatest() bool {
	m.mu.Lock()
	if len(m.Timers) == 0 {
		m.mu.Unlock()
		return false
	}
	t := m.Timers[len(m.Timers)-1]
	if t.stopped {
		m.mu.Unlock()
		return false
	}
	t.stopped = true
	m.mu.Unlock()
	t.fn()
	return true
}

// FireAll runs every armed timer that has not been stopped, oldest first.
func (m *ManualTimers) FireAll() int {
	m.mu.Lock()
	var pending []*ManualTimer
	for _, t := range m.Timers {
		if !t.stopped {
			t.stopped = true
			pending = append(pending, t)
		}
	}
	m.mu.Unlock()
	for _, t := range pending {
		t.fn()
	}
	return len(pending)
}
