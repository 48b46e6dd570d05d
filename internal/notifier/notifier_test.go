package notifier

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"comicbot/internal/catalog"
	"comicbot/internal/follows"
	"comicbot/internal/models"
	"comicbot/internal/structures"
	"comicbot/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const broadcast = "news"

var (
	batman = models.VolumeSearchResult{VolumeID: 1000, Name: "Batman", StartYear: "2016", Publisher: "DC Comics"}
	saga   = models.VolumeSearchResult{VolumeID: 3000, Name: "Saga", StartYear: "2012", Publisher: "Image"}
	now    = time.Date(2026, time.October, 19, 8, 0, 30, 0, time.UTC)
)

type fixture struct {
	notifier  *Notifier
	catalog   *testutil.MockCatalog
	store     follows.StoreInterface
	messenger *testutil.MockMessenger
	metrics   *testutil.MockMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := &structures.Config{
		Discord:     structures.DiscordConfig{BroadcastChannelID: broadcast},
		Scheduler:   structures.SchedulerConfig{Timezone: "UTC"},
		Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "follows.json")},
	}
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}
	store := follows.NewStore(conf, metrics, logger)
	require.NoError(t, store.Load())

	f := &fixture{
		catalog:   &testutil.MockCatalog{IssuesByName: map[string][]models.Issue{}, IssuesByNameErr: map[string]error{}},
		store:     store,
		messenger: &testutil.MockMessenger{},
		metrics:   metrics,
	}
	n := NewNotifier(conf, f.catalog, store, f.messenger, metrics, logger).(*Notifier)
	n.now = func() time.Time { return now }
	f.notifier = n
	return f
}

func (f *fixture) follow(t *testing.T, userID string, v models.VolumeSearchResult) {
	t.Helper()
	_, err := f.store.Follow(userID, v)
	require.NoError(t, err)
}

func TestRunDailyPass_AnnouncesFollowedSeries(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u2", batman)
	f.follow(t, "u1", batman)
	f.follow(t, "u1", saga)
	f.catalog.IssuesByDate = []models.Issue{
		{Title: "The Court", IssueNumber: "12", StoreDate: "2026-10-19", VolumeName: "BATMAN", DetailURL: "https://cv/issue/1", ImageURL: "https://cv/img/1.jpg"},
		{Title: "Nobody Follows", StoreDate: "2026-10-19", VolumeName: "Aquaman"},
	}

	require.NoError(t, f.notifier.RunDailyPass(context.Background()))

	require.Len(t, f.catalog.DateCalls, 1)
	assert.Equal(t, "2026-10-19", f.catalog.DateCalls[0].Format(models.StoreDateLayout))

	want := []models.Announcement{{
		Title:      "The Court",
		URL:        "https://cv/issue/1",
		SeriesName: "BATMAN",
		StoreDate:  "2026-10-19",
		ImageURL:   "https://cv/img/1.jpg",
		Footer:     "Powered by ComicVine",
		Mentions:   []string{"<@u1>", "<@u2>"},
	}}
	if diff := cmp.Diff(want, f.messenger.Announcements(broadcast)); diff != "" {
		t.Errorf("announcements mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, f.metrics.Announcements)
}

func TestRunDailyPass_NoMatchIsSilent(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", saga)
	f.catalog.IssuesByDate = []models.Issue{{Title: "Other", VolumeName: "Aquaman", StoreDate: "2026-10-19"}}

	require.NoError(t, f.notifier.RunDailyPass(context.Background()))
	assert.Empty(t, f.messenger.Sent)
}

func TestRunDailyPass_CatalogFailure(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.catalog.IssuesByDateErr = models.ErrCatalogUnavailable

	err := f.notifier.RunDailyPass(context.Background())

	assert.True(t, errors.Is(err, models.ErrCatalogUnavailable))
	assert.Empty(t, f.messenger.Sent)
}

func TestRunDailyPass_SendFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.catalog.IssuesByDate = []models.Issue{{Title: "Batman", IssueNumber: "1", VolumeName: "Batman", StoreDate: "2026-10-19"}}
	f.messenger.SendErr = errors.New("discord down")

	assert.NoError(t, f.notifier.RunDailyPass(context.Background()))
	assert.Equal(t, 0, f.metrics.Announcements)
}

func TestAnnounceToday(t *testing.T) {
	f := newFixture(t)
	f.catalog.IssuesByDate = []models.Issue{
		{Title: "Saga", IssueNumber: "67", VolumeName: "Saga"},
		{Title: "Kill", VolumeName: "Aquaman", StoreDate: "2026-10-19"},
	}

	require.NoError(t, f.notifier.AnnounceToday(context.Background()))

	got := f.messenger.Announcements(broadcast)
	require.Len(t, got, 2)
	assert.Equal(t, "Saga #67", got[0].Title)
	assert.Equal(t, "2026-10-19", got[0].StoreDate, "missing store date falls back to today")
	assert.Empty(t, got[0].Mentions)
}

func TestAnnounceToday_EmptyDay(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.notifier.AnnounceToday(context.Background()))
	assert.Equal(t, "📭 No comics released today.", f.messenger.Last(broadcast))
}

func TestAnnounceToday_CatalogFailure(t *testing.T) {
	f := newFixture(t)
	f.catalog.IssuesByDateErr = models.ErrCatalogUnavailable

	assert.Error(t, f.notifier.AnnounceToday(context.Background()))
	assert.Contains(t, f.messenger.Last(broadcast), "Error fetching comics")
}

func TestListUpcomingForUser(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.follow(t, "u1", saga)
	f.catalog.IssuesByName["batman"] = []models.Issue{
		{Title: "Old", VolumeName: "Batman", StoreDate: "2026-10-01"},
		{Title: "Wrong Series", VolumeName: "Batman Beyond", StoreDate: "2026-10-20"},
		{Title: "Next Week", VolumeName: "Batman", StoreDate: "2026-10-26", DetailURL: "https://cv/issue/9"},
	}
	f.catalog.IssuesByName["saga"] = []models.Issue{
		{Title: "Saga", IssueNumber: "60", VolumeName: "Saga", StoreDate: "2025-01-01"},
	}

	lines := f.notifier.ListUpcomingForUser(context.Background(), "u1")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Next Week on 2026-10-26")
	assert.Contains(t, lines[0], "https://cv/issue/9")
	assert.Contains(t, lines[1], "**Saga**: no upcoming issue found")
	for _, call := range f.catalog.NameCalls {
		assert.Equal(t, catalog.SortStoreDateAsc, call.Sort)
	}
}

func TestListUpcomingForUser_IncludesToday(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.catalog.IssuesByName["batman"] = []models.Issue{{Title: "Today", VolumeName: "Batman", StoreDate: "2026-10-19"}}

	lines := f.notifier.ListUpcomingForUser(context.Background(), "u1")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Today on 2026-10-19")
}

func TestListLastIssuesForUser(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.catalog.IssuesByName["batman"] = []models.Issue{
		{Title: "Future", VolumeName: "Batman", StoreDate: "2026-11-02"},
		{Title: "Undated", VolumeName: "Batman"},
		{Title: "Last Week", VolumeName: "Batman", StoreDate: "2026-10-12"},
		{Title: "Older", VolumeName: "Batman", StoreDate: "2026-10-05"},
	}

	lines := f.notifier.ListLastIssuesForUser(context.Background(), "u1")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Last Week on 2026-10-12")
	require.Len(t, f.catalog.NameCalls, 1)
	assert.Equal(t, catalog.SortStoreDateDesc, f.catalog.NameCalls[0].Sort)
}

func TestListForUser_PerSeriesErrors(t *testing.T) {
	f := newFixture(t)
	f.follow(t, "u1", batman)
	f.follow(t, "u1", saga)
	f.catalog.IssuesByNameErr["batman"] = models.ErrCatalogUnavailable
	f.catalog.IssuesByName["saga"] = []models.Issue{{Title: "Saga", IssueNumber: "70", VolumeName: "Saga", StoreDate: "2026-12-01"}}

	lines := f.notifier.ListUpcomingForUser(context.Background(), "u1")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "⚠️ **Batman**")
	assert.Contains(t, lines[1], "Saga #70 on 2026-12-01")
}

func TestListForUser_NothingFollowed(t *testing.T) {
	f := newFixture(t)

	assert.Empty(t, f.notifier.ListUpcomingForUser(context.Background(), "u1"))
	assert.Empty(t, f.catalog.NameCalls)
}
