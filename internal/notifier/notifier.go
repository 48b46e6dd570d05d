package notifier

import (
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/catalog"
	"comicbot/internal/follows"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"comicbot/internal/structures"
	"context"
	"fmt"
	"time"
)

const (
	footer       = "Powered by ComicVine"
	noComicsText = "📭 No comics released today."
)

type NotifierInterface interface {
	RunDailyPass(ctx context.Context) error
	AnnounceToday(ctx context.Context) error
	ListUpcomingForUser(ctx context.Context, userID string) []string
	ListLastIssuesForUser(ctx context.Context, userID string) []string
}

// Notifier matches released issues against followed series and posts them to the broadcast channel.
type Notifier struct {
	catalog   catalog.ClientInterface
	store     follows.StoreInterface
	messenger interfaces.MessengerInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger

	channelID string
	loc       *time.Location
	now       func() time.Time
}

func NewNotifier(conf *structures.Config, catalogClient catalog.ClientInterface, store follows.StoreInterface, messenger interfaces.MessengerInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) NotifierInterface {
	loc, err := providers.LoadLocation(conf.Scheduler.Timezone)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Unknown timezone %q, using local time: %s", conf.Scheduler.Timezone, err)
		loc = time.Local
	}
	return &Notifier{
		catalog:   catalogClient,
		store:     store,
		messenger: messenger,
		metrics:   metrics,
		logger:    logger,
		channelID: conf.Discord.BroadcastChannelID,
		loc:       loc,
		now:       time.Now,
	}
}

func (n *Notifier) today() time.Time {
	y, m, d := n.now().In(n.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.loc)
}

// RunDailyPass announces every issue released today whose series somebody follows.
// A catalog failure is returned untouched so the caller can retry later. Send failures are only logged.
func (n *Notifier) RunDailyPass(ctx context.Context) error {
	today := n.today()
	issues, err := n.catalog.ListIssuesByStoreDate(ctx, today)
	if err != nil {
		return fmt.Errorf("daily pass for %s: %w", today.Format(models.StoreDateLayout), err)
	}

	followers := n.store.FollowersByName()
	sent := 0
	for _, issue := range issues {
		users := followers[models.FoldName(issue.VolumeName)]
		if len(users) == 0 {
			continue
		}
		mentions := make([]string, 0, len(users))
		for _, id := range users {
			mentions = append(mentions, models.Mention(id))
		}
		if n.announce(ctx, issue, today, mentions) {
			sent++
		}
	}

	n.metrics.AddAnnouncements(sent)
	n.logger.Infof(providers.TypeScheduler, "Daily pass for %s: %d released, %d announced", today.Format(models.StoreDateLayout), len(issues), sent)
	return nil
}

// AnnounceToday posts every issue released today, followed or not.
func (n *Notifier) AnnounceToday(ctx context.Context) error {
	today := n.today()
	issues, err := n.catalog.ListIssuesByStoreDate(ctx, today)
	if err != nil {
		n.logger.Errorf(providers.TypeBot, "Fetching today's comics failed: %s", err)
		n.say(ctx, fmt.Sprintf("⚠️ Error fetching comics: %s", models.ErrCatalogUnavailable))
		return err
	}
	if len(issues) == 0 {
		n.say(ctx, noComicsText)
		return nil
	}

	sent := 0
	for _, issue := range issues {
		if n.announce(ctx, issue, today, nil) {
			sent++
		}
	}
	n.metrics.AddAnnouncements(sent)
	return nil
}

func (n *Notifier) announce(ctx context.Context, issue models.Issue, today time.Time, mentions []string) bool {
	storeDate := issue.StoreDate
	if storeDate == "" {
		storeDate = today.Format(models.StoreDateLayout)
	}
	a := models.Announcement{
		Title:      issue.DisplayTitle(),
		URL:        issue.DetailURL,
		SeriesName: issue.VolumeName,
		StoreDate:  storeDate,
		ImageURL:   issue.ImageURL,
		Footer:     footer,
		Mentions:   mentions,
	}
	if err := n.messenger.SendAnnouncement(ctx, n.channelID, a); err != nil {
		n.logger.Errorf(providers.TypeBot, "Announcing %q failed: %s", a.Title, err)
		return false
	}
	return true
}

func (n *Notifier) say(ctx context.Context, text string) {
	if err := n.messenger.SendText(ctx, n.channelID, text); err != nil {
		n.logger.Errorf(providers.TypeBot, "Send to %s failed: %s", n.channelID, err)
	}
}
