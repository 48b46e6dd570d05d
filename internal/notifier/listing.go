package notifier

import (
	"comicbot/internal/catalog"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"context"
	"fmt"
	"time"
)

// ListUpcomingForUser reports, per followed series, the first issue released today or later.
func (n *Notifier) ListUpcomingForUser(ctx context.Context, userID string) []string {
	return n.listForUser(ctx, userID, catalog.SortStoreDateAsc, func(day, today time.Time) bool {
		return !day.Before(today)
	}, "no upcoming issue found")
}

// ListLastIssuesForUser reports, per followed series, the most recent issue released up to today.
func (n *Notifier) ListLastIssuesForUser(ctx context.Context, userID string) []string {
	return n.listForUser(ctx, userID, catalog.SortStoreDateDesc, func(day, today time.Time) bool {
		return !day.After(today)
	}, "no released issue found")
}

func (n *Notifier) listForUser(ctx context.Context, userID, sort string, keep func(day, today time.Time) bool, none string) []string {
	followed := n.store.ListFollowed(userID)
	if len(followed) == 0 {
		return nil
	}

	today := n.today()
	lines := make([]string, 0, len(followed))
	for _, series := range followed {
		issues, err := n.catalog.ListIssuesByVolumeName(ctx, series.Name, sort)
		if err != nil {
			n.logger.Warnf(providers.TypeCatalog, "Issues for %q failed: %s", series.Name, err)
			lines = append(lines, fmt.Sprintf("⚠️ **%s**: %s, try again later.", series.Name, models.ErrCatalogUnavailable))
			continue
		}

		issue, ok := firstMatch(issues, series.Name, n.loc, today, keep)
		if !ok {
			lines = append(lines, fmt.Sprintf("📭 **%s**: %s.", series.Name, none))
			continue
		}
		line := fmt.Sprintf("📅 **%s**: %s on %s", series.Name, issue.DisplayTitle(), issue.StoreDate)
		if issue.DetailURL != "" {
			line += " <" + issue.DetailURL + ">"
		}
		lines = append(lines, line)
	}
	return lines
}

func firstMatch(issues []models.Issue, name string, loc *time.Location, today time.Time, keep func(day, today time.Time) bool) (models.Issue, bool) {
	for _, issue := range issues {
		if !models.SameName(issue.VolumeName, name) {
			continue
		}
		day, ok := issue.ReleaseDay(loc)
		if !ok {
			continue
		}
		if keep(day, today) {
			return issue, true
		}
	}
	return models.Issue{}, false
}
