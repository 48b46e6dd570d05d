package handler

import (
	"comicbot/internal/follows"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"context"
	"errors"
	"fmt"
	"strings"
)

func (h *Handler) hello(ctx context.Context, msg models.IncomingMessage, _ string) {
	h.reply(ctx, msg, fmt.Sprintf("Hello %s !", models.Mention(msg.AuthorID)))
}

func (h *Handler) follow(ctx context.Context, msg models.IncomingMessage, args string) {
	if args == "" {
		h.reply(ctx, msg, fmt.Sprintf("Usage: `%sfollow <series name>`", h.prefix))
		return
	}
	if err := h.selector.Start(ctx, msg.AuthorID, msg.ChannelID, args); err != nil {
		h.logger.Warnf(providers.TypeBot, "Follow %q for %s: %s", args, msg.AuthorID, err)
	}
}

func (h *Handler) unfollow(ctx context.Context, msg models.IncomingMessage, args string) {
	if args == "" {
		h.reply(ctx, msg, fmt.Sprintf("Usage: `%sunfollow <series name>`", h.prefix))
		return
	}
	res, err := h.store.Unfollow(msg.AuthorID, args)
	switch {
	case err != nil:
		h.logger.Errorf(providers.TypeBot, "Unfollow %q for %s failed: %s", args, msg.AuthorID, err)
		h.reply(ctx, msg, "⚠️ Could not save your follow list, please try again later.")
	case res == follows.NotFollowing:
		h.reply(ctx, msg, fmt.Sprintf("You are not following **%s**.", args))
	default:
		h.reply(ctx, msg, fmt.Sprintf("🗑️ You no longer follow **%s**.", args))
	}
}

func (h *Handler) mySeries(ctx context.Context, msg models.IncomingMessage, _ string) {
	followed := h.store.ListFollowed(msg.AuthorID)
	if len(followed) == 0 {
		h.reply(ctx, msg, h.notFollowing())
		return
	}
	var b strings.Builder
	b.WriteString("📚 Your followed series:")
	for _, fs := range followed {
		fmt.Fprintf(&b, "\n- %s (#%d)", fs.Name, fs.VolumeID)
	}
	h.reply(ctx, msg, b.String())
}

func (h *Handler) comics(ctx context.Context, _ models.IncomingMessage, _ string) {
	if err := h.notifier.AnnounceToday(ctx); err != nil && !errors.Is(err, models.ErrCatalogUnavailable) {
		h.logger.Errorf(providers.TypeBot, "Announcing today's comics failed: %s", err)
	}
}

func (h *Handler) lastIssues(ctx context.Context, msg models.IncomingMessage, _ string) {
	h.replyLines(ctx, msg, "🕘 Latest issues:", h.notifier.ListLastIssuesForUser(ctx, msg.AuthorID))
}

func (h *Handler) upcoming(ctx context.Context, msg models.IncomingMessage, _ string) {
	h.replyLines(ctx, msg, "🗓️ Upcoming issues:", h.notifier.ListUpcomingForUser(ctx, msg.AuthorID))
}

func (h *Handler) help(ctx context.Context, msg models.IncomingMessage, _ string) {
	p := h.prefix
	h.reply(ctx, msg, strings.Join([]string{
		"Commands:",
		fmt.Sprintf("`%shello` say hello", p),
		fmt.Sprintf("`%sfollow <name>` search a series and follow it", p),
		fmt.Sprintf("`%sunfollow <name>` stop following a series", p),
		fmt.Sprintf("`%smyseries` list the series you follow", p),
		fmt.Sprintf("`%slastissues` latest released issue of each followed series", p),
		fmt.Sprintf("`%supcoming` next issue of each followed series", p),
		fmt.Sprintf("`%scomics` post every comic released today", p),
	}, "\n"))
}

func (h *Handler) replyLines(ctx context.Context, msg models.IncomingMessage, title string, lines []string) {
	if len(lines) == 0 {
		h.reply(ctx, msg, h.notFollowing())
		return
	}
	h.reply(ctx, msg, title+"\n"+strings.Join(lines, "\n"))
}

func (h *Handler) notFollowing() string {
	return fmt.Sprintf("You are not following any series yet. Use `%sfollow <name>` to start.", h.prefix)
}
