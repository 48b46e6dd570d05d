package handler

import (
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/follows"
	"comicbot/internal/models"
	"comicbot/internal/notifier"
	"comicbot/internal/providers"
	"comicbot/internal/selector"
	"comicbot/internal/structures"
	"context"
	"fmt"
	"strings"
)

type HandlerInterface interface {
	HandleMessage(ctx context.Context, msg models.IncomingMessage)
	HandleMemberJoin(ctx context.Context, member models.MemberJoin)
}

type command func(ctx context.Context, msg models.IncomingMessage, args string)

// Handler turns chat events into selector, store and notifier calls. It runs on the dispatcher.
type Handler struct {
	prefix    string
	welcome   string
	filter    *WordFilter
	commands  map[string]command
	selector  selector.SelectorInterface
	notifier  notifier.NotifierInterface
	store     follows.StoreInterface
	messenger interfaces.MessengerInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
}

func NewHandler(conf *structures.Config, sel selector.SelectorInterface, n notifier.NotifierInterface, store follows.StoreInterface, messenger interfaces.MessengerInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) HandlerInterface {
	prefix := conf.Discord.CommandPrefix
	if prefix == "" {
		prefix = "!"
	}
	h := &Handler{
		prefix:    prefix,
		welcome:   conf.Discord.WelcomeMessage,
		filter:    NewWordFilter(conf.Discord.ForbiddenWords),
		selector:  sel,
		notifier:  n,
		store:     store,
		messenger: messenger,
		metrics:   metrics,
		logger:    logger,
	}
	h.commands = map[string]command{
		"hello":      h.hello,
		"follow":     h.follow,
		"unfollow":   h.unfollow,
		"myseries":   h.mySeries,
		"comics":     h.comics,
		"lastissues": h.lastIssues,
		"upcoming":   h.upcoming,
		"help":       h.help,
	}
	return h
}

func (h *Handler) HandleMessage(ctx context.Context, msg models.IncomingMessage) {
	if msg.FromBot {
		return
	}

	if h.filter.Match(msg.Content) {
		h.logger.Infof(providers.TypeBot, "Forbidden word from %s in %s, deleting message %s", msg.AuthorID, msg.ChannelID, msg.ID)
		if err := h.messenger.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
			h.logger.Warnf(providers.TypeBot, "Delete message %s failed: %s", msg.ID, err)
		}
		h.reply(ctx, msg, fmt.Sprintf("%s - don't use that word!", models.Mention(msg.AuthorID)))
	}

	name, args, ok := h.parseCommand(msg.Content)
	if !ok {
		h.selector.HandleReply(ctx, msg.AuthorID, msg.ChannelID, msg.Content)
		return
	}

	cmd, known := h.commands[name]
	if !known {
		h.logger.Debugf(providers.TypeBot, "Unknown command %q from %s", name, msg.AuthorID)
		return
	}
	h.metrics.IncCommand(name)
	h.logger.Debugf(providers.TypeBot, "Command %s from %s in %s", name, msg.AuthorID, msg.ChannelID)
	cmd(ctx, msg, args)
}

func (h *Handler) HandleMemberJoin(ctx context.Context, member models.MemberJoin) {
	if h.welcome == "" {
		return
	}
	text := h.welcome
	if strings.Contains(text, "%s") {
		text = fmt.Sprintf(text, member.Username)
	}
	if err := h.messenger.SendDirect(ctx, member.UserID, text); err != nil {
		h.logger.Warnf(providers.TypeBot, "Welcome message to %s failed: %s", member.UserID, err)
	}
}

// parseCommand splits "!name rest" into a lower-cased name and the trimmed rest.
func (h *Handler) parseCommand(content string) (string, string, bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, h.prefix) {
		return "", "", false
	}
	body := strings.TrimSpace(strings.TrimPrefix(content, h.prefix))
	if body == "" {
		return "", "", false
	}
	name, args, _ := strings.Cut(body, " ")
	return strings.ToLower(name), strings.TrimSpace(args), true
}

func (h *Handler) reply(ctx context.Context, msg models.IncomingMessage, text string) {
	if err := h.messenger.SendText(ctx, msg.ChannelID, text); err != nil {
		h.logger.Warnf(providers.TypeBot, "Send to %s failed: %s", msg.ChannelID, err)
	}
}
