package bot

import (
	"comicbot/internal/bot/handler"
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"context"
	"github.com/bwmarrin/discordgo"
)

type BotInterface interface {
	Open() error
	Close() error
}

// Bot is the incoming half of Discord. Gateway callbacks only convert the event and hand it to the dispatcher.
type Bot struct {
	session    *discordgo.Session
	dispatcher interfaces.DispatcherInterface
	handler    handler.HandlerInterface
	logger     providers.Logger
	removers   []func()
}

func NewBot(session *discordgo.Session, dispatcher interfaces.DispatcherInterface, h handler.HandlerInterface, logger providers.Logger) BotInterface {
	return &Bot{
		session:    session,
		dispatcher: dispatcher,
		handler:    h,
		logger:     logger,
	}
}

func (b *Bot) Open() error {
	b.removers = append(b.removers,
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onMessage),
		b.session.AddHandler(b.onMemberJoin),
	)
	return b.session.Open()
}

func (b *Bot) Close() error {
	for _, remove := range b.removers {
		remove()
	}
	b.removers = nil
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Infof(providers.TypeBot, "Connected as %s", r.User.Username)
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	msg, ok := toIncoming(m, selfID)
	if !ok {
		return
	}
	b.dispatcher.Submit(func() {
		b.handler.HandleMessage(context.Background(), msg)
	})
}

func (b *Bot) onMemberJoin(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	member, ok := toMemberJoin(m)
	if !ok {
		return
	}
	b.dispatcher.Submit(func() {
		b.handler.HandleMemberJoin(context.Background(), member)
	})
}

func toIncoming(m *discordgo.MessageCreate, selfID string) (models.IncomingMessage, bool) {
	if m == nil || m.Message == nil || m.Author == nil {
		return models.IncomingMessage{}, false
	}
	return models.IncomingMessage{
		ID:         m.ID,
		ChannelID:  m.ChannelID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.Username,
		Content:    m.Content,
		FromBot:    selfID != "" && m.Author.ID == selfID,
	}, true
}

func toMemberJoin(m *discordgo.GuildMemberAdd) (models.MemberJoin, bool) {
	if m == nil || m.Member == nil || m.User == nil {
		return models.MemberJoin{}, false
	}
	return models.MemberJoin{UserID: m.User.ID, Username: m.User.Username}, true
}
