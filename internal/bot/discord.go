package bot

import (
	"comicbot/internal/bot/interfaces"
	"comicbot/internal/models"
	"comicbot/internal/providers"
	"comicbot/internal/structures"
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"strings"
)

const announcementColor = 0x00ffcc

func NewDiscordSession(conf *structures.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + conf.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent |
		discordgo.IntentsDirectMessages
	return session, nil
}

// DiscordMessenger sends through the Discord REST API.
type DiscordMessenger struct {
	session *discordgo.Session
	logger  providers.Logger
}

func NewDiscordMessenger(session *discordgo.Session, logger providers.Logger) interfaces.MessengerInterface {
	return &DiscordMessenger{session: session, logger: logger}
}

func (d *DiscordMessenger) SendText(ctx context.Context, channelID, text string) error {
	_, err := d.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

func (d *DiscordMessenger) SendAnnouncement(ctx context.Context, channelID string, a models.Announcement) error {
	_, err := d.session.ChannelMessageSendComplex(channelID, toMessageSend(a), discordgo.WithContext(ctx))
	return err
}

func (d *DiscordMessenger) SendDirect(ctx context.Context, userID, text string) error {
	ch, err := d.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("opening DM with %s: %w", userID, err)
	}
	return d.SendText(ctx, ch.ID, text)
}

func (d *DiscordMessenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return d.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

func toMessageSend(a models.Announcement) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title:       a.Title,
		URL:         a.URL,
		Description: fmt.Sprintf("📅 Release date: **%s**\n📚 Series: *%s*", a.StoreDate, a.SeriesName),
		Color:       announcementColor,
	}
	if a.ImageURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: a.ImageURL}
	}
	if a.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: a.Footer}
	}
	return &discordgo.MessageSend{
		Content: strings.Join(a.Mentions, " "),
		Embeds:  []*discordgo.MessageEmbed{embed},
	}
}
