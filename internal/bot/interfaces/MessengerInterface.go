package interfaces

import (
	"comicbot/internal/models"
	"context"
)

// MessengerInterface is the outgoing half of the chat platform.
type MessengerInterface interface {
	SendText(ctx context.Context, channelID, text string) error
	SendAnnouncement(ctx context.Context, channelID string, a models.Announcement) error
	SendDirect(ctx context.Context, userID, text string) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}
