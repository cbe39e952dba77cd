package chatHandler

import (
	"context"

	"restobot/internal/api/chat"
	"restobot/internal/entity"
)

const whatsappSessionPrefix = "wa:"

// ReplyWhatsApp is the message callback of the WhatsApp listener. Each WhatsApp chat maps
// to one dialogue session.
func (h *ChatHandler) ReplyWhatsApp(ctx context.Context, chatID, text string) (string, error) {
	resp, err := h.chatService.SendMessage(ctx, entity.ChannelWhatsApp, chat.MessageRequest{
		SessionID: whatsappSessionPrefix + chatID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}
