package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"restobot/database/postgres"
)

const replyTimeout = 30 * time.Second

// MessageHandler answers one incoming text. chatID is the chat JID in string form.
type MessageHandler func(ctx context.Context, chatID, text string) (string, error)

type IWhatsapp interface {
	Listen(handler MessageHandler)
	SendMessage(ctx context.Context, chatID, message string) error
	Disconnect() error
	IsConnected() bool
}

type whatsappClient struct {
	client *whatsmeow.Client
	log    *logrus.Logger
}

// New pairs through a QR code on first start and keeps the device in Postgres.
func New(ctx context.Context, log *logrus.Logger) (IWhatsapp, error) {
	container, err := sqlstore.New(ctx, "postgres", postgres.FormatDSN(), newLogger(log, "Database"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device store: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, newLogger(log, "Client"))

	connected := make(chan struct{}, 1)
	client.AddEventHandler(func(evt interface{}) {
		if _, ok := evt.(*events.Connected); ok {
			select {
			case connected <- struct{}{}:
			default:
			}
		}
	})

	if client.Store.ID == nil {
		qrChan, _ := client.GetQRChannel(ctx)
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}

		go func() {
			for evt := range qrChan {
				if evt.Event == "code" {
					log.WithField("code", evt.Code).Info("Scan the WhatsApp QR code")
				}
			}
		}()
	} else if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	select {
	case <-connected:
		log.Info("WhatsApp connected")
	case <-time.After(60 * time.Second):
		client.Disconnect()
		return nil, fmt.Errorf("connection timeout")
	}

	return &whatsappClient{client: client, log: log}, nil
}

// Listen answers every private text message with the handler's reply. Messages of one
// chat may be handled concurrently; the handler serializes per session.
func (w *whatsappClient) Listen(handler MessageHandler) {
	w.client.AddEventHandler(func(evt interface{}) {
		msg, ok := evt.(*events.Message)
		if !ok || !shouldAnswer(msg.Info) {
			return
		}

		text := messageText(msg.Message)
		if text == "" {
			return
		}

		chatID := msg.Info.Chat.ToNonAD().String()
		go w.answer(handler, chatID, text)
	})
}

func (w *whatsappClient) answer(handler MessageHandler, chatID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	fields := logrus.Fields{"chat": chatID}

	reply, err := handler(ctx, chatID, text)
	if err != nil {
		fields["error"] = err.Error()
		w.log.WithFields(fields).Error("WhatsApp message handling failed")
		return
	}
	if reply == "" {
		return
	}

	if err := w.SendMessage(ctx, chatID, reply); err != nil {
		fields["error"] = err.Error()
		w.log.WithFields(fields).Error("WhatsApp reply failed")
	}
}

func (w *whatsappClient) SendMessage(ctx context.Context, chatID, message string) error {
	jid, err := types.ParseJID(chatID)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}

	waMsg := &waE2E.Message{
		Conversation: proto.String(message),
	}

	if _, err := w.client.SendMessage(ctx, jid, waMsg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (w *whatsappClient) Disconnect() error {
	w.client.Disconnect()
	return nil
}

func (w *whatsappClient) IsConnected() bool {
	return w.client.IsConnected()
}

func shouldAnswer(info types.MessageInfo) bool {
	return !info.IsFromMe && !info.IsGroup && info.Chat.Server != types.BroadcastServer
}

func messageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if text := msg.GetConversation(); text != "" {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(msg.GetExtendedTextMessage().GetText())
}

type logrusLogger struct {
	entry *logrus.Entry
}

var _ waLog.Logger = logrusLogger{}

func newLogger(log *logrus.Logger, module string) waLog.Logger {
	return logrusLogger{entry: log.WithField("module", "whatsmeow/"+module)}
}

func (l logrusLogger) Warnf(msg string, args ...interface{})  { l.entry.Warnf(msg, args...) }
func (l logrusLogger) Errorf(msg string, args ...interface{}) { l.entry.Errorf(msg, args...) }
func (l logrusLogger) Infof(msg string, args ...interface{})  { l.entry.Infof(msg, args...) }
func (l logrusLogger) Debugf(msg string, args ...interface{}) { l.entry.Debugf(msg, args...) }

func (l logrusLogger) Sub(module string) waLog.Logger {
	parent, _ := l.entry.Data["module"].(string)
	return logrusLogger{entry: l.entry.WithField("module", parent+"/"+module)}
}
