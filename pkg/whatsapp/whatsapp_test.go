package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"
)

func TestMessageText(t *testing.T) {
	assert.Equal(t, "", messageText(nil))
	assert.Equal(t, "борщ", messageText(&waE2E.Message{Conversation: proto.String("  борщ ")}))
	assert.Equal(t, "сколько стоит пицца", messageText(&waE2E.Message{
		ExtendedTextMessage: &waE2E.ExtendedTextMessage{Text: proto.String("сколько стоит пицца")},
	}))
	assert.Equal(t, "", messageText(&waE2E.Message{}))
}

func TestShouldAnswer(t *testing.T) {
	private := types.NewJID("79990000000", types.DefaultUserServer)

	info := types.MessageInfo{MessageSource: types.MessageSource{Chat: private, Sender: private}}
	assert.True(t, shouldAnswer(info))

	info.IsFromMe = true
	assert.False(t, shouldAnswer(info))

	group := types.MessageInfo{MessageSource: types.MessageSource{Chat: types.NewJID("123", types.GroupServer), IsGroup: true}}
	assert.False(t, shouldAnswer(group))
}
