package chatService

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobot/internal/api/chat"
	chatRepository "restobot/internal/api/chat/repository"
	"restobot/internal/dialogue"
	"restobot/internal/entity"
	"restobot/pkg/utils"
)

type fakeChatLogs struct {
	mu   sync.Mutex
	logs []entity.ChatLog
}

func (f *fakeChatLogs) CreateChatLog(_ context.Context, l entity.ChatLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeChatLogs) GetChatLogsBySessionID(_ context.Context, sessionID string, limit, offset int) ([]entity.ChatLog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []entity.ChatLog
	for _, l := range f.logs {
		if l.SessionID == sessionID {
			matched = append(matched, l)
		}
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeChatLogs) DeleteChatLogsBySessionID(_ context.Context, sessionID string) (int64, error) {
	return 0, nil
}

type fakeRepository struct {
	logs *fakeChatLogs
}

func (r fakeRepository) NewClient(bool) (chatRepository.Client, error) {
	return chatRepository.Client{
		ChatLogs: r.logs,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func (r fakeRepository) EnsureSchema(context.Context) error { return nil }

func newTestEngine(t *testing.T) *dialogue.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg, err := dialogue.LoadRegistry(context.Background(), dialogue.LocalReader{}, dialogue.LoadOptions{
		CatalogPath:   "../../../../configs/catalog.yaml",
		DialoguesPath: "../../../../configs/dialogues.txt",
		RegistryOptions: dialogue.RegistryOptions{
			AdMode: dialogue.AdModeOff,
		},
	}, dialogue.NewRandom(1))
	require.NoError(t, err)

	return dialogue.NewEngine(reg, dialogue.NewRandom(1), logger)
}

func newTestService(t *testing.T, withLogs bool) (*chatService, *fakeChatLogs) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	logs := &fakeChatLogs{}
	var repo chatRepository.Repository
	if withLogs {
		repo = fakeRepository{logs: logs}
	}

	svc := NewChatService(logger, newTestEngine(t), chatRepository.NewMemorySessionStore(time.Hour), repo, utils.New())
	return svc.(*chatService), logs
}

func TestSendMessage_CreatesAndContinuesSession(t *testing.T) {
	ctx := context.Background()
	svc, logs := newTestService(t, true)

	first, err := svc.SendMessage(ctx, entity.ChannelHTTP, chat.MessageRequest{Text: "сколько стоит борщ"})
	require.NoError(t, err)
	assert.Len(t, first.SessionID, 26)
	assert.Equal(t, string(entity.StateWaitingForIntent), first.State)
	assert.Equal(t, "борщ", first.FocusDish)

	second, err := svc.SendMessage(ctx, entity.ChannelHTTP, chat.MessageRequest{SessionID: first.SessionID, Text: "да"})
	require.NoError(t, err)
	assert.Equal(t, "Цена на борщ — 350 рублей. Что ещё интересует?", second.Reply)

	snapshot, err := svc.GetSession(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"сколько стоит борщ", "да"}, snapshot.History)
	assert.Equal(t, "http", snapshot.Channel)

	require.Len(t, logs.logs, 2)
	assert.Equal(t, "да", logs.logs[1].Utterance)
	assert.Equal(t, second.Reply, logs.logs[1].Response)
}

func TestSendMessage_Commands(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	resp, err := svc.SendMessage(ctx, entity.ChannelWhatsApp, chat.MessageRequest{SessionID: "wa:79990000000", Text: "/start"})
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "Здравствуйте!")
	assert.Equal(t, dialogue.IntentHello, resp.Intent)

	resp, err = svc.SendMessage(ctx, entity.ChannelWhatsApp, chat.MessageRequest{SessionID: "wa:79990000000", Text: "/HELP"})
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "Назовите блюдо или категорию")

	snapshot, err := svc.GetSession(ctx, "wa:79990000000")
	require.NoError(t, err)
	assert.Equal(t, dialogue.IntentHelp, snapshot.LastIntent)
	assert.Empty(t, snapshot.History)
}

func TestSendMessage_EmptyTextLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	svc, logs := newTestService(t, true)

	resp, err := svc.SendMessage(ctx, entity.ChannelHTTP, chat.MessageRequest{SessionID: "s1", Text: "   "})
	require.NoError(t, err)
	assert.Equal(t, chat.EmptyTextReply, resp.Reply)
	assert.Equal(t, string(entity.StateNone), resp.State)

	_, err = svc.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
	assert.Empty(t, logs.logs)
}

func TestSendMessage_TextTooLong(t *testing.T) {
	svc, _ := newTestService(t, false)

	long := make([]rune, chat.MaxTextLength+1)
	for i := range long {
		long[i] = 'б'
	}
	_, err := svc.SendMessage(context.Background(), entity.ChannelHTTP, chat.MessageRequest{Text: string(long)})
	assert.ErrorIs(t, err, chat.ErrTextTooLong)
}

func TestSendMessage_SerializesTurnsPerSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	const turns = 20
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SendMessage(ctx, entity.ChannelWebSocket, chat.MessageRequest{SessionID: "shared", Text: "привет"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snapshot, err := svc.GetSession(ctx, "shared")
	require.NoError(t, err)

	total := 0
	for _, n := range snapshot.Stats {
		total += n
	}
	assert.Equal(t, turns, total)
	assert.Len(t, snapshot.History, entity.HistoryLimit)
	assert.Equal(t, 0, svc.locks.size())
}

func TestResetSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, false)

	assert.ErrorIs(t, svc.ResetSession(ctx, "unknown"), chat.ErrSessionNotFound)

	_, err := svc.SendMessage(ctx, entity.ChannelHTTP, chat.MessageRequest{SessionID: "s1", Text: "борщ"})
	require.NoError(t, err)
	require.NoError(t, svc.ResetSession(ctx, "s1"))

	_, err = svc.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}

func TestGetChatLogs(t *testing.T) {
	ctx := context.Background()

	disabled, _ := newTestService(t, false)
	_, err := disabled.GetChatLogs(ctx, "s1", 1, 10)
	assert.ErrorIs(t, err, chat.ErrChatLogDisabled)

	svc, _ := newTestService(t, true)
	for _, text := range []string{"привет", "борщ", "да"} {
		_, err := svc.SendMessage(ctx, entity.ChannelHTTP, chat.MessageRequest{SessionID: "s1", Text: text})
		require.NoError(t, err)
	}

	page, err := svc.GetChatLogs(ctx, "s1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "да", page.Logs[0].Utterance)

	_, err = svc.GetChatLogs(ctx, "s1", 0, 10)
	assert.ErrorIs(t, err, chat.ErrInvalidPagination)

	clamped, err := svc.GetChatLogs(ctx, "s1", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, chat.MaxLogLimit, clamped.Limit)
}

func TestAnalyze(t *testing.T) {
	svc, _ := newTestService(t, false)

	analysis, err := svc.Analyze(context.Background(), chat.AnalyzeRequest{Text: "сколько стоит борщ"})
	require.NoError(t, err)
	assert.Equal(t, "борщ", analysis.Dish)
	assert.True(t, analysis.Meaningful)
}
