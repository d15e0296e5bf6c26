package app

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/keys"
	"github.com/zhubert/nftdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// fakeService is an in-memory api.Service that records calls.
type fakeService struct {
	mu sync.Mutex

	collections    []api.Collection
	collectionsErr error
	chatResp       *api.ChatResponse
	chatErr        error
	clearResp      *api.ClearResponse
	clearErr       error
	transferResp   *api.TransferResponse
	transferErr    error
	status         *api.StatusResponse
	statusErr      error

	chatCalls     []string
	clearCalls    int
	transferCalls []api.TransferRequest
}

func newFakeService() *fakeService {
	return &fakeService{
		collections: []api.Collection{
			{Name: "Cats", TotalItems: 5},
			{Name: "Apes", TotalItems: 10},
		},
		clearResp:    &api.ClearResponse{Success: true},
		transferResp: &api.TransferResponse{Success: true, Response: "Your Apes moved!"},
		status:       &api.StatusResponse{Responder: "catalog", Collections: 2, Version: "test"},
	}
}

func (f *fakeService) Collections(context.Context) ([]api.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collections, f.collectionsErr
}

func (f *fakeService) Chat(_ context.Context, message string) (*api.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls = append(f.chatCalls, message)
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if f.chatResp != nil {
		return f.chatResp, nil
	}
	return &api.ChatResponse{Response: "echo: " + message}, nil
}

func (f *fakeService) ClearConversation(context.Context) (*api.ClearResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	return f.clearResp, f.clearErr
}

func (f *fakeService) SimulateTransfer(_ context.Context, req api.TransferRequest) (*api.TransferResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferCalls = append(f.transferCalls, req)
	return f.transferResp, f.transferErr
}

func (f *fakeService) Status(context.Context) (*api.StatusResponse, error) {
	return f.status, f.statusErr
}

var errOffline = errors.New("connection refused")

// testConfig creates a config with defaults and no backing file.
func testConfig() *config.Config {
	return config.Default()
}

// testModel creates a sized model against svc with animations off.
func testModel(t *testing.T, svc api.Service, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{WithoutAnimation(), WithClipboard(func(string) error { return nil })}, opts...)
	m := New(testConfig(), svc, opts...)
	return setSize(m, 120, 40)
}

// loadedModel creates a model and settles Init.
func loadedModel(t *testing.T, svc api.Service, opts ...Option) *Model {
	t.Helper()
	m := testModel(t, svc, opts...)
	return runCmd(m, m.Init())
}

// runCmd executes cmd synchronously and feeds every result message back into
// the model. Other messages (cursor blinks, ticks) are dropped.
func runCmd(m *Model, cmd tea.Cmd) *Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(m, c)
		}
		return m
	}
	if !IsResultMsg(msg) {
		return m
	}
	result, next := m.Update(msg)
	return runCmd(result.(*Model), next)
}

// runFormCmd runs cmd and feeds every message it produces back into the
// model, so huh field navigation (which travels through the form's own
// messages) takes effect. Timer commands such as cursor blinks are abandoned.
func runFormCmd(m *Model, cmd tea.Cmd, depth int) *Model {
	if cmd == nil || depth > 8 {
		return m
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return m
	}

	switch msg := msg.(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = runFormCmd(m, c, depth+1)
		}
		return m
	}
	result, next := m.Update(msg)
	return runFormCmd(result.(*Model), next, depth+1)
}

// pressFormKey sends a key to the open form and settles the form's response.
func pressFormKey(m *Model, key string) *Model {
	m, cmd := sendKey(m, key)
	return runFormCmd(m, cmd, 0)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlL:
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

// sendKey sends a key press and returns the model and command.
func sendKey(m *Model, key string) (*Model, tea.Cmd) {
	result, cmd := m.Update(keyPress(key))
	return result.(*Model), cmd
}

// typeText simulates typing a string one character at a time.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m, _ = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// focusChat moves focus to the chat panel.
func focusChat(t *testing.T, m *Model) *Model {
	t.Helper()
	if m.Focus() != FocusChat {
		m, _ = sendKey(m, keys.Tab)
	}
	if m.Focus() != FocusChat {
		t.Fatal("expected chat focus")
	}
	return m
}
