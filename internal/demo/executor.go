package demo

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/app"
	"github.com/zhubert/nftdesk/internal/config"
	"github.com/zhubert/nftdesk/internal/logger"
	"github.com/zhubert/nftdesk/internal/server"
	"github.com/zhubert/nftdesk/internal/ui/modals"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string // ANSI-encoded terminal content
	Annotation string // Optional caption
	StepIndex  int    // Index of the step that produced this frame, -1 for the initial frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key and typed string
	CaptureEveryStep bool

	// SettleTimeout bounds how long a Settle step waits for responses
	SettleTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		SettleTimeout:    10 * time.Second,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config  ExecutorConfig
	model   *app.Model
	backend *httptest.Server
	frames  []Frame
	results chan tea.Msg

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.SettleTimeout <= 0 {
		cfg.SettleTimeout = DefaultExecutorConfig().SettleTimeout
	}
	return &Executor{
		config:  cfg,
		results: make(chan tea.Msg, 64),
	}
}

// Cleanup stops the in-process backend.
func (e *Executor) Cleanup() {
	if e.backend != nil {
		e.backend.Close()
		e.backend = nil
	}
}

// Model returns the model being driven, or nil before Run.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)
	defer e.Cleanup()

	logger.WithComponent("demo").Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))

	// Initial load
	e.dispatch(e.model.Init())
	if err := e.settle(); err != nil {
		return nil, fmt.Errorf("initial load failed: %w", err)
	}
	e.captureFrame(-1)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d (%s) failed: %w", i, step.Type, err)
		}
	}

	return e.frames, nil
}

// setup starts the backend and builds the model against it.
func (e *Executor) setup(scenario *Scenario) {
	e.frames = nil
	e.currentAnnotation = ""
	e.backend = httptest.NewServer(server.New(scenario.Setup.Catalog, server.WithVersion("demo")))

	cfg := config.Default()
	cfg.SetAPIURL(e.backend.URL)

	e.model = app.New(cfg, api.New(e.backend.URL),
		app.WithVersion("demo"),
		app.WithoutAnimation(),
		app.WithClipboard(func(string) error { return nil }),
		app.WithNotifier(func(string, string) error { return nil }),
	)
	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.sendKey(string(ch))
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index)
		}

	case StepSettle:
		return e.settle()

	case StepAnnotate:
		e.currentAnnotation = step.Annotation

	case StepCapture:
		e.captureFrame(index)

	case StepFillTransfer:
		return e.fillTransfer(step.Transfer)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}
	return nil
}

// fillTransfer merges req into the open transfer form.
func (e *Executor) fillTransfer(req api.TransferRequest) error {
	s, ok := e.model.Modal().State.(*modals.TransferState)
	if !ok || !e.model.Modal().IsVisible() {
		return fmt.Errorf("no transfer form is open")
	}
	v := s.Values()
	if req.Collection != "" {
		v.Collection = req.Collection
	}
	if req.TokenID != "" {
		v.TokenID = req.TokenID
	}
	if req.FromAddress != "" {
		v.FromAddress = req.FromAddress
	}
	if req.ToAddress != "" {
		v.ToAddress = req.ToAddress
	}
	s.SetValues(v)
	return nil
}

// update feeds msg to the model and dispatches the resulting command.
func (e *Executor) update(msg tea.Msg) {
	result, cmd := e.model.Update(msg)
	e.model = result.(*app.Model)
	e.dispatch(cmd)
}

// dispatch runs cmd in the background. Only request results come back to
// the model; cursor blinks and other timers are dropped.
func (e *Executor) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		switch msg := cmd().(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				e.dispatch(c)
			}
		default:
			if app.IsResultMsg(msg) {
				e.results <- msg
			}
		}
	}()
}

// settle delivers results until the model has no requests in flight.
func (e *Executor) settle() error {
	deadline := time.NewTimer(e.config.SettleTimeout)
	defer deadline.Stop()

	for e.model.PendingRequests() > 0 {
		select {
		case msg := <-e.results:
			e.update(msg)
		case <-deadline.C:
			return fmt.Errorf("timed out after %v with %d requests pending",
				e.config.SettleTimeout, e.model.PendingRequests())
		}
	}
	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int) {
	e.frames = append(e.frames, Frame{
		Content:    e.model.RenderToString(),
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	})
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model.
func (e *Executor) sendKey(key string) {
	e.update(keyPress(key))
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space", " ":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	}
	if rest, ok := strings.CutPrefix(key, "ctrl+"); ok && len(rest) == 1 {
		return tea.KeyPressMsg{Code: rune(rest[0]), Mod: tea.ModCtrl}
	}
	runes := []rune(key)
	if len(runes) == 1 {
		return tea.KeyPressMsg{Code: runes[0], Text: key}
	}
	return tea.KeyPressMsg{Text: key}
}
