// Package demo drives the chat panel through scripted scenarios against an
// in-process backend. Every request is real HTTP, so the frames it captures
// are what a user would see.
package demo

import (
	"fmt"

	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/server"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepKey sends a single key press.
	StepKey StepType = iota
	// StepTypeText types a string character by character.
	StepTypeText
	// StepSettle delivers the results of in-flight requests until none remain.
	StepSettle
	// StepCapture captures the current frame.
	StepCapture
	// StepAnnotate adds a caption to the next captured frame.
	StepAnnotate
	// StepFillTransfer fills the open transfer form.
	StepFillTransfer
)

func (t StepType) String() string {
	switch t {
	case StepKey:
		return "key"
	case StepTypeText:
		return "type"
	case StepSettle:
		return "settle"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	case StepFillTransfer:
		return "fill-transfer"
	default:
		return "unknown"
	}
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText
	Text string

	// For StepAnnotate
	Annotation string

	// For StepFillTransfer
	Transfer api.TransferRequest
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines what the in-process backend serves.
type ScenarioSetup struct {
	Catalog server.Catalog
}

// DefaultSetup serves the built-in catalog.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{Catalog: server.DefaultCatalog()}
}

// Validate checks the scenario and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if len(s.Setup.Catalog) == 0 {
		s.Setup.Catalog = server.DefaultCatalog()
	}
	for i, step := range s.Steps {
		switch {
		case step.Type == StepKey && step.Key == "":
			return &ValidationError{Field: "Steps", Message: stepMessage(i, "key is required")}
		case step.Type == StepTypeText && step.Text == "":
			return &ValidationError{Field: "Steps", Message: stepMessage(i, "text is required")}
		}
	}
	return nil
}

func stepMessage(i int, msg string) string {
	return fmt.Sprintf("step %d: %s", i, msg)
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// Settle creates a step that waits for in-flight requests to complete.
func Settle() Step {
	return Step{Type: StepSettle}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// FillTransfer fills the open transfer form. Empty fields keep their value.
func FillTransfer(req api.TransferRequest) Step {
	return Step{
		Type:     StepFillTransfer,
		Transfer: req,
	}
}
