package scenarios

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/nftdesk/internal/demo"
	"github.com/zhubert/nftdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func TestAll(t *testing.T) {
	scenarios := All()
	if len(scenarios) != 1 {
		t.Errorf("All() should return 1 scenario, got %d", len(scenarios))
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			t.Errorf("Scenario %q validation failed: %v", s.Name, err)
		}
	}
	if names := Names(); len(names) != 1 || names[0] != "basic" {
		t.Errorf("Names() = %v", names)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
	}{
		{"basic", true},
		{"nonexistent", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if found := Get(tt.name) != nil; found != tt.wantFound {
				t.Errorf("Get(%q) found = %v, want %v", tt.name, found, tt.wantFound)
			}
		})
	}
}

func TestBasicScenario(t *testing.T) {
	e := demo.NewExecutor(demo.DefaultExecutorConfig())
	frames, err := e.Run(Basic)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Initial frame plus one per Capture step
	if len(frames) != 6 {
		t.Fatalf("expected 6 frames, got %d", len(frames))
	}

	filtered := ansi.Strip(frames[1].Content)
	if strings.Contains(filtered, "MoveLoot") || !strings.Contains(filtered, "SuiPunks") {
		t.Errorf("filter frame should only list Sui collections:\n%s", filtered)
	}
	if frames[1].Annotation == "" {
		t.Error("filter frame should be annotated")
	}

	answered := ansi.Strip(frames[3].Content)
	if !strings.Contains(answered, "Floor price: 0.3 SUI") {
		t.Errorf("reply frame missing collection facts:\n%s", answered)
	}

	msgs := e.Model().Messages()
	last := msgs[len(msgs)-1].Text
	if !strings.Contains(last, "SuiPunks #42 was transferred") {
		t.Errorf("last message = %q", last)
	}
	if !strings.Contains(ansi.Strip(frames[5].Content), "Simulated transfer of SuiPunks") {
		t.Errorf("transfer frame:\n%s", ansi.Strip(frames[5].Content))
	}
}
