package modals

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/nftdesk/internal/api"
)

// TransferTokenCharLimit bounds the token id input.
const TransferTokenCharLimit = 78

// TransferAddressCharLimit bounds the address inputs.
const TransferAddressCharLimit = 128

// =============================================================================
// TransferState - State for the Simulate Transfer modal
// =============================================================================

// TransferState is the simulate-transfer form. The collection field is a
// select over the loaded collection names, or a free-text input when none
// are loaded.
type TransferState struct {
	// Bound form values
	collection  string
	tokenID     string
	fromAddress string
	toAddress   string

	options     []string
	submitting  bool
	form        *huh.Form
	initialized bool
}

func (*TransferState) modalState() {}

func (s *TransferState) Title() string { return "Simulate NFT Transfer" }

func (s *TransferState) Help() string {
	if s.submitting {
		return "Submitting..."
	}
	return "Tab: next  Enter: submit  Esc: cancel"
}

func (s *TransferState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *TransferState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if s.submitting {
		return s, nil
	}
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, &s.initialized, msg)
	return s, cmd
}

// Options returns the collection names offered by the select field.
// It is empty when the collection field is free text.
func (s *TransferState) Options() []string {
	return s.options
}

// HasSelect reports whether the collection field is a select.
func (s *TransferState) HasSelect() bool {
	return len(s.options) > 0
}

// SetSubmitting locks the form while a submit is in flight.
func (s *TransferState) SetSubmitting(submitting bool) {
	s.submitting = submitting
}

// IsSubmitting reports whether a submit is in flight.
func (s *TransferState) IsSubmitting() bool {
	return s.submitting
}

// Values returns the trimmed form values as a transfer request.
func (s *TransferState) Values() api.TransferRequest {
	return api.TransferRequest{
		Collection:  strings.TrimSpace(s.collection),
		TokenID:     strings.TrimSpace(s.tokenID),
		FromAddress: strings.TrimSpace(s.fromAddress),
		ToAddress:   strings.TrimSpace(s.toAddress),
	}
}

// SetValues replaces every field value and rebuilds the form.
func (s *TransferState) SetValues(req api.TransferRequest) {
	s.collection = req.Collection
	s.tokenID = req.TokenID
	s.fromAddress = req.FromAddress
	s.toAddress = req.ToAddress
	s.buildForm()
}

// Validate reports the first empty required field.
func (s *TransferState) Validate() error {
	v := s.Values()
	fields := []struct {
		name  string
		value string
	}{
		{"collection", v.Collection},
		{"token id", v.TokenID},
		{"from address", v.FromAddress},
		{"to address", v.ToAddress},
	}
	for _, f := range fields {
		if err := required(f.name)(f.value); err != nil {
			return err
		}
	}
	return nil
}

func required(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func (s *TransferState) buildForm() {
	var collectionField huh.Field
	if len(s.options) > 0 {
		if s.collection == "" {
			s.collection = s.options[0]
		}
		collectionField = huh.NewSelect[string]().
			Title("Collection").
			Options(huh.NewOptions(s.options...)...).
			Value(&s.collection)
	} else {
		collectionField = huh.NewInput().
			Title("Collection").
			Placeholder("SuiOrigins").
			CharLimit(ModalInputCharLimit).
			Validate(required("collection")).
			Value(&s.collection)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			collectionField,
			huh.NewInput().
				Title("Token ID").
				Placeholder("1234").
				CharLimit(TransferTokenCharLimit).
				Validate(required("token id")).
				Value(&s.tokenID),
			huh.NewInput().
				Title("From address").
				Placeholder("0x...").
				CharLimit(TransferAddressCharLimit).
				Validate(required("from address")).
				Value(&s.fromAddress),
			huh.NewInput().
				Title("To address").
				Placeholder("0x...").
				CharLimit(TransferAddressCharLimit).
				Validate(required("to address")).
				Value(&s.toAddress),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	s.initialized = true
	initHuhForm(s.form)
}

// NewTransferState creates the transfer form. collections supplies the select
// options; selected preselects one of them when non-empty.
func NewTransferState(collections []string, selected string) *TransferState {
	s := &TransferState{
		options: append([]string(nil), collections...),
	}
	for _, name := range s.options {
		if name == selected {
			s.collection = selected
			break
		}
	}
	s.buildForm()
	return s
}
