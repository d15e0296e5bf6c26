// Package scenarios contains built-in demo scenarios for nftdesk.
package scenarios

import (
	"github.com/zhubert/nftdesk/internal/api"
	"github.com/zhubert/nftdesk/internal/demo"
)

// Basic walks through a typical support session:
// - Loading the collection list
// - Filtering it down to the Sui collections
// - Asking about one collection
// - Simulating a transfer and reading the notification
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Browse collections, ask a question, simulate a transfer",
	Width:       120,
	Height:      40,
	Steps: []demo.Step{
		// Filter the sidebar
		demo.KeyWithDesc("/", "Start filtering"),
		demo.Type("sui"),
		demo.Annotate("Filter collections by name"),
		demo.Capture(),
		demo.KeyWithDesc("enter", "Keep the filter"),

		// Ask about a collection
		demo.KeyWithDesc("tab", "Focus the chat"),
		demo.Type("Tell me about SuiPunks"),
		demo.Capture(),
		demo.Key("enter"),
		demo.Settle(),
		demo.Annotate("Collection facts come back from the backend"),
		demo.Capture(),

		// Simulate a transfer
		demo.KeyWithDesc("ctrl+t", "Open the transfer form"),
		demo.FillTransfer(api.TransferRequest{
			Collection:  "SuiPunks",
			TokenID:     "42",
			FromAddress: "0x7a3f9c2e",
			ToAddress:   "0x91bd04aa",
		}),
		demo.Annotate("Simulate an NFT transfer"),
		demo.Capture(),
		demo.Key("enter"),
		demo.Settle(),
		demo.Annotate("The transfer summary and notification"),
		demo.Capture(),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Names returns the names of all built-in scenarios.
func Names() []string {
	var names []string
	for _, s := range All() {
		names = append(names, s.Name)
	}
	return names
}
