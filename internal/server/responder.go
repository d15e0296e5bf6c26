package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/nftdesk/internal/api"
)

// SystemPrompt is the instruction given to language-model responders.
const SystemPrompt = `You are an NFT Customer Service AI assistant. You help users with:
1. Information about their NFT collections
2. Explaining recent NFT transfers
3. Providing details about specific NFTs
4. Answering general questions about NFTs on the Sui blockchain

Always be helpful, concise, and accurate. When responding about blockchain data,
provide clear explanations without technical jargon unless specifically asked for it.`

// CollectionContext is attached to a prompt when the message mentions a
// known collection.
type CollectionContext struct {
	Name string         `json:"nft_collection"`
	Data CollectionInfo `json:"collection_data"`
}

// Prompt is what a Responder answers. Context is nil, a *CollectionContext
// or an *api.TransferEvent.
type Prompt struct {
	Message string
	Context any
	History []Turn
}

// Responder produces the bot's reply to a prompt.
type Responder interface {
	Name() string
	Respond(ctx context.Context, p Prompt) (string, error)
}

// CatalogResponder answers from the catalog without a language model.
type CatalogResponder struct {
	catalog Catalog
}

// NewCatalogResponder creates a responder over catalog.
func NewCatalogResponder(catalog Catalog) *CatalogResponder {
	return &CatalogResponder{catalog: catalog}
}

// Name implements Responder.
func (r *CatalogResponder) Name() string { return "catalog" }

// Respond implements Responder.
func (r *CatalogResponder) Respond(_ context.Context, p Prompt) (string, error) {
	switch c := p.Context.(type) {
	case *api.TransferEvent:
		return transferNotification(c), nil
	case *CollectionContext:
		return collectionFacts(c.Name, c.Data), nil
	}

	lower := strings.ToLower(p.Message)
	if strings.Contains(lower, "collection") || strings.Contains(lower, "list") {
		return r.collectionList(), nil
	}
	return r.help(), nil
}

func (r *CatalogResponder) collectionList() string {
	var sb strings.Builder
	sb.WriteString("Here are the collections I know about:\n")
	for _, name := range r.catalog.Names() {
		info := r.catalog[name]
		fmt.Fprintf(&sb, "- **%s**: %s (%d items)\n", name, info.Description, info.TotalItems)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *CatalogResponder) help() string {
	return fmt.Sprintf("I can help with NFT collections on Sui. Ask me about %s, "+
		"or simulate a transfer to see how notifications look.", joinNames(r.catalog.Names()))
}

func collectionFacts(name string, info CollectionInfo) string {
	return fmt.Sprintf("**%s**: %s.\n\n- Total items: %d\n- Floor price: %g SUI\n- 24h volume: %g SUI",
		name, strings.TrimSuffix(info.Description, "."), info.TotalItems, info.FloorPrice, info.Volume24h)
}

func transferNotification(e *api.TransferEvent) string {
	d := e.Data
	return fmt.Sprintf("NFT Transfer Notification: %s #%s was transferred from %s to %s "+
		"for %g SUI.\n\nTransaction: `%s`",
		d.CollectionName, d.TokenID, d.FromAddress, d.ToAddress, d.Value, d.TransactionHash)
}

// joinNames joins names as "a, b or c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "any collection"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
