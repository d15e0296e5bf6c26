package server

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
)

// GeminiResponder answers with a Gemini model through the genai SDK.
type GeminiResponder struct {
	client *genai.Client
	model  string
}

// NewGeminiResponder creates a responder for model using apiKey.
func NewGeminiResponder(ctx context.Context, apiKey, model string) (*GeminiResponder, error) {
	const op = pkgerrors.Op("server.NewGeminiResponder")
	if apiKey == "" {
		return nil, pkgerrors.E(op, pkgerrors.KindConfig, "GEMINI_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, pkgerrors.E(op, pkgerrors.KindConfig, "failed to create genai client", err)
	}
	return &GeminiResponder{client: client, model: model}, nil
}

// Name implements Responder.
func (r *GeminiResponder) Name() string { return "gemini:" + r.model }

// Respond implements Responder.
func (r *GeminiResponder) Respond(ctx context.Context, p Prompt) (string, error) {
	const op = pkgerrors.Op("server.GeminiResponder.Respond")

	contents, err := geminiContents(p)
	if err != nil {
		return "", pkgerrors.E(op, pkgerrors.KindInvalid, err)
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", pkgerrors.E(op, pkgerrors.KindAPI, err)
	}

	text := resp.Text()
	if text == "" {
		return "", pkgerrors.E(op, pkgerrors.KindAPI, "model returned no text")
	}
	return text, nil
}

// geminiContents turns the history and the new message into genai contents.
// Context data is appended to the message as JSON.
func geminiContents(p Prompt) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(p.History)+1)
	for _, t := range p.History {
		role := genai.Role(genai.RoleUser)
		if t.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}

	message := p.Message
	if p.Context != nil {
		data, err := json.MarshalIndent(p.Context, "", "  ")
		if err != nil {
			return nil, err
		}
		message += "\n\nContext:\n" + string(data)
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser)), nil
}
