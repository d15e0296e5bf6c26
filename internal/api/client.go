// Package api is a typed HTTP client for the NFT customer-service backend.
//
// The backend keeps conversation state per session cookie, so a Client holds
// a cookie jar and should be reused for the whole program run.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
	"github.com/zhubert/nftdesk/internal/logger"
)

// Endpoint paths
const (
	PathCollections      = "/api/nft_collections"
	PathChat             = "/api/chat"
	PathClear            = "/api/clear_conversation"
	PathSimulateTransfer = "/api/simulate_nft_transfer"
	PathStatus           = "/api/status"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Service is the set of backend calls the chat panel makes.
// Client implements it; tests substitute fakes.
type Service interface {
	Collections(ctx context.Context) ([]Collection, error)
	Chat(ctx context.Context, message string) (*ChatResponse, error)
	ClearConversation(ctx context.Context) (*ClearResponse, error)
	SimulateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error)
	Status(ctx context.Context) (*StatusResponse, error)
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the backend at baseURL. Requests carry no
// timeout; a slow reply is waited for.
func New(baseURL string) *Client {
	// cookiejar.New only fails on a bad PublicSuffixList, and we pass none
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
	}
}

// Collections fetches the collection catalog.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	const op = pkgerrors.Op("api.Collections")

	status, body, err := c.do(ctx, op, http.MethodGet, PathCollections, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, unexpectedStatus(op, PathCollections, status, body)
	}

	collections, err := decodeCollections(body)
	if err != nil {
		return nil, pkgerrors.DecodeFailed(op, PathCollections, err)
	}
	return collections, nil
}

// Chat sends a user message. An application failure is reported in
// ChatResponse.Error with a nil error.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "api.Chat", PathChat, ChatRequest{Message: message}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClearConversation asks the backend to forget this session's conversation.
func (c *Client) ClearConversation(ctx context.Context) (*ClearResponse, error) {
	var resp ClearResponse
	if err := c.postJSON(ctx, "api.ClearConversation", PathClear, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SimulateTransfer asks the backend to fabricate an NFT transfer event and
// narrate it.
func (c *Client) SimulateTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	var resp TransferResponse
	if err := c.postJSON(ctx, "api.SimulateTransfer", PathSimulateTransfer, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status reports backend health and configuration.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	const op = pkgerrors.Op("api.Status")

	status, body, err := c.do(ctx, op, http.MethodGet, PathStatus, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, unexpectedStatus(op, PathStatus, status, body)
	}

	var resp StatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, pkgerrors.DecodeFailed(op, PathStatus, err)
	}
	return &resp, nil
}

// apiErrorer is implemented by response bodies that carry an error field.
type apiErrorer interface {
	apiError() string
}

func (r *ChatResponse) apiError() string     { return r.Error }
func (r *ClearResponse) apiError() string    { return r.Error }
func (r *TransferResponse) apiError() string { return r.Error }

// postJSON posts payload and decodes the reply into out. Non-2xx replies
// whose body decodes with a non-empty error field are returned as data so
// the caller can render the server's message.
func (c *Client) postJSON(ctx context.Context, op pkgerrors.Op, path string, payload any, out apiErrorer) error {
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return pkgerrors.E(op, pkgerrors.KindInvalid, "failed to encode request", err)
		}
	}

	status, body, err := c.do(ctx, op, http.MethodPost, path, reqBody)
	if err != nil {
		return err
	}

	decodeErr := json.Unmarshal(body, out)
	if status >= 200 && status <= 299 {
		if decodeErr != nil {
			return pkgerrors.DecodeFailed(op, path, decodeErr)
		}
		return nil
	}
	if decodeErr == nil && out.apiError() != "" {
		return nil
	}
	return unexpectedStatus(op, path, status, body)
}

func (c *Client) do(ctx context.Context, op pkgerrors.Op, method, path string, body []byte) (int, []byte, error) {
	log := logger.WithComponent("api")

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, pkgerrors.E(op, pkgerrors.KindInvalid, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "path", path, "error", err)
		return 0, nil, pkgerrors.RequestFailed(op, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading response failed", "method", method, "path", path, "error", err)
		return 0, nil, pkgerrors.RequestFailed(op, path, err)
	}

	log.Debug("request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start),
	)
	return resp.StatusCode, data, nil
}

// unexpectedStatus prefers the server's own error message when it sent one.
func unexpectedStatus(op pkgerrors.Op, path string, status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return pkgerrors.Application(op, e.Error)
	}
	return pkgerrors.UnexpectedStatus(op, path, status)
}
