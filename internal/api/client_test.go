package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
	"github.com/zhubert/nftdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestCollections_DecodesMappingSortedByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != PathCollections {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"cats": map[string]any{"total_items": 5},
			"Apes": map[string]any{"total_items": 10, "floor_price": 0.3, "description": "monkeys"},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL).Collections(context.Background())
	if err != nil {
		t.Fatalf("Collections returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(got))
	}
	if got[0].Name != "Apes" || got[1].Name != "cats" {
		t.Errorf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].TotalItems != 10 || got[1].TotalItems != 5 {
		t.Errorf("unexpected totals: %d, %d", got[0].TotalItems, got[1].TotalItems)
	}
	if _, ok := got[0].Metadata["total_items"]; ok {
		t.Error("total_items should not be duplicated into Metadata")
	}
	if got[0].Description() != "monkeys" {
		t.Errorf("Description() = %q", got[0].Description())
	}
	if fp, ok := got[0].FloorPrice(); !ok || fp != 0.3 {
		t.Errorf("FloorPrice() = %v, %v", fp, ok)
	}
}

func TestCollections_ServerErrorIsAPIKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Collections(context.Background())
	if !pkgerrors.Is(err, pkgerrors.KindAPI) {
		t.Fatalf("expected KindAPI, got %v (%v)", pkgerrors.GetKind(err), err)
	}
}

func TestCollections_BadBodyIsInvalidKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Collections(context.Background())
	if !pkgerrors.Is(err, pkgerrors.KindInvalid) {
		t.Fatalf("expected KindInvalid, got %v", pkgerrors.GetKind(err))
	}
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Chat(context.Background(), "hello")
	if !pkgerrors.Is(err, pkgerrors.KindNetwork) {
		t.Fatalf("expected KindNetwork, got %v (%v)", pkgerrors.GetKind(err), err)
	}
}

func TestChat_SendsMessageAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathChat {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeJSON(w, http.StatusOK, ChatResponse{Response: "echo: " + req.Message, ContextID: "ctx-1"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Chat(context.Background(), "gm")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if resp.Response != "echo: gm" || resp.ContextID != "ctx-1" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestChat_ErrorBodyOnFailureStatusIsReturnedAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "API key not configured", "success": false})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Chat(context.Background(), "gm")
	if err != nil {
		t.Fatalf("expected application error as data, got error %v", err)
	}
	if resp.Error != "API key not configured" {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestSimulateTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req TransferRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Collection != "SuiPunks" || req.TokenID != "7" || req.FromAddress != "0xaaa" || req.ToAddress != "0xbbb" {
			t.Errorf("unexpected request %+v", req)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"response": "Token 7 moved",
			"event": map[string]any{
				"type": "nft_transfer",
				"data": map[string]any{"collection_name": "SuiPunks", "value": 0.33},
			},
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).SimulateTransfer(context.Background(), TransferRequest{
		Collection: "SuiPunks", TokenID: "7", FromAddress: "0xaaa", ToAddress: "0xbbb",
	})
	if err != nil {
		t.Fatalf("SimulateTransfer returned error: %v", err)
	}
	if !resp.Success || resp.Response != "Token 7 moved" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Event == nil || resp.Event.Data.Value != 0.33 {
		t.Errorf("event not decoded: %+v", resp.Event)
	}
}

func TestClearConversation_SessionCookiePersists(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("nftdesk_session"); err == nil {
			sawCookie = true
		} else {
			http.SetCookie(w, &http.Cookie{Name: "nftdesk_session", Value: "abc", Path: "/"})
		}
		writeJSON(w, http.StatusOK, ClearResponse{Success: true})
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ClearConversation(context.Background()); err != nil {
		t.Fatal(err)
	}
	resp, err := c.ClearConversation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if !sawCookie {
		t.Error("second request should carry the session cookie")
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{Responder: "catalog", Collections: 3, Version: "dev"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL + "/").Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Responder != "catalog" || resp.Collections != 3 {
		t.Errorf("unexpected status %+v", resp)
	}
}

func TestUnexpectedStatus_PrefersServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Session expired. Please refresh the page."})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Status(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "api.Status: Session expired. Please refresh the page." {
		t.Errorf("error = %q", got)
	}
}

func TestNew_WaitsWithoutTimeout(t *testing.T) {
	c := New("http://localhost:5000/")
	if c.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", c.httpClient.Timeout)
	}
	if c.httpClient.Jar == nil {
		t.Error("expected a cookie jar for the backend session")
	}
	if c.baseURL != "http://localhost:5000" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
