package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/zhubert/nftdesk/internal/api"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON body into v. An empty body leaves v unchanged.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.StatusResponse{
		Responder:   s.responder.Name(),
		Collections: len(s.catalog),
		Version:     s.version,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	sessionID := SessionID(r.Context())
	prompt := Prompt{Message: message, History: s.store.History(sessionID)}
	if name, info, ok := s.catalog.Mentioned(message); ok {
		prompt.Context = &CollectionContext{Name: name, Data: info}
	}

	reply, err := s.responder.Respond(r.Context(), prompt)
	if err != nil {
		s.log.Error("chat failed", "session", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process message: "+err.Error())
		return
	}

	contextID := s.store.Append(sessionID,
		Turn{Role: RoleUser, Content: message},
		Turn{Role: RoleAssistant, Content: reply},
	)
	writeJSON(w, http.StatusOK, api.ChatResponse{Response: reply, ContextID: contextID})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionID(r.Context())
	s.store.Clear(sessionID)
	s.log.Debug("conversation cleared", "session", sessionID)
	writeJSON(w, http.StatusOK, api.ClearResponse{Success: true})
}

func (s *Server) handleSimulateTransfer(w http.ResponseWriter, r *http.Request) {
	var req api.TransferRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, api.TransferResponse{Error: "Invalid request body"})
		return
	}
	req = withTransferDefaults(req)

	event, err := NewTransferEvent(req, s.catalog, s.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, api.TransferResponse{Error: "Failed to create transfer event: " + err.Error()})
		return
	}
	s.log.Info("simulating transfer", "collection", req.Collection, "token", req.TokenID, "tx", event.Data.TransactionHash)

	reply, err := s.responder.Respond(r.Context(), Prompt{Message: TransferPrompt, Context: event})
	if err != nil {
		s.log.Error("transfer notification failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, api.TransferResponse{Error: "Failed to process transfer: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, api.TransferResponse{Success: true, Event: event, Response: reply})
}
