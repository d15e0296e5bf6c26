package api

import (
	"encoding/json"
	"sort"
	"strings"
)

// Collection is a named grouping of NFTs with a reported item count.
// Keys other than total_items are kept verbatim in Metadata.
type Collection struct {
	Name       string
	TotalItems int
	Metadata   map[string]any
}

// Description returns the collection's description metadata, if any.
func (c Collection) Description() string {
	if s, ok := c.Metadata["description"].(string); ok {
		return s
	}
	return ""
}

// FloorPrice returns the floor_price metadata and whether it was present.
func (c Collection) FloorPrice() (float64, bool) {
	f, ok := c.Metadata["floor_price"].(float64)
	return f, ok
}

// decodeCollections turns the wire mapping name -> {total_items, ...} into a
// slice sorted case-insensitively by name.
func decodeCollections(data []byte) ([]Collection, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	collections := make([]Collection, 0, len(raw))
	for name, fields := range raw {
		c := Collection{Name: name, Metadata: make(map[string]any, len(fields))}
		for k, v := range fields {
			if k == "total_items" {
				if n, ok := v.(float64); ok {
					c.TotalItems = int(n)
				}
				continue
			}
			c.Metadata[k] = v
		}
		collections = append(collections, c)
	}

	SortCollections(collections)
	return collections, nil
}

// SortCollections orders collections by name, ignoring case.
func SortCollections(collections []Collection) {
	sort.SliceStable(collections, func(i, j int) bool {
		a, b := strings.ToLower(collections[i].Name), strings.ToLower(collections[j].Name)
		if a == b {
			return collections[i].Name < collections[j].Name
		}
		return a < b
	})
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries either Response or Error.
type ChatResponse struct {
	Response  string `json:"response,omitempty"`
	ContextID string `json:"context_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ClearResponse is the body returned by POST /api/clear_conversation.
type ClearResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TransferRequest is the body of POST /api/simulate_nft_transfer.
type TransferRequest struct {
	Collection  string `json:"collection"`
	TokenID     string `json:"token_id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
}

// TransferEvent is the simulated on-chain event echoed back by the backend.
type TransferEvent struct {
	Type      string            `json:"type"`
	Timestamp float64           `json:"timestamp"`
	Data      TransferEventData `json:"data"`
}

// TransferEventData holds the transfer details of a TransferEvent.
type TransferEventData struct {
	CollectionName  string  `json:"collection_name"`
	TokenID         string  `json:"token_id"`
	FromAddress     string  `json:"from_address"`
	ToAddress       string  `json:"to_address"`
	TransactionHash string  `json:"transaction_hash"`
	Value           float64 `json:"value"`
}

// TransferResponse is the body returned by POST /api/simulate_nft_transfer.
type TransferResponse struct {
	Success  bool           `json:"success"`
	Response string         `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
	Event    *TransferEvent `json:"event,omitempty"`
}

// StatusResponse is the body returned by GET /api/status.
type StatusResponse struct {
	Responder   string `json:"responder"`
	Collections int    `json:"collections"`
	Version     string `json:"version"`
}
