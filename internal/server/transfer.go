package server

import (
	"crypto/rand"
	"encoding/hex"
	"math"
	"time"

	"github.com/zhubert/nftdesk/internal/api"
)

// Transfer request defaults for omitted fields
const (
	DefaultTransferCollection = "SuiOrigins"
	DefaultTransferTokenID    = "1234"
	DefaultTransferFrom       = "0xSenderAddress123"
	DefaultTransferTo         = "0xRecipientAddress456"
)

// EventTypeNFTTransfer is the type of a simulated transfer event.
const EventTypeNFTTransfer = "nft_transfer"

// TransferPrompt asks the responder for a notification about a transfer event.
const TransferPrompt = `An NFT transfer event has occurred. Please analyze the details and provide a summary:
1. What NFT was transferred?
2. Who was the sender and recipient?
3. What was the transaction value (if applicable)?
4. Any other relevant details about this transfer.

Format your response as a concise notification that could be sent to the users involved.`

// withTransferDefaults fills empty fields of req.
func withTransferDefaults(req api.TransferRequest) api.TransferRequest {
	if req.Collection == "" {
		req.Collection = DefaultTransferCollection
	}
	if req.TokenID == "" {
		req.TokenID = DefaultTransferTokenID
	}
	if req.FromAddress == "" {
		req.FromAddress = DefaultTransferFrom
	}
	if req.ToAddress == "" {
		req.ToAddress = DefaultTransferTo
	}
	return req
}

// NewTransferEvent builds the simulated on-chain event for req. The value is
// the collection's floor price plus 10%, rounded to cents.
func NewTransferEvent(req api.TransferRequest, catalog Catalog, now time.Time) (*api.TransferEvent, error) {
	hash, err := transactionHash()
	if err != nil {
		return nil, err
	}
	return &api.TransferEvent{
		Type:      EventTypeNFTTransfer,
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
		Data: api.TransferEventData{
			CollectionName:  req.Collection,
			TokenID:         req.TokenID,
			FromAddress:     req.FromAddress,
			ToAddress:       req.ToAddress,
			TransactionHash: hash,
			Value:           math.Round(catalog.FloorPrice(req.Collection)*1.1*100) / 100,
		},
	}, nil
}

// transactionHash returns "0x" followed by 64 random hex characters.
func transactionHash() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}
