package server

import (
	"regexp"
	"testing"
	"time"

	"github.com/zhubert/nftdesk/internal/api"
)

var hashPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestWithTransferDefaults(t *testing.T) {
	got := withTransferDefaults(api.TransferRequest{TokenID: "7"})
	want := api.TransferRequest{
		Collection:  DefaultTransferCollection,
		TokenID:     "7",
		FromAddress: DefaultTransferFrom,
		ToAddress:   DefaultTransferTo,
	}
	if got != want {
		t.Errorf("withTransferDefaults = %+v, want %+v", got, want)
	}
}

func TestNewTransferEvent(t *testing.T) {
	now := time.Unix(1700000000, 500_000_000)
	tests := []struct {
		collection string
		value      float64
	}{
		{"SuiPunks", 0.33},
		{"SuiOrigins", 0.55},
		{"MoveLoot", 0.88},
		{"Unknown", 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			req := api.TransferRequest{Collection: tt.collection, TokenID: "1", FromAddress: "0xA", ToAddress: "0xB"}
			e, err := NewTransferEvent(req, DefaultCatalog(), now)
			if err != nil {
				t.Fatalf("NewTransferEvent returned error: %v", err)
			}
			if e.Type != EventTypeNFTTransfer {
				t.Errorf("Type = %q", e.Type)
			}
			if e.Timestamp != 1700000000.5 {
				t.Errorf("Timestamp = %v", e.Timestamp)
			}
			if e.Data.Value != tt.value {
				t.Errorf("Value = %v, want %v", e.Data.Value, tt.value)
			}
			if e.Data.CollectionName != tt.collection || e.Data.FromAddress != "0xA" || e.Data.ToAddress != "0xB" {
				t.Errorf("Data = %+v", e.Data)
			}
			if !hashPattern.MatchString(e.Data.TransactionHash) {
				t.Errorf("TransactionHash = %q", e.Data.TransactionHash)
			}
		})
	}
}

func TestTransactionHash_Unique(t *testing.T) {
	a, err := transactionHash()
	if err != nil {
		t.Fatal(err)
	}
	b, err := transactionHash()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes should differ")
	}
}
