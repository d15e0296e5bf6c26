package server

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
)

// CollectionInfo is the data the demo backend knows about one collection.
type CollectionInfo struct {
	Description string  `json:"description" yaml:"description"`
	TotalItems  int     `json:"total_items" yaml:"total_items"`
	FloorPrice  float64 `json:"floor_price" yaml:"floor_price"`
	Volume24h   float64 `json:"volume_24h" yaml:"volume_24h"`
}

// Catalog maps collection names to their data.
type Catalog map[string]CollectionInfo

// DefaultFloorPrice is used to value transfers of unknown collections.
const DefaultFloorPrice = 0.5

// DefaultCatalog returns the built-in collections.
func DefaultCatalog() Catalog {
	return Catalog{
		"SuiOrigins": {
			Description: "The first official NFT collection on Sui blockchain",
			TotalItems:  10000,
			FloorPrice:  0.5,
			Volume24h:   10.45,
		},
		"SuiPunks": {
			Description: "Pixel art avatars for the Sui ecosystem",
			TotalItems:  8888,
			FloorPrice:  0.3,
			Volume24h:   5.22,
		},
		"MoveLoot": {
			Description: "On-chain generated gear for blockchain adventurers",
			TotalItems:  7777,
			FloorPrice:  0.8,
			Volume24h:   15.1,
		},
	}
}

// LoadCatalog reads a YAML catalog of the form
//
//	SuiPunks:
//	  description: Pixel art avatars
//	  total_items: 8888
//	  floor_price: 0.3
func LoadCatalog(path string) (Catalog, error) {
	const op = pkgerrors.Op("server.LoadCatalog")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerrors.CatalogNotFound(path)
	}
	if err != nil {
		return nil, pkgerrors.E(op, pkgerrors.KindIO, "failed to read "+path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, pkgerrors.E(op, pkgerrors.KindInvalid, "failed to parse "+path, err)
	}
	if len(c) == 0 {
		return nil, pkgerrors.E(op, pkgerrors.KindInvalid, path+" defines no collections")
	}
	return c, nil
}

// Names returns the collection names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FloorPrice returns the floor price of name, or DefaultFloorPrice when the
// collection is unknown or has no price.
func (c Catalog) FloorPrice(name string) float64 {
	if info, ok := c[name]; ok && info.FloorPrice > 0 {
		return info.FloorPrice
	}
	return DefaultFloorPrice
}

// Mentioned returns the first collection, in name order, whose name appears
// in message, ignoring case.
func (c Catalog) Mentioned(message string) (string, CollectionInfo, bool) {
	lower := strings.ToLower(message)
	for _, name := range c.Names() {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, c[name], true
		}
	}
	return "", CollectionInfo{}, false
}
