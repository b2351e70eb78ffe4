package blockfrost

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// Asset is the response of GET /assets/{asset}.
type Asset struct {
	Asset             string           `json:"asset"`
	PolicyID          string           `json:"policy_id"`
	AssetName         *string          `json:"asset_name"`
	Fingerprint       string           `json:"fingerprint"`
	Quantity          string           `json:"quantity"`
	InitialMintTxHash string           `json:"initial_mint_tx_hash"`
	MintOrBurnCount   int              `json:"mint_or_burn_count"`
	OnchainMetadata   *OnchainMetadata `json:"onchain_metadata"`
	Metadata          *Metadata        `json:"metadata"`
}

// OnchainMetadata holds the CIP-25 / CIP-68 fields the badge cares about.
type OnchainMetadata struct {
	Name        ChunkedString `json:"name"`
	Image       ChunkedString `json:"image"`
	Description ChunkedString `json:"description"`
	MediaType   ChunkedString `json:"mediaType"`
}

// Metadata is the off-chain token registry entry.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Ticker      string `json:"ticker"`
	URL         string `json:"url"`
	Logo        string `json:"logo"`
	Decimals    *int   `json:"decimals"`
}

// ChunkedString decodes a metadata string that may be split into an array
// of chunks, since transaction metadata strings are limited to 64 bytes.
// Values of any other JSON type decode to an empty string.
type ChunkedString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *ChunkedString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = ChunkedString(str)
	case '[':
		var parts []interface{}
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}

		var b strings.Builder
		for _, part := range parts {
			if str, ok := part.(string); ok {
				b.WriteString(str)
			}
		}
		*s = ChunkedString(b.String())
	default:
		*s = ""
	}

	return nil
}

func (s ChunkedString) String() string {
	return string(s)
}

// Asset queries information of a specific asset by its unit.
func (c *Client) Asset(ctx context.Context, unit string) (*Asset, error) {
	asset := &Asset{}
	if err := c.get(ctx, "/assets/"+url.PathEscape(unit), asset); err != nil {
		return nil, err
	}

	return asset, nil
}
