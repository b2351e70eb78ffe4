package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkToHTTPS(t *testing.T) {
	const gateway = "https://ipfs.blockfrost.dev/ipfs"

	cases := []struct {
		link string
		want string
		ok   bool
	}{
		{"https://example.com/a.png", "https://example.com/a.png", true},
		{"ipfs://bafyXYZ", gateway + "/bafyXYZ", true},
		{"ipfs://ipfs/QmHash/1.png", gateway + "/QmHash/1.png", true},
		{"ipfs://", "", false},
		{"http://example.com/a.png", "", false},
		{"ar://txid", "", false},
		{"data:image/png;base64,AAAA", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := LinkToHTTPS(c.link, gateway)
		assert.Equal(t, c.ok, ok, c.link)
		assert.Equal(t, c.want, got, c.link)
	}
}

func TestLinkToHTTPSGatewaySlash(t *testing.T) {
	got, ok := LinkToHTTPS("ipfs://bafyXYZ", "https://gw.test/ipfs/")
	assert.True(t, ok)
	assert.Equal(t, "https://gw.test/ipfs/bafyXYZ", got)
}
