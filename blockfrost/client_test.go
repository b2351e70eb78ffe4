package blockfrost

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	eParser "github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const testUnit = "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373504154415445"

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *Client {
	ln := fasthttputil.NewInmemoryListener()
	t.Cleanup(func() { ln.Close() })

	go func() {
		_ = fasthttp.Serve(ln, handler)
	}()

	httpClient := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}

	return NewClient("http://blockfrost.test/api/v0", "mainnetTEST", WithHTTPClient(httpClient), WithTimeout(time.Second))
}

func TestAsset(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) != "/api/v0/assets/"+testUnit {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		if string(ctx.Request.Header.Peek("project_id")) != "mainnetTEST" {
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			return
		}

		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{
			"asset": "` + testUnit + `",
			"policy_id": "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373",
			"asset_name": "504154415445",
			"fingerprint": "asset13n25uv0yaf5kus35fm2k86cqy60z58d9xmde92",
			"quantity": "1",
			"mint_or_burn_count": 1,
			"onchain_metadata": {
				"name": "Patate #1",
				"image": ["ipfs://bafyXYZ", "abc"],
				"attributes": {"size": 3},
				"mediaType": 7
			},
			"metadata": {"name": "Patate", "logo": "iVBORw0KGgo", "decimals": 0}
		}`)
	})

	asset, err := c.Asset(context.Background(), testUnit)
	require.NoError(t, err)

	assert.Equal(t, testUnit, asset.Asset)
	assert.Equal(t, "504154415445", *asset.AssetName)
	assert.Equal(t, "1", asset.Quantity)
	require.NotNil(t, asset.OnchainMetadata)
	assert.Equal(t, "Patate #1", asset.OnchainMetadata.Name.String())
	assert.Equal(t, "ipfs://bafyXYZabc", asset.OnchainMetadata.Image.String())
	assert.Equal(t, "", asset.OnchainMetadata.MediaType.String())
	require.NotNil(t, asset.Metadata)
	assert.Equal(t, "iVBORw0KGgo", asset.Metadata.Logo)
	assert.Equal(t, 0, *asset.Metadata.Decimals)
}

func TestAssetErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{fasthttp.StatusNotFound, ErrNotFound},
		{fasthttp.StatusBadRequest, ErrBadRequest},
		{fasthttp.StatusForbidden, ErrUnauthorized},
		{fasthttp.StatusPaymentRequired, ErrRateLimited},
		{fasthttp.StatusTeapot, ErrRateLimited},
		{fasthttp.StatusTooManyRequests, ErrRateLimited},
		{fasthttp.StatusBadGateway, ErrServer},
		{fasthttp.StatusConflict, ErrUnknown},
	}

	for _, cs := range cases {
		status := cs.status
		c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(status)
			ctx.SetBodyString(`{"status_code": 0, "error": "x", "message": "denied"}`)
		})

		_, err := c.Asset(context.Background(), testUnit)
		assert.True(t, errors.Is(err, cs.want), "status %d: %v", status, err)

		var stacked *eParser.Error
		assert.True(t, errors.As(err, &stacked), "status %d: no stack", status)
		if status != fasthttp.StatusNotFound {
			assert.Contains(t, err.Error(), "denied")
		}
	}
}

func TestAssetMalformedBody(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"asset": `)
	})

	_, err := c.Asset(context.Background(), testUnit)
	assert.Error(t, err)
}

func TestAssetCancelledContext(t *testing.T) {
	called := make(chan struct{}, 1)
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		called <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Asset(ctx, testUnit)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, called, 0)
}

func TestChunkedString(t *testing.T) {
	var s struct {
		A ChunkedString `json:"a"`
		B ChunkedString `json:"b"`
		C ChunkedString `json:"c"`
		D ChunkedString `json:"d"`
	}

	err := json.Unmarshal([]byte(`{"a": "one", "b": ["t", 1, "wo"], "c": {"x": 1}, "d": null}`), &s)
	require.NoError(t, err)

	assert.Equal(t, ChunkedString("one"), s.A)
	assert.Equal(t, ChunkedString("two"), s.B)
	assert.Equal(t, ChunkedString(""), s.C)
	assert.Equal(t, ChunkedString(""), s.D)
}
