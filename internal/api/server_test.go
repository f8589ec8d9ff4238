package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stackify/marketplace-engine/internal/api"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner  = entity.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	seller = entity.Principal("ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5")
	buyer  = entity.Principal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")

	collection = entity.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.test-nft")
)

func newTestServer() (*httptest.Server, *ledger.MemoryLedger) {
	l := ledger.NewMemoryLedger()
	access := marketplace.NewAccessControl(owner)
	fees := marketplace.NewFeeConfig(access, 300)
	listings := marketplace.NewListingRegistry(l)
	offers := marketplace.NewOfferRegistry(listings)
	engine := marketplace.NewEngine(l, fees, listings, offers, owner)

	server := api.NewServer(engine, nil, nil)

	return httptest.NewServer(server.Router()), l
}

func do(t *testing.T, srv *httptest.Server, method, path string, principal entity.Principal, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if principal != "" {
		req.Header.Set("X-Principal", principal.String())
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := do(t, srv, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Fee(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := do(t, srv, "GET", "/fee", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fee map[string]uint64
	decode(t, resp, &fee)
	assert.Equal(t, uint64(300), fee["fee"])

	resp = do(t, srv, "PUT", "/fee", owner, map[string]uint64{"fee": 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &fee)
	assert.Equal(t, uint64(500), fee["fee"])
}

func TestServer_SetFee_NotOwner(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/fee", seller, map[string]uint64{"fee": 500})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, float64(100), body["code"])

	resp = do(t, srv, "GET", "/fee", "", nil)
	var fee map[string]uint64
	decode(t, resp, &fee)
	assert.Equal(t, uint64(300), fee["fee"], "rejected update must not change the rate")
}

func TestServer_Listings(t *testing.T) {
	srv, l := newTestServer()
	defer srv.Close()

	l.Mint(collection, 1, seller)

	resp := do(t, srv, "POST", "/listings", seller, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"price":      1000000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var listing entity.Listing
	decode(t, resp, &listing)
	assert.Equal(t, seller, listing.Seller)
	assert.Equal(t, uint64(1000000), listing.Price)

	resp = do(t, srv, "GET", fmt.Sprintf("/listings/%s/1", collection), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, "DELETE", fmt.Sprintf("/listings/%s/1", collection), seller, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, "GET", fmt.Sprintf("/listings/%s/1", collection), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ListNft_NotTokenOwner(t *testing.T) {
	srv, l := newTestServer()
	defer srv.Close()

	l.Mint(collection, 1, seller)

	resp := do(t, srv, "POST", "/listings", buyer, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"price":      1000000,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, float64(101), body["code"])
}

func TestServer_ListNft_PriceZero(t *testing.T) {
	srv, l := newTestServer()
	defer srv.Close()

	l.Mint(collection, 1, seller)

	resp := do(t, srv, "POST", "/listings", seller, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"price":      0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_AcceptOffer_Flow(t *testing.T) {
	srv, l := newTestServer()
	defer srv.Close()

	l.Mint(collection, 1, seller)
	l.Fund(buyer, 2000000)

	resp := do(t, srv, "POST", "/listings", seller, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"price":      1000000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, "POST", "/offers", buyer, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, "POST", "/settlements/accept", seller, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"buyer":      buyer,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trade entity.Trade
	decode(t, resp, &trade)
	assert.Equal(t, uint64(30000), trade.Fee)
	assert.Equal(t, buyer, trade.Buyer)

	owner, err := l.OwnerOf(collection, 1)
	require.NoError(t, err)
	assert.Equal(t, buyer, owner)
	assert.Equal(t, uint64(970000), l.BalanceOf(seller))
}

func TestServer_BuyNow_NoListing(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := do(t, srv, "POST", "/settlements/buy", buyer, map[string]interface{}{
		"collection": collection,
		"assetId":    42,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, float64(104), body["code"])
}

func TestServer_WithdrawOffer(t *testing.T) {
	srv, l := newTestServer()
	defer srv.Close()

	l.Mint(collection, 1, seller)

	resp := do(t, srv, "POST", "/listings", seller, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
		"price":      1000000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, "POST", "/offers", buyer, map[string]interface{}{
		"collection": collection,
		"assetId":    1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, "DELETE", fmt.Sprintf("/offers/%s/1", collection), buyer, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, "DELETE", fmt.Sprintf("/offers/%s/1", collection), buyer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
