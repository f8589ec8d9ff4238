package marketplace_test

import (
	"errors"
	"testing"

	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingRegistry_Create_RoundTrip(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	listing, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)
	assert.Equal(t, wallet1, listing.Seller)
	assert.Equal(t, uint64(1000000), listing.Price)

	got, found := f.engine.GetListing(nftContract, 1)
	require.True(t, found)
	assert.Equal(t, wallet1, got.Seller)
	assert.Equal(t, uint64(1000000), got.Price)
}

func TestListingRegistry_Create_AlreadyListed(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.ListNft(wallet1, nftContract, 1, 2000000)
	assert.True(t, errors.Is(err, marketplace.ErrAlreadyListed))

	got, found := f.engine.GetListing(nftContract, 1)
	require.True(t, found)
	assert.Equal(t, uint64(1000000), got.Price, "the original listing must survive")
}

func TestListingRegistry_Create_NotTokenOwner(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet2, nftContract, 1, 1000000)
	assert.True(t, errors.Is(err, marketplace.ErrNotTokenOwner))

	_, found := f.engine.GetListing(nftContract, 1)
	assert.False(t, found)
}

func TestListingRegistry_Create_UnknownAsset(t *testing.T) {
	f := newFixture()

	_, err := f.engine.ListNft(wallet1, nftContract, 99, 1000000)
	assert.True(t, errors.Is(err, marketplace.ErrNotTokenOwner))
}

func TestListingRegistry_Create_PriceZero(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 0)
	assert.True(t, errors.Is(err, marketplace.ErrPriceZero))
}

func TestListingRegistry_Get_Absent(t *testing.T) {
	f := newFixture()

	listing, found := f.engine.GetListing(nftContract, 404)
	assert.Nil(t, listing)
	assert.False(t, found)
}

func TestListingRegistry_Cancel(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	err = f.engine.CancelListing(wallet2, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrNotSeller))

	require.NoError(t, f.engine.CancelListing(wallet1, nftContract, 1))

	_, found := f.engine.GetListing(nftContract, 1)
	assert.False(t, found)

	err = f.engine.CancelListing(wallet1, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrListingNotFound))
}

func TestListingRegistry_Remove_Idempotent(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	f.listings.Remove(nftContract, 1)
	f.listings.Remove(nftContract, 1)

	_, found := f.listings.Get(nftContract, 1)
	assert.False(t, found)
}

func TestListingRegistry_RelistAfterCancel(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)
	require.NoError(t, f.engine.CancelListing(wallet1, nftContract, 1))

	_, err = f.engine.ListNft(wallet1, nftContract, 1, 1500000)
	require.NoError(t, err)

	got, found := f.engine.GetListing(nftContract, 1)
	require.True(t, found)
	assert.Equal(t, uint64(1500000), got.Price)
}
