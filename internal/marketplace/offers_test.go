package marketplace_test

import (
	"errors"
	"testing"

	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRegistry_Create_RequiresListing(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.MakeOffer(wallet2, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrListingNotFound))
}

func TestOfferRegistry_Create_RoundTrip(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	offer, err := f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)
	assert.Equal(t, wallet2, offer.Buyer)

	got, found := f.engine.GetOffer(nftContract, 1, wallet2)
	require.True(t, found)
	assert.Equal(t, wallet2, got.Buyer)
}

func TestOfferRegistry_Create_Duplicate(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrDuplicateOffer))
}

func TestOfferRegistry_Create_SelfOffer(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet1, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrOfferToSelf))
}

func TestOfferRegistry_MultipleBuyers(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)
	_, err = f.engine.MakeOffer(wallet3, nftContract, 1)
	require.NoError(t, err)

	_, found := f.engine.GetOffer(nftContract, 1, wallet2)
	assert.True(t, found)
	_, found = f.engine.GetOffer(nftContract, 1, wallet3)
	assert.True(t, found)
}

func TestOfferRegistry_Withdraw(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)

	require.NoError(t, f.engine.WithdrawOffer(wallet2, nftContract, 1))

	_, found := f.engine.GetOffer(nftContract, 1, wallet2)
	assert.False(t, found)

	err = f.engine.WithdrawOffer(wallet2, nftContract, 1)
	assert.True(t, errors.Is(err, marketplace.ErrOfferNotFound))
}

func TestOfferRegistry_Remove_Idempotent(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)

	f.offers.Remove(nftContract, 1, wallet2)
	f.offers.Remove(nftContract, 1, wallet2)

	_, found := f.offers.Get(nftContract, 1, wallet2)
	assert.False(t, found)
}

func TestOfferRegistry_RemoveAllForAsset(t *testing.T) {
	f := newFixture()
	f.ledger.Mint(nftContract, 1, wallet1)
	f.ledger.Mint(nftContract, 2, wallet1)

	_, err := f.engine.ListNft(wallet1, nftContract, 1, 1000000)
	require.NoError(t, err)
	_, err = f.engine.ListNft(wallet1, nftContract, 2, 1000000)
	require.NoError(t, err)

	_, err = f.engine.MakeOffer(wallet2, nftContract, 1)
	require.NoError(t, err)
	_, err = f.engine.MakeOffer(wallet3, nftContract, 1)
	require.NoError(t, err)
	_, err = f.engine.MakeOffer(wallet2, nftContract, 2)
	require.NoError(t, err)

	f.offers.RemoveAllForAsset(nftContract, 1)

	_, found := f.offers.Get(nftContract, 1, wallet2)
	assert.False(t, found)
	_, found = f.offers.Get(nftContract, 1, wallet3)
	assert.False(t, found)

	_, found = f.offers.Get(nftContract, 2, wallet2)
	assert.True(t, found, "offers on other assets must survive")
}
