package marketplace

import (
	"errors"
	"time"

	"github.com/stackify/marketplace-engine/internal/dev"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"go.uber.org/zap"
)

// Engine is the marketplace entry point. It owns no settlement state of its
// own: it reads the registries and fee config, drives the external ledger, and
// updates the registries only after the ledger unit has committed.
type Engine interface {
	SetFee(caller entity.Principal, bps uint64) error
	GetFee() uint64

	ListNft(caller, collection entity.Principal, assetId, price uint64) (*entity.Listing, error)
	GetListing(collection entity.Principal, assetId uint64) (*entity.Listing, bool)
	CancelListing(caller, collection entity.Principal, assetId uint64) error

	MakeOffer(caller, collection entity.Principal, assetId uint64) (*entity.Offer, error)
	GetOffer(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, bool)
	WithdrawOffer(caller, collection entity.Principal, assetId uint64) error

	AcceptOffer(caller, collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Trade, error)
	BuyNow(caller, collection entity.Principal, assetId uint64) (*entity.Trade, error)
}

type engine struct {
	ledger       ledger.Ledger
	fees         FeeConfig
	listings     ListingRegistry
	offers       OfferRegistry
	feeRecipient entity.Principal
}

func NewEngine(
	l ledger.Ledger,
	fees FeeConfig,
	listings ListingRegistry,
	offers OfferRegistry,
	feeRecipient entity.Principal,
) Engine {
	return &engine{l, fees, listings, offers, feeRecipient}
}

func (e *engine) SetFee(caller entity.Principal, bps uint64) error {
	return e.fees.SetFee(caller, bps)
}

func (e *engine) GetFee() uint64 {
	return e.fees.GetFee()
}

func (e *engine) ListNft(caller, collection entity.Principal, assetId, price uint64) (*entity.Listing, error) {
	return e.listings.Create(collection, assetId, caller, price)
}

func (e *engine) GetListing(collection entity.Principal, assetId uint64) (*entity.Listing, bool) {
	return e.listings.Get(collection, assetId)
}

func (e *engine) CancelListing(caller, collection entity.Principal, assetId uint64) error {
	return e.listings.Cancel(caller, collection, assetId)
}

func (e *engine) MakeOffer(caller, collection entity.Principal, assetId uint64) (*entity.Offer, error) {
	return e.offers.Create(collection, assetId, caller)
}

func (e *engine) GetOffer(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, bool) {
	return e.offers.Get(collection, assetId, buyer)
}

func (e *engine) WithdrawOffer(caller, collection entity.Principal, assetId uint64) error {
	return e.offers.Withdraw(caller, collection, assetId)
}

func (e *engine) AcceptOffer(caller, collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Trade, error) {
	listing, found := e.listings.Get(collection, assetId)
	if !found {
		return nil, ErrListingNotFound
	}

	if listing.Seller != caller {
		return nil, ErrNotSeller
	}

	if _, found := e.offers.Get(collection, assetId, buyer); !found {
		return nil, ErrOfferNotFound
	}

	return e.settle(*listing, buyer)
}

func (e *engine) BuyNow(caller, collection entity.Principal, assetId uint64) (*entity.Trade, error) {
	listing, found := e.listings.Get(collection, assetId)
	if !found {
		return nil, ErrListingNotFound
	}

	if listing.Seller == caller {
		return nil, ErrOfferToSelf
	}

	return e.settle(*listing, caller)
}

// settle runs the commit phase. Preconditions have been validated by the
// caller; the ledger operations go through one atomic unit, and the registries
// are only touched after that unit has committed.
func (e *engine) settle(listing entity.Listing, buyer entity.Principal) (*entity.Trade, error) {
	net, fee := e.fees.Split(listing.Price)

	// The listing goes stale if the seller moved the asset outside the
	// marketplace. Re-check before committing so the transfer leg cannot fail.
	owner, err := e.ledger.OwnerOf(listing.Collection, listing.AssetId)
	if err != nil || owner != listing.Seller {
		return nil, ErrNotTokenOwner
	}

	err = e.ledger.Atomically(func(tx ledger.Tx) error {
		if err := tx.Pay(buyer, listing.Seller, net); err != nil {
			return err
		}
		if fee > 0 {
			if err := tx.Pay(buyer, e.feeRecipient, fee); err != nil {
				return err
			}
		}

		return tx.Transfer(listing.Collection, listing.AssetId, listing.Seller, buyer)
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return nil, ErrPaymentFailed
		}

		// The transfer leg was validated above, so any failure here means the
		// host broke its atomicity contract. Surface it for reconciliation.
		report := dev.NewError("settlement", "atomic unit failed", err, map[string]interface{}{
			"collection": listing.Collection.String(),
			"assetId":    listing.AssetId,
			"seller":     listing.Seller.String(),
			"buyer":      buyer.String(),
		})
		zap.L().With(zap.Error(err), zap.Any("report", report)).Error("Marketplace: Settlement inconsistent")

		return nil, ErrSettlementInconsistent
	}

	e.listings.Remove(listing.Collection, listing.AssetId)
	e.offers.Remove(listing.Collection, listing.AssetId, buyer)
	e.offers.RemoveAllForAsset(listing.Collection, listing.AssetId)

	trade := entity.Trade{
		Collection: listing.Collection,
		AssetId:    listing.AssetId,
		Seller:     listing.Seller,
		Buyer:      buyer,
		Price:      listing.Price,
		Fee:        fee,
		SettledAt:  time.Now().Unix(),
	}

	zap.L().With(
		zap.String("collection", trade.Collection.String()),
		zap.Uint64("assetId", trade.AssetId),
		zap.String("buyer", trade.Buyer.String()),
		zap.Uint64("price", trade.Price),
		zap.Uint64("fee", trade.Fee),
	).Info("Marketplace: Trade settled")
	event.EmitEvent(event.TradeSettledEvent, trade)

	return &trade, nil
}
