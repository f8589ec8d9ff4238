package marketplace

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"go.uber.org/zap"
)

type ListingRegistry interface {
	Create(collection entity.Principal, assetId uint64, seller entity.Principal, price uint64) (*entity.Listing, error)
	Get(collection entity.Principal, assetId uint64) (*entity.Listing, bool)
	Remove(collection entity.Principal, assetId uint64)
	Cancel(caller, collection entity.Principal, assetId uint64) error
}

type listingRegistry struct {
	ledger ledger.Ledger
	store  *cache.Cache
}

func NewListingRegistry(l ledger.Ledger) ListingRegistry {
	return &listingRegistry{l, cache.New(cache.NoExpiration, 0)}
}

func (r *listingRegistry) Create(collection entity.Principal, assetId uint64, seller entity.Principal, price uint64) (*entity.Listing, error) {
	if _, exists := r.Get(collection, assetId); exists {
		return nil, ErrAlreadyListed
	}

	if price == 0 {
		return nil, ErrPriceZero
	}

	owner, err := r.ledger.OwnerOf(collection, assetId)
	if err != nil || owner != seller {
		return nil, ErrNotTokenOwner
	}

	listing := entity.Listing{
		Collection: collection,
		AssetId:    assetId,
		Seller:     seller,
		Price:      price,
		CreatedAt:  time.Now().Unix(),
	}
	r.store.Set(listing.Slug(), listing, cache.NoExpiration)

	zap.L().With(
		zap.String("collection", collection.String()),
		zap.Uint64("assetId", assetId),
		zap.Uint64("price", price),
	).Info("Marketplace: Token listed")
	event.EmitEvent(event.ListingCreatedEvent, listing)

	return &listing, nil
}

func (r *listingRegistry) Get(collection entity.Principal, assetId uint64) (*entity.Listing, bool) {
	item, found := r.store.Get(entity.CreateListingSlug(collection, assetId))
	if !found {
		return nil, false
	}

	listing := item.(entity.Listing)

	return &listing, true
}

// Remove is idempotent. Callers that need must-exist semantics check first.
func (r *listingRegistry) Remove(collection entity.Principal, assetId uint64) {
	r.store.Delete(entity.CreateListingSlug(collection, assetId))
}

func (r *listingRegistry) Cancel(caller, collection entity.Principal, assetId uint64) error {
	listing, found := r.Get(collection, assetId)
	if !found {
		return ErrListingNotFound
	}

	if listing.Seller != caller {
		return ErrNotSeller
	}

	r.Remove(collection, assetId)

	zap.L().With(
		zap.String("collection", collection.String()),
		zap.Uint64("assetId", assetId),
	).Info("Marketplace: Listing cancelled")
	event.EmitEvent(event.ListingCancelledEvent, *listing)

	return nil
}
