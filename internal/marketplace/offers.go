package marketplace

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"go.uber.org/zap"
)

type OfferRegistry interface {
	Create(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, error)
	Get(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, bool)
	Remove(collection entity.Principal, assetId uint64, buyer entity.Principal)
	RemoveAllForAsset(collection entity.Principal, assetId uint64)
	Withdraw(caller, collection entity.Principal, assetId uint64) error
}

type offerRegistry struct {
	listings ListingRegistry
	store    *cache.Cache
}

func NewOfferRegistry(listings ListingRegistry) OfferRegistry {
	return &offerRegistry{listings, cache.New(cache.NoExpiration, 0)}
}

func (r *offerRegistry) Create(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, error) {
	listing, found := r.listings.Get(collection, assetId)
	if !found {
		return nil, ErrListingNotFound
	}

	if _, exists := r.Get(collection, assetId, buyer); exists {
		return nil, ErrDuplicateOffer
	}

	if buyer == listing.Seller {
		return nil, ErrOfferToSelf
	}

	offer := entity.Offer{
		Collection: collection,
		AssetId:    assetId,
		Buyer:      buyer,
		CreatedAt:  time.Now().Unix(),
	}
	r.store.Set(offer.Slug(), offer, cache.NoExpiration)

	zap.L().With(
		zap.String("collection", collection.String()),
		zap.Uint64("assetId", assetId),
		zap.String("buyer", buyer.String()),
	).Info("Marketplace: Offer created")
	event.EmitEvent(event.OfferCreatedEvent, offer)

	return &offer, nil
}

func (r *offerRegistry) Get(collection entity.Principal, assetId uint64, buyer entity.Principal) (*entity.Offer, bool) {
	item, found := r.store.Get(entity.CreateOfferSlug(collection, assetId, buyer))
	if !found {
		return nil, false
	}

	offer := item.(entity.Offer)

	return &offer, true
}

// Remove is idempotent, like listing removal.
func (r *offerRegistry) Remove(collection entity.Principal, assetId uint64, buyer entity.Principal) {
	r.store.Delete(entity.CreateOfferSlug(collection, assetId, buyer))
}

// RemoveAllForAsset clears competing offers once an asset has been sold.
func (r *offerRegistry) RemoveAllForAsset(collection entity.Principal, assetId uint64) {
	for key, item := range r.store.Items() {
		offer, ok := item.Object.(entity.Offer)
		if !ok {
			continue
		}
		if offer.Collection == collection && offer.AssetId == assetId {
			r.store.Delete(key)
		}
	}
}

func (r *offerRegistry) Withdraw(caller, collection entity.Principal, assetId uint64) error {
	offer, found := r.Get(collection, assetId, caller)
	if !found {
		return ErrOfferNotFound
	}

	r.Remove(collection, assetId, caller)

	zap.L().With(
		zap.String("collection", collection.String()),
		zap.Uint64("assetId", assetId),
		zap.String("buyer", caller.String()),
	).Info("Marketplace: Offer withdrawn")
	event.EmitEvent(event.OfferWithdrawnEvent, *offer)

	return nil
}
