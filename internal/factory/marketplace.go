package factory

import (
	"time"

	"github.com/stackify/marketplace-engine/internal/entity"
)

func CreateListedAction(listing entity.Listing) entity.MarketplaceAction {
	return entity.MarketplaceAction{
		Action:     entity.ListedAction,
		Collection: listing.Collection,
		AssetId:    listing.AssetId,
		Principal:  listing.Seller,
		Price:      listing.Price,
		OccurredAt: time.Now().Unix(),
	}
}

func CreateDelistedAction(listing entity.Listing) entity.MarketplaceAction {
	return entity.MarketplaceAction{
		Action:     entity.DelistedAction,
		Collection: listing.Collection,
		AssetId:    listing.AssetId,
		Principal:  listing.Seller,
		OccurredAt: time.Now().Unix(),
	}
}

func CreateOfferAction(offer entity.Offer) entity.MarketplaceAction {
	return entity.MarketplaceAction{
		Action:     entity.OfferAction,
		Collection: offer.Collection,
		AssetId:    offer.AssetId,
		Principal:  offer.Buyer,
		OccurredAt: time.Now().Unix(),
	}
}

func CreateWithdrawnAction(offer entity.Offer) entity.MarketplaceAction {
	return entity.MarketplaceAction{
		Action:     entity.WithdrawnAction,
		Collection: offer.Collection,
		AssetId:    offer.AssetId,
		Principal:  offer.Buyer,
		OccurredAt: time.Now().Unix(),
	}
}

func CreateSaleAction(trade entity.Trade) entity.MarketplaceAction {
	return entity.MarketplaceAction{
		Action:     entity.SaleAction,
		Collection: trade.Collection,
		AssetId:    trade.AssetId,
		Principal:  trade.Buyer,
		Price:      trade.Price,
		Fee:        trade.Fee,
		OccurredAt: trade.SettledAt,
	}
}
