package indexer

import (
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"github.com/stackify/marketplace-engine/internal/factory"
	"go.uber.org/zap"
)

// HistoryIndexer projects engine events into elastic. The registries remain
// the source of truth; these documents are an audit and query surface only.
type HistoryIndexer interface {
	Subscribe()
}

type historyIndexer struct {
	elastic elastic_search.Index
}

func NewHistoryIndexer(elastic elastic_search.Index) HistoryIndexer {
	return historyIndexer{elastic}
}

func (i historyIndexer) Subscribe() {
	event.AddEventListener(event.ListingCreatedEvent, i.onListingCreated)
	event.AddEventListener(event.ListingCancelledEvent, i.onListingCancelled)
	event.AddEventListener(event.OfferCreatedEvent, i.onOfferCreated)
	event.AddEventListener(event.OfferWithdrawnEvent, i.onOfferWithdrawn)
	event.AddEventListener(event.TradeSettledEvent, i.onTradeSettled)
}

func (i historyIndexer) onListingCreated(msg interface{}) {
	listing, ok := msg.(entity.Listing)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected listing payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.ActionIndex.Get(), factory.CreateListedAction(listing), elastic_search.ListingCreate)
}

func (i historyIndexer) onListingCancelled(msg interface{}) {
	listing, ok := msg.(entity.Listing)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected listing payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.ActionIndex.Get(), factory.CreateDelistedAction(listing), elastic_search.ListingCancel)
}

func (i historyIndexer) onOfferCreated(msg interface{}) {
	offer, ok := msg.(entity.Offer)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected offer payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.ActionIndex.Get(), factory.CreateOfferAction(offer), elastic_search.OfferCreate)
}

func (i historyIndexer) onOfferWithdrawn(msg interface{}) {
	offer, ok := msg.(entity.Offer)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected offer payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.ActionIndex.Get(), factory.CreateWithdrawnAction(offer), elastic_search.OfferWithdraw)
}

func (i historyIndexer) onTradeSettled(msg interface{}) {
	trade, ok := msg.(entity.Trade)
	if !ok {
		zap.L().Error("HistoryIndexer: Unexpected trade payload")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.TradeIndex.Get(), trade, elastic_search.TradeCreate)
	i.elastic.AddIndexRequest(elastic_search.ActionIndex.Get(), factory.CreateSaleAction(trade), elastic_search.TradeCreate)
}
