package repository

import (
	"encoding/json"
	"errors"

	"github.com/olivere/elastic/v7"
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/entity"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
)

type TradeRepository interface {
	GetTradesByAsset(collection entity.Principal, assetId uint64) ([]entity.Trade, error)
	GetTradesByBuyer(buyer entity.Principal) ([]entity.Trade, error)
	GetLatestTrade(collection entity.Principal, assetId uint64) (*entity.Trade, error)
}

type tradeRepository struct {
	elastic elastic_search.Index
}

func NewTradeRepository(elastic elastic_search.Index) TradeRepository {
	return tradeRepository{elastic}
}

func (r tradeRepository) GetTradesByAsset(collection entity.Principal, assetId uint64) ([]entity.Trade, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("collection.keyword", collection.String()),
		elastic.NewTermQuery("assetId", assetId),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.TradeIndex.Get()).
		Query(query).
		Sort("settledAt", false).
		Size(100))

	return r.findMany(result, err)
}

func (r tradeRepository) GetTradesByBuyer(buyer entity.Principal) ([]entity.Trade, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("buyer.keyword", buyer.String()),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.TradeIndex.Get()).
		Query(query).
		Sort("settledAt", false).
		Size(100))

	return r.findMany(result, err)
}

func (r tradeRepository) GetLatestTrade(collection entity.Principal, assetId uint64) (*entity.Trade, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("collection.keyword", collection.String()),
		elastic.NewTermQuery("assetId", assetId),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.TradeIndex.Get()).
		Query(query).
		Sort("settledAt", false).
		Size(1))

	return r.findOne(result, err)
}

func (r tradeRepository) findOne(results *elastic.SearchResult, err error) (*entity.Trade, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrTradeNotFound
	}

	var trade entity.Trade
	hit := results.Hits.Hits[0]
	if err := json.Unmarshal(hit.Source, &trade); err != nil {
		return nil, err
	}

	return &trade, nil
}

func (r tradeRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Trade, error) {
	if err != nil {
		return nil, err
	}

	trades := make([]entity.Trade, 0)
	for _, hit := range results.Hits.Hits {
		var trade entity.Trade
		if err := json.Unmarshal(hit.Source, &trade); err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	return trades, nil
}
