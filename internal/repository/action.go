package repository

import (
	"encoding/json"

	"github.com/olivere/elastic/v7"
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/entity"
)

type ActionRepository interface {
	GetActionsByAsset(collection entity.Principal, assetId uint64) ([]entity.MarketplaceAction, error)
}

type actionRepository struct {
	elastic elastic_search.Index
}

func NewActionRepository(elastic elastic_search.Index) ActionRepository {
	return actionRepository{elastic}
}

func (r actionRepository) GetActionsByAsset(collection entity.Principal, assetId uint64) ([]entity.MarketplaceAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("collection.keyword", collection.String()),
		elastic.NewTermQuery("assetId", assetId),
	)

	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ActionIndex.Get()).
		Query(query).
		Sort("occurredAt", false).
		Size(100))
	if err != nil {
		return nil, err
	}

	actions := make([]entity.MarketplaceAction, 0)
	for _, hit := range result.Hits.Hits {
		var action entity.MarketplaceAction
		if err := json.Unmarshal(hit.Source, &action); err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}
