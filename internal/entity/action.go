package entity

import (
	"crypto/md5"
	"fmt"
)

type ActionType string

const (
	ListedAction    ActionType = "listed"
	DelistedAction  ActionType = "delisted"
	OfferAction     ActionType = "offer"
	WithdrawnAction ActionType = "withdrawn"
	SaleAction      ActionType = "sale"
)

// MarketplaceAction is the audit trail entry for a lifecycle transition.
// Actions are append-only; the registries stay the source of truth.
type MarketplaceAction struct {
	Action     ActionType `json:"action"`
	Collection Principal  `json:"collection"`
	AssetId    uint64     `json:"assetId"`
	Principal  Principal  `json:"principal"`
	Price      uint64     `json:"price,omitempty"`
	Fee        uint64     `json:"fee,omitempty"`
	OccurredAt int64      `json:"occurredAt"`
}

func (a MarketplaceAction) Slug() string {
	return CreateMarketplaceActionSlug(string(a.Action), a.Collection, a.AssetId, a.Principal, a.OccurredAt)
}

func CreateMarketplaceActionSlug(action string, collection Principal, assetId uint64, principal Principal, occurredAt int64) string {
	data := []byte(fmt.Sprintf("action-%s-%s-%d-%s-%d", action, collection, assetId, principal, occurredAt))
	return fmt.Sprintf("%x", md5.Sum(data))
}
