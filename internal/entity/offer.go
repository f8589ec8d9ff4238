package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

type Offer struct {
	Collection Principal `json:"collection"`
	AssetId    uint64    `json:"assetId"`
	Buyer      Principal `json:"buyer"`
	CreatedAt  int64     `json:"createdAt"`
}

func (o Offer) Slug() string {
	return CreateOfferSlug(o.Collection, o.AssetId, o.Buyer)
}

func CreateOfferSlug(collection Principal, assetId uint64, buyer Principal) string {
	return slug.Make(fmt.Sprintf("offer-%s-%d-%s", collection, assetId, buyer))
}
