package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

type Listing struct {
	Collection Principal `json:"collection"`
	AssetId    uint64    `json:"assetId"`
	Seller     Principal `json:"seller"`
	Price      uint64    `json:"price"`
	CreatedAt  int64     `json:"createdAt"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.Collection, l.AssetId)
}

func CreateListingSlug(collection Principal, assetId uint64) string {
	return slug.Make(fmt.Sprintf("listing-%s-%d", collection, assetId))
}
