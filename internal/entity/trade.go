package entity

import (
	"crypto/md5"
	"fmt"
)

// Trade is the record of a completed settlement: asset moved to the buyer,
// price minus fee moved to the seller, fee moved to the platform.
type Trade struct {
	Collection Principal `json:"collection"`
	AssetId    uint64    `json:"assetId"`
	Seller     Principal `json:"seller"`
	Buyer      Principal `json:"buyer"`
	Price      uint64    `json:"price"`
	Fee        uint64    `json:"fee"`
	SettledAt  int64     `json:"settledAt"`
}

func (t Trade) Slug() string {
	return CreateTradeSlug(t.Collection, t.AssetId, t.Buyer, t.SettledAt)
}

func CreateTradeSlug(collection Principal, assetId uint64, buyer Principal, settledAt int64) string {
	data := []byte(fmt.Sprintf("trade-%s-%d-%s-%d", collection, assetId, buyer, settledAt))
	return fmt.Sprintf("%x", md5.Sum(data))
}
