package main

import (
	"encoding/json"

	"github.com/stackify/marketplace-engine/internal/config"
	"github.com/stackify/marketplace-engine/internal/config/di"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/messenger"
	"go.uber.org/zap"
)

func main() {
	config.Init("tradeSubscriber")

	container, err := di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	zap.L().Info("Trade subscriber started")

	err = container.GetMessenger().ConsumeMessages(messenger.TradeSettled, func(msg string) {
		var trade entity.Trade
		if err := json.Unmarshal([]byte(msg), &trade); err != nil {
			zap.L().With(zap.Error(err)).Error("Failed to decode trade")
			return
		}

		zap.L().With(
			zap.String("collection", trade.Collection.String()),
			zap.Uint64("assetId", trade.AssetId),
			zap.String("buyer", trade.Buyer.String()),
			zap.Uint64("price", trade.Price),
		).Info("Trade settled")
	})
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to consume trades")
	}
}
