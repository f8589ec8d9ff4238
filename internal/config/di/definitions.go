package di

import (
	"github.com/sarulabs/di/v2"
	"github.com/stackify/marketplace-engine/internal/api"
	"github.com/stackify/marketplace-engine/internal/config"
	"github.com/stackify/marketplace-engine/internal/daemon"
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/indexer"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stackify/marketplace-engine/internal/messenger"
	"github.com/stackify/marketplace-engine/internal/repository"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "ledger",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Ledger
			if cfg.Mode == "rpc" {
				return ledger.NewRpcLedger(cfg.Url, cfg.Timeout, cfg.Debug)
			}

			return ledger.NewMemoryLedger(), nil
		},
	},
	{
		Name: "fees",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Marketplace
			access := marketplace.NewAccessControl(entity.Principal(cfg.Owner))

			return marketplace.NewFeeConfig(access, cfg.FeeBps), nil
		},
	},
	{
		Name: "listings",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewListingRegistry(ctn.Get("ledger").(ledger.Ledger)), nil
		},
	},
	{
		Name: "offers",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewOfferRegistry(ctn.Get("listings").(marketplace.ListingRegistry)), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			cfg := config.Get().Marketplace

			feeRecipient := entity.Principal(cfg.FeeRecipient)
			if feeRecipient == "" {
				feeRecipient = entity.Principal(cfg.Owner)
			}

			return marketplace.NewEngine(
				ctn.Get("ledger").(ledger.Ledger),
				ctn.Get("fees").(marketplace.FeeConfig),
				ctn.Get("listings").(marketplace.ListingRegistry),
				ctn.Get("offers").(marketplace.OfferRegistry),
				feeRecipient,
			), nil
		},
	},
	{
		Name: "trade.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewTradeRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "history.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewHistoryIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().Amqp.Uri), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(marketplace.Engine),
				ctn.Get("trade.repo").(repository.TradeRepository),
				ctn.Get("action.repo").(repository.ActionRepository),
			), nil
		},
	},
	{
		Name: "daemon",
		Build: func(ctn di.Container) (interface{}, error) {
			return daemon.NewDaemon(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("history.indexer").(indexer.HistoryIndexer),
				ctn.Get("api").(api.Server),
				ctn.Get("messenger").(messenger.MessageService),
			), nil
		},
	},
}
