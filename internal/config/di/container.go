package di

import (
	"github.com/sarulabs/di/v2"
	"github.com/stackify/marketplace-engine/internal/api"
	"github.com/stackify/marketplace-engine/internal/daemon"
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/indexer"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stackify/marketplace-engine/internal/messenger"
	"github.com/stackify/marketplace-engine/internal/repository"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetLedger() ledger.Ledger {
	return c.ctn.Get("ledger").(ledger.Ledger)
}

func (c *Container) GetEngine() marketplace.Engine {
	return c.ctn.Get("engine").(marketplace.Engine)
}

func (c *Container) GetTradeRepo() repository.TradeRepository {
	return c.ctn.Get("trade.repo").(repository.TradeRepository)
}

func (c *Container) GetActionRepo() repository.ActionRepository {
	return c.ctn.Get("action.repo").(repository.ActionRepository)
}

func (c *Container) GetHistoryIndexer() indexer.HistoryIndexer {
	return c.ctn.Get("history.indexer").(indexer.HistoryIndexer)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}

func (c *Container) GetDaemon() *daemon.Daemon {
	return c.ctn.Get("daemon").(*daemon.Daemon)
}
