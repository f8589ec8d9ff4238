package daemon

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stackify/marketplace-engine/internal/api"
	"github.com/stackify/marketplace-engine/internal/config"
	"github.com/stackify/marketplace-engine/internal/elastic_search"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"github.com/stackify/marketplace-engine/internal/indexer"
	"github.com/stackify/marketplace-engine/internal/messenger"
	"go.uber.org/zap"
)

type Daemon struct {
	elastic   elastic_search.Index
	history   indexer.HistoryIndexer
	server    api.Server
	messenger messenger.MessageService
}

func NewDaemon(
	elastic elastic_search.Index,
	history indexer.HistoryIndexer,
	server api.Server,
	messageService messenger.MessageService,
) *Daemon {
	return &Daemon{elastic, history, server, messageService}
}

func (d *Daemon) Execute() {
	d.elastic.InstallMappings()
	d.history.Subscribe()

	if config.Get().Amqp.Enabled {
		event.AddEventListener(event.TradeSettledEvent, d.publishTrade)
	}

	go d.persist()

	d.serve()
}

func (d *Daemon) persist() {
	for {
		time.Sleep(10 * time.Second)
		if persisted := d.elastic.BatchPersist(); !persisted {
			d.elastic.Persist()
		}
	}
}

func (d *Daemon) publishTrade(msg interface{}) {
	trade, ok := msg.(entity.Trade)
	if !ok {
		zap.L().Error("Daemon: Unexpected trade payload")
		return
	}

	body, err := json.Marshal(trade)
	if err != nil {
		zap.L().With(zap.Error(err)).Error("Daemon: Failed to encode trade")
		return
	}

	if err := d.messenger.SendMessage(messenger.TradeSettled, body, true); err != nil {
		zap.L().With(zap.Error(err), zap.String("slug", trade.Slug())).Error("Daemon: Failed to publish trade")
	}
}

func (d *Daemon) serve() {
	port := config.Get().ApiPort
	zap.L().With(zap.String("port", port)).Info("Marketplace API Started")

	if err := http.ListenAndServe(":"+port, d.server.Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start marketplace API")
	}
}
