package elastic_search

import (
	"fmt"

	"github.com/stackify/marketplace-engine/internal/config"
)

type Indices string

var (
	TradeIndex  Indices = "trade"
	ActionIndex Indices = "action"
)

// Get composes the full index name from the configured network and index.
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
