package ledger

import (
	"errors"

	"github.com/stackify/marketplace-engine/internal/entity"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotTokenOwner     = errors.New("not token owner")
	ErrUnknownAsset      = errors.New("unknown asset")
)

// Tx is the unit of work the host ledger applies all-or-nothing. Either every
// operation queued inside an Atomically callback lands, or none of them do.
type Tx interface {
	Pay(from, to entity.Principal, amount uint64) error
	Transfer(collection entity.Principal, assetId uint64, from, to entity.Principal) error
}

// Ledger is the trusted external registry holding asset ownership and
// balances. The marketplace never owns this state, it only sequences calls.
type Ledger interface {
	OwnerOf(collection entity.Principal, assetId uint64) (entity.Principal, error)
	Atomically(fn func(tx Tx) error) error
}
