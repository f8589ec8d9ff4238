package ledger

import (
	"fmt"
	"sync"

	"github.com/stackify/marketplace-engine/internal/entity"
)

// MemoryLedger simulates the host chain for local runs and tests. Mutations
// inside Atomically are applied to a working copy and only swapped in when the
// callback succeeds, matching the rollback guarantee of the real host.
type MemoryLedger struct {
	mtx      sync.Mutex
	balances map[entity.Principal]uint64
	owners   map[string]entity.Principal
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[entity.Principal]uint64),
		owners:   make(map[string]entity.Principal),
	}
}

func assetKey(collection entity.Principal, assetId uint64) string {
	return fmt.Sprintf("%s/%d", collection, assetId)
}

func (l *MemoryLedger) Fund(p entity.Principal, amount uint64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.balances[p] += amount
}

func (l *MemoryLedger) Mint(collection entity.Principal, assetId uint64, owner entity.Principal) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.owners[assetKey(collection, assetId)] = owner
}

func (l *MemoryLedger) BalanceOf(p entity.Principal) uint64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.balances[p]
}

func (l *MemoryLedger) OwnerOf(collection entity.Principal, assetId uint64) (entity.Principal, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	owner, ok := l.owners[assetKey(collection, assetId)]
	if !ok {
		return "", ErrUnknownAsset
	}

	return owner, nil
}

func (l *MemoryLedger) Atomically(fn func(tx Tx) error) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	work := &memoryTx{
		balances: make(map[entity.Principal]uint64, len(l.balances)),
		owners:   make(map[string]entity.Principal, len(l.owners)),
	}
	for p, b := range l.balances {
		work.balances[p] = b
	}
	for k, o := range l.owners {
		work.owners[k] = o
	}

	if err := fn(work); err != nil {
		return err
	}

	l.balances = work.balances
	l.owners = work.owners

	return nil
}

type memoryTx struct {
	balances map[entity.Principal]uint64
	owners   map[string]entity.Principal
}

func (t *memoryTx) Pay(from, to entity.Principal, amount uint64) error {
	if t.balances[from] < amount {
		return ErrInsufficientFunds
	}

	t.balances[from] -= amount
	t.balances[to] += amount

	return nil
}

func (t *memoryTx) Transfer(collection entity.Principal, assetId uint64, from, to entity.Principal) error {
	key := assetKey(collection, assetId)

	owner, ok := t.owners[key]
	if !ok {
		return ErrUnknownAsset
	}
	if owner != from {
		return ErrNotTokenOwner
	}

	t.owners[key] = to

	return nil
}
