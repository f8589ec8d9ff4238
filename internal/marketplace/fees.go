package marketplace

import (
	"math/bits"
	"sync"

	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/event"
	"go.uber.org/zap"
)

// FeeScale is the denominator of the fee rate: rates are basis points.
const FeeScale = 10000

type FeeConfig interface {
	SetFee(caller entity.Principal, bps uint64) error
	GetFee() uint64
	Split(price uint64) (net, fee uint64)
}

type feeConfig struct {
	access AccessControl

	mtx sync.RWMutex
	bps uint64
}

func NewFeeConfig(access AccessControl, bps uint64) FeeConfig {
	return &feeConfig{access: access, bps: bps}
}

func (f *feeConfig) SetFee(caller entity.Principal, bps uint64) error {
	if !f.access.IsOwner(caller) {
		return ErrOwnerOnly
	}

	f.mtx.Lock()
	f.bps = bps
	f.mtx.Unlock()

	zap.L().With(zap.Uint64("bps", bps)).Info("Marketplace: Fee updated")
	event.EmitEvent(event.FeeUpdatedEvent, bps)

	return nil
}

func (f *feeConfig) GetFee() uint64 {
	f.mtx.RLock()
	defer f.mtx.RUnlock()

	return f.bps
}

// Split divides a sale price into the seller's net and the platform fee.
// Truncating division over a 128-bit intermediate, so price*bps cannot wrap
// for any uint64 price. A rate above FeeScale is capped at the full price so
// the net can never underflow.
func (f *feeConfig) Split(price uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(price, f.GetFee())
	if hi >= FeeScale {
		return 0, price
	}

	fee, _ := bits.Div64(hi, lo, FeeScale)
	if fee > price {
		fee = price
	}

	return price - fee, fee
}
