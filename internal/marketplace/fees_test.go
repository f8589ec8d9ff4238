package marketplace_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeConfig_SetFee_OwnerOnly(t *testing.T) {
	access := marketplace.NewAccessControl(deployer)
	fees := marketplace.NewFeeConfig(access, 250)

	require.NoError(t, fees.SetFee(deployer, 300))
	assert.Equal(t, uint64(300), fees.GetFee())

	err := fees.SetFee(wallet1, 500)
	require.Error(t, err)
	assert.True(t, errors.Is(err, marketplace.ErrOwnerOnly))
	assert.Equal(t, uint64(100), marketplace.ErrOwnerOnly.Code())

	assert.Equal(t, uint64(300), fees.GetFee(), "a rejected update must not change the rate")
}

func TestFeeConfig_SetFee_Idempotent(t *testing.T) {
	access := marketplace.NewAccessControl(deployer)
	fees := marketplace.NewFeeConfig(access, 250)

	require.NoError(t, fees.SetFee(deployer, 300))
	require.NoError(t, fees.SetFee(deployer, 300))
	assert.Equal(t, uint64(300), fees.GetFee())
}

func TestFeeConfig_Split(t *testing.T) {
	access := marketplace.NewAccessControl(deployer)

	tests := []struct {
		name  string
		bps   uint64
		price uint64
		net   uint64
		fee   uint64
	}{
		{"three percent", 300, 1000000, 970000, 30000},
		{"truncates toward zero", 300, 1000001, 970001, 30000},
		{"zero rate", 0, 1000000, 1000000, 0},
		{"full scale", 10000, 1000000, 0, 1000000},
		{"fee rounds to zero on dust", 300, 3, 3, 0},
		{"large price does not wrap", 300, 1 << 62, 4473335437874566267, 138350580552821637},
		{"max price at default rate", 250, math.MaxUint64, 17985575471866812825, 461168601842738790},
		{"max price full scale", 10000, math.MaxUint64, 0, math.MaxUint64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fees := marketplace.NewFeeConfig(access, tc.bps)

			net, fee := fees.Split(tc.price)
			assert.Equal(t, tc.net, net)
			assert.Equal(t, tc.fee, fee)
		})
	}
}

func TestAccessControl_IsOwner(t *testing.T) {
	access := marketplace.NewAccessControl(deployer)

	assert.True(t, access.IsOwner(deployer))
	assert.False(t, access.IsOwner(wallet1))
	assert.Equal(t, deployer, access.Owner())
}
