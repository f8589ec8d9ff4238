package marketplace_test

import (
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/ledger"
	"github.com/stackify/marketplace-engine/internal/marketplace"
)

const (
	deployer = entity.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM")
	wallet1  = entity.Principal("ST1SJ3DTE5DN7X54YDH5D64R3BCB6A2AG2ZQ8YPD5")
	wallet2  = entity.Principal("ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG")
	wallet3  = entity.Principal("ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC")

	nftContract = entity.Principal("ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM.test-nft")
)

type fixture struct {
	ledger   *ledger.MemoryLedger
	fees     marketplace.FeeConfig
	listings marketplace.ListingRegistry
	offers   marketplace.OfferRegistry
	engine   marketplace.Engine
}

// newFixture wires an engine against the in-memory host ledger with the
// deployer as marketplace owner and fee recipient, at a 3% fee.
func newFixture() fixture {
	l := ledger.NewMemoryLedger()
	access := marketplace.NewAccessControl(deployer)
	fees := marketplace.NewFeeConfig(access, 300)
	listings := marketplace.NewListingRegistry(l)
	offers := marketplace.NewOfferRegistry(listings)
	engine := marketplace.NewEngine(l, fees, listings, offers, deployer)

	return fixture{l, fees, listings, offers, engine}
}
