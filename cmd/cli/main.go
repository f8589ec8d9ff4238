package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/stackify/marketplace-engine/internal/config"
	"github.com/stackify/marketplace-engine/internal/config/di"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stackify/marketplace-engine/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container *di.Container
	engine    marketplace.Engine
	tradeRepo repository.TradeRepository
)

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	engine = container.GetEngine()
	tradeRepo = container.GetTradeRepo()

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "principal", Usage: "principal acting as the caller", Required: true},
		},
		Commands: []*cli.Command{
			{
				Name:   "set-fee",
				Usage:  "Set the marketplace fee in basis points",
				Action: setFee,
			},
			{
				Name:   "list",
				Usage:  "List an NFT for sale: <collection> <assetId> <price>",
				Action: listNft,
			},
			{
				Name:   "cancel",
				Usage:  "Cancel a listing: <collection> <assetId>",
				Action: cancelListing,
			},
			{
				Name:   "offer",
				Usage:  "Make an offer on a listed NFT: <collection> <assetId>",
				Action: makeOffer,
			},
			{
				Name:   "withdraw",
				Usage:  "Withdraw your offer: <collection> <assetId>",
				Action: withdrawOffer,
			},
			{
				Name:   "accept",
				Usage:  "Accept a buyer's offer: <collection> <assetId> <buyer>",
				Action: acceptOffer,
			},
			{
				Name:   "buy",
				Usage:  "Buy a listed NFT at its asking price: <collection> <assetId>",
				Action: buyNow,
			},
			{
				Name:   "trades",
				Usage:  "Show settled trades for an asset: <collection> <assetId>",
				Action: trades,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to execute cli")
	}
}

func principal(c *cli.Context) entity.Principal {
	return entity.Principal(c.String("principal"))
}

func assetArgs(c *cli.Context) (entity.Principal, uint64, error) {
	if c.Args().Len() < 2 {
		return "", 0, errors.New("expected <collection> <assetId>")
	}

	assetId, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if err != nil {
		return "", 0, err
	}

	return entity.Principal(c.Args().Get(0)), assetId, nil
}

func setFee(c *cli.Context) error {
	bps, err := strconv.ParseUint(c.Args().Get(0), 10, 64)
	if err != nil {
		return err
	}

	if err := engine.SetFee(principal(c), bps); err != nil {
		return err
	}

	fmt.Printf("fee set to %d bps\n", bps)

	return nil
}

func listNft(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	price, err := strconv.ParseUint(c.Args().Get(2), 10, 64)
	if err != nil {
		return err
	}

	listing, err := engine.ListNft(principal(c), collection, assetId, price)
	if err != nil {
		return err
	}

	fmt.Printf("listed %s/%d at %d\n", listing.Collection, listing.AssetId, listing.Price)

	return nil
}

func cancelListing(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	return engine.CancelListing(principal(c), collection, assetId)
}

func makeOffer(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	offer, err := engine.MakeOffer(principal(c), collection, assetId)
	if err != nil {
		return err
	}

	fmt.Printf("offer created for %s/%d by %s\n", offer.Collection, offer.AssetId, offer.Buyer)

	return nil
}

func withdrawOffer(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	return engine.WithdrawOffer(principal(c), collection, assetId)
}

func acceptOffer(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	if c.Args().Len() < 3 {
		return errors.New("expected <collection> <assetId> <buyer>")
	}

	trade, err := engine.AcceptOffer(principal(c), collection, assetId, entity.Principal(c.Args().Get(2)))
	if err != nil {
		return err
	}

	fmt.Printf("settled: %s/%d sold to %s for %d (fee %d)\n", trade.Collection, trade.AssetId, trade.Buyer, trade.Price, trade.Fee)

	return nil
}

func buyNow(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	trade, err := engine.BuyNow(principal(c), collection, assetId)
	if err != nil {
		return err
	}

	fmt.Printf("settled: %s/%d sold to %s for %d (fee %d)\n", trade.Collection, trade.AssetId, trade.Buyer, trade.Price, trade.Fee)

	return nil
}

func trades(c *cli.Context) error {
	collection, assetId, err := assetArgs(c)
	if err != nil {
		return err
	}

	results, err := tradeRepo.GetTradesByAsset(collection, assetId)
	if err != nil {
		return err
	}

	for _, trade := range results {
		fmt.Printf("%d: %s -> %s for %d (fee %d)\n", trade.SettledAt, trade.Seller, trade.Buyer, trade.Price, trade.Fee)
	}

	return nil
}
