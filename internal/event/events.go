package event

type Type string

const (
	FeeUpdatedEvent       Type = "FeeUpdatedEvent"
	ListingCreatedEvent   Type = "ListingCreatedEvent"
	ListingCancelledEvent Type = "ListingCancelledEvent"
	OfferCreatedEvent     Type = "OfferCreatedEvent"
	OfferWithdrawnEvent   Type = "OfferWithdrawnEvent"
	TradeSettledEvent     Type = "TradeSettledEvent"
)
