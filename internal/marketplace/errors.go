package marketplace

import "fmt"

// Error carries the numeric code convention the on-chain contract exposes
// (err u100 for owner-only, and so on). Callers dispatch on the code.
type Error struct {
	code uint64
	msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("u%d: %s", e.code, e.msg)
}

func (e Error) Code() uint64 {
	return e.code
}

var (
	ErrOwnerOnly              = Error{100, "owner only"}
	ErrNotTokenOwner          = Error{101, "sender does not own the token"}
	ErrPriceZero              = Error{102, "price must be greater than zero"}
	ErrAlreadyListed          = Error{103, "token is already listed"}
	ErrListingNotFound        = Error{104, "listing not found"}
	ErrDuplicateOffer         = Error{105, "offer already exists"}
	ErrOfferToSelf            = Error{106, "cannot trade with yourself"}
	ErrOfferNotFound          = Error{107, "offer not found"}
	ErrNotSeller              = Error{108, "sender is not the seller"}
	ErrPaymentFailed          = Error{109, "payment failed"}
	ErrSettlementInconsistent = Error{110, "settlement left the ledger inconsistent"}
)
