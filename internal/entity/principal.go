package entity

// Principal identifies a transacting party (seller, buyer, platform owner).
// Principals are opaque to the marketplace; the host ledger owns their meaning.
type Principal string

func (p Principal) String() string {
	return string(p)
}
