package marketplace

import (
	"github.com/stackify/marketplace-engine/internal/entity"
)

// AccessControl gates administrative mutations to the principal that deployed
// the marketplace. The owner is fixed at construction.
type AccessControl struct {
	owner entity.Principal
}

func NewAccessControl(owner entity.Principal) AccessControl {
	return AccessControl{owner: owner}
}

func (a AccessControl) IsOwner(caller entity.Principal) bool {
	return caller == a.owner
}

func (a AccessControl) Owner() entity.Principal {
	return a.owner
}
