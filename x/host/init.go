package host

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

const optKey = "accounts"

// GenesisAccount is an account funded from the genesis file.
type GenesisAccount struct {
	Address onesig.Identity `json:"address"`
	Balance uint64          `json:"balance"`
}

// Initializer loads the accounts listed under "accounts".
type Initializer struct{}

var _ onesig.Initializer = Initializer{}

// FromGenesis credits all genesis accounts.
func (Initializer) FromGenesis(opts onesig.Options, db onesig.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	h := NewHost()
	for i, a := range accounts {
		if a.Address.IsZero() {
			return errors.Wrapf(errors.ErrEmpty, "account #%d address", i)
		}
		if err := h.Credit(db, a.Address, a.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
