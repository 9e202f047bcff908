package host

import (
	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/orm"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// MaxAccountData is the largest account allocation.
const MaxAccountData = 10 * 1024

// Account is a native ledger account.
type Account struct {
	Balance uint64 `json:"balance"`
	// Owner is the program allowed to change the account data. Plain
	// accounts are owned by the system program.
	Owner onesig.Identity `json:"owner"`
	Data  []byte          `json:"data"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (a *Account) Validate() error {
	if len(a.Data) > MaxAccountData {
		return errors.Field("Data", errors.ErrInput, "at most %d bytes", MaxAccountData)
	}
	return nil
}

// AccountBucket keeps accounts under their identity.
type AccountBucket struct {
	orm.ModelBucket
}

// NewAccountBucket returns a bucket for accounts.
func NewAccountBucket() AccountBucket {
	return AccountBucket{ModelBucket: orm.NewModelBucket("account")}
}

// GetAccount loads an account. An account that was never written is
// returned as an empty system account.
func (b AccountBucket) GetAccount(db onesig.ReadOnlyKVStore, id onesig.Identity) (*Account, error) {
	var a Account
	switch err := b.One(db, id[:], &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, err
	}
}

// SaveAccount writes an account.
func (b AccountBucket) SaveAccount(db onesig.KVStore, id onesig.Identity, a *Account) error {
	return b.Put(db, id[:], a)
}
