package multisig

import (
	"context"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ onesig.Initializer = (*Initializer)(nil)

// FromGenesis saves the configuration from "conf"."multisig" and creates
// the instances listed under "multisig".
func (*Initializer) FromGenesis(opts onesig.Options, db onesig.KVStore) error {
	conf := Configuration{MaxProofLength: DefaultMaxProofLength}
	if err := gconf.InitConfig(db, opts, packageName, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var instances []InitMsg
	if err := opts.ReadOptions(packageName, &instances); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	engine := NewEngine(nil)
	ctx := context.Background()
	for i := range instances {
		msg := &instances[i]
		if err := msg.Validate(); err != nil {
			return errors.Wrapf(err, "instance #%d", i)
		}
		if _, err := engine.Init(ctx, db, msg); err != nil {
			return errors.Wrapf(err, "cannot create instance #%d", i)
		}
	}
	return nil
}
