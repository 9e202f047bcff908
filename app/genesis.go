package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// Genesis file format.
type Genesis struct {
	AppOptions onesig.Options `json:"app_options"`
}

// LoadGenesis loads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...onesig.Initializer) onesig.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []onesig.Initializer

// FromGenesis passes the options to all initializers in order, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts onesig.Options, kv onesig.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
