package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest/assert"
)

type limits struct {
	MaxProof int `json:"max_proof"`
}

func (l *limits) Marshal() ([]byte, error) {
	return json.Marshal(l)
}

func (l *limits) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, l)
}

func (l *limits) Validate() error {
	if l.MaxProof <= 0 {
		return errors.Field("MaxProof", errors.ErrInput, "must be positive")
	}
	return nil
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		opts    string
		wantErr *errors.Error
		want    limits
	}{
		"valid configuration": {
			opts: `{"conf": {"demo": {"max_proof": 32}}}`,
			want: limits{MaxProof: 32},
		},
		"missing package": {
			opts:    `{"conf": {"other": {"max_proof": 1}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			opts:    `{"conf": {"demo": {"max_proof": 0}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts onesig.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.opts), &opts))

			db := store.MemStore()
			var conf limits
			err := InitConfig(db, opts, "demo", &conf)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var loaded limits
			assert.Nil(t, Load(db, "demo", &loaded))
			assert.Equal(t, tc.want, loaded)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var conf limits
	assert.IsErr(t, errors.ErrNotFound, Load(store.MemStore(), "demo", &conf))
}
