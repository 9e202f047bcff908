package multisig

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
	"github.com/iov-one/onesig/store"
	"github.com/iov-one/onesig/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `
	{
		"conf": {
			"multisig": {
				"program_id": "5XDrnPsfpZ29v7DRrUtUBJ3yr5n1mhSUDyEzPuAvakHv"
			}
		},
		"multisig": [
			{
				"instance": "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
				"id": 7,
				"seed": "0x76cc1c7d586cee3a5ae8ff4bab4299354dbba2c59176d79b744ba0a1ce5336fa",
				"signers": [
					"0x9b6ababd080456f900ed64e74d122ff9ca40daa1",
					"0xc221797af9445f00b4b0ff2c4853ce7bfb968b07"
				],
				"threshold": 2
			}
		]
	}`

	var opts onesig.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, onesig.MustParseIdentity("5XDrnPsfpZ29v7DRrUtUBJ3yr5n1mhSUDyEzPuAvakHv"), conf.ProgramID)
	assert.Equal(t, uint32(DefaultMaxProofLength), conf.MaxProofLength)

	instance := onesig.MustParseIdentity("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")
	state, err := NewStateBucket().GetState(db, instance)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), state.ID)
	assert.Equal(t, fixtureSeed, state.Seed)
	assert.Equal(t, []Address{fixtureSignerA, fixtureSignerB}, state.Roster.Signers)
	assert.Equal(t, uint8(2), state.Roster.Threshold)

	_, bump, err := FindAgent(conf.ProgramID, instance)
	require.NoError(t, err)
	assert.Equal(t, bump, state.Bump)
}

func TestGenesisRejectsInvalidInstances(t *testing.T) {
	const genesis = `
	{
		"conf": {"multisig": {"program_id": "5XDrnPsfpZ29v7DRrUtUBJ3yr5n1mhSUDyEzPuAvakHv"}},
		"multisig": [
			{
				"instance": "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
				"signers": ["0x9b6ababd080456f900ed64e74d122ff9ca40daa1"],
				"threshold": 2
			}
		]
	}`
	var opts onesig.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	var ini Initializer
	err := ini.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, ErrThresholdExceedsSigners, err)
}

func TestGenesisRequiresProgram(t *testing.T) {
	var ini Initializer
	err := ini.FromGenesis(onesig.Options{}, store.MemStore())
	assert.IsErr(t, errors.ErrNotFound, err)

	const genesis = `{"conf": {"multisig": {"max_proof_length": 8}}}`
	var opts onesig.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))
	err = ini.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrEmpty, err)
}
