package multisig

import (
	amino "github.com/tendermint/go-amino"
)

// cdc encodes all persisted records and messages of this package.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*ConfigOp)(nil), nil)
	cdc.RegisterConcrete(AddSignerOp{}, "multisig/AddSigner", nil)
	cdc.RegisterConcrete(RemoveSignerOp{}, "multisig/RemoveSigner", nil)
	cdc.RegisterConcrete(SetThresholdOp{}, "multisig/SetThreshold", nil)
	cdc.RegisterConcrete(SetSeedOp{}, "multisig/SetSeed", nil)
	cdc.RegisterConcrete(AddExecutorOp{}, "multisig/AddExecutor", nil)
	cdc.RegisterConcrete(RemoveExecutorOp{}, "multisig/RemoveExecutor", nil)
	cdc.RegisterConcrete(SetExecutorRequiredOp{}, "multisig/SetExecutorRequired", nil)
	cdc.Seal()
}
