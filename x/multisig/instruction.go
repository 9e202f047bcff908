package multisig

import (
	"bytes"

	"github.com/iov-one/onesig"
	"github.com/iov-one/onesig/errors"
)

// EncodeInstruction returns the instruction data that calls this program
// with given message: the instruction discriminator followed by the
// encoded message.
func EncodeInstruction(msg onesig.Msg) ([]byte, error) {
	var disc [8]byte
	switch msg.(type) {
	case *InitMsg:
		disc = discriminatorInit
	case *SetConfigMsg:
		disc = discriminatorSetConfig
	case *VerifyCommitmentMsg:
		disc = discriminatorVerifyCommitment
	case *ExecuteMsg:
		disc = discriminatorExecute
	case *CloseCommitmentMsg:
		disc = discriminatorCloseCommitment
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T is not an instruction of this program", msg)
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return append(disc[:], raw...), nil
}

// DecodeInstruction is the reverse of EncodeInstruction.
func DecodeInstruction(data []byte) (onesig.Msg, error) {
	if len(data) < len(discriminatorInit) {
		return nil, errors.Wrapf(errors.ErrMsg, "instruction of %d bytes", len(data))
	}
	disc, raw := data[:8], data[8:]
	var msg onesig.Msg
	switch {
	case bytes.Equal(disc, discriminatorInit[:]):
		msg = &InitMsg{}
	case bytes.Equal(disc, discriminatorSetConfig[:]):
		msg = &SetConfigMsg{}
	case bytes.Equal(disc, discriminatorVerifyCommitment[:]):
		msg = &VerifyCommitmentMsg{}
	case bytes.Equal(disc, discriminatorExecute[:]):
		msg = &ExecuteMsg{}
	case bytes.Equal(disc, discriminatorCloseCommitment[:]):
		msg = &CloseCommitmentMsg{}
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown instruction %x", disc)
	}
	if err := msg.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "%T: %s", msg, err)
	}
	return msg, nil
}
