package multisig

import (
	"github.com/iov-one/onesig"
)

// Version of the authorization program.
const Version = "0.0.1"

const (
	// MaxSigners is the capacity of a roster.
	MaxSigners = 20
	// MaxExecutors is the capacity of an executor set.
	MaxExecutors = 277
	// MaxThreshold is the highest threshold a roster may require.
	MaxThreshold = 13

	// LeafVersion is the version tag of the leaf layout produced by
	// Leaf.Encode. Leaves of any other version are rejected.
	LeafVersion byte = 1
)

var (
	// agentSeed is the derivation seed of the execution agent identity:
	// FindProgramAddress(["OneSig", instance], program).
	agentSeed = []byte("OneSig")

	// commitmentSeed is the derivation seed of commitment records:
	// ["MerkleRoot", instance, root].
	commitmentSeed = []byte("MerkleRoot")
)

// Wire constants shared with the EVM deployment. They are literals, never
// recompute them.
var (
	// eip191Prefix is the EIP-191 version byte for EIP-712 typed data.
	eip191Prefix = [2]byte{0x19, 0x01}

	// signMerkleRootTypeHash is
	// keccak256("SignMerkleRoot(bytes32 seed,bytes32 merkleRoot,uint256 expiry)").
	signMerkleRootTypeHash = onesig.Hash{
		0x64, 0x2e, 0xd5, 0xd2, 0xb7, 0x7b, 0xc7, 0xcc,
		0xb9, 0x8e, 0x10, 0xda, 0x4c, 0x02, 0xd7, 0xcd,
		0x82, 0x31, 0x22, 0x8d, 0xa4, 0x22, 0x2a, 0x9f,
		0x88, 0xa8, 0x0c, 0x15, 0x54, 0x50, 0x74, 0xed,
	}

	// domainSeparator is the EIP-712 domain separator of the EVM
	// contract: name "OneSig", version "0.0.1", chain id 1, verifying
	// contract 0x000000000000000000000000000000000000dEaD.
	domainSeparator = onesig.Hash{
		0x94, 0xc2, 0x89, 0x89, 0x17, 0x0e, 0xb4, 0xdc,
		0x31, 0x35, 0x91, 0x74, 0xb9, 0x11, 0x5c, 0x11,
		0x6a, 0x8f, 0xaf, 0xa6, 0x7b, 0x5a, 0xda, 0xcc,
		0x57, 0x0c, 0xa5, 0x83, 0xeb, 0x96, 0xd6, 0x57,
	}
)

// Instruction discriminators, sha256("global:<instruction>")[:8]. An
// instruction addressed to the program is the discriminator followed by
// the encoded message.
var (
	discriminatorInit             = [8]byte{0x8f, 0xb5, 0xae, 0x54, 0xc0, 0x30, 0x4b, 0x62}
	discriminatorSetConfig        = [8]byte{0x6c, 0x9e, 0x9a, 0xaf, 0xd4, 0x62, 0x34, 0x42}
	discriminatorVerifyCommitment = [8]byte{0x70, 0x02, 0x02, 0x57, 0x08, 0xe1, 0x8d, 0xc0}
	discriminatorExecute          = [8]byte{0xe7, 0xad, 0x31, 0x5b, 0xeb, 0x18, 0x44, 0x13}
	discriminatorCloseCommitment  = [8]byte{0x03, 0x20, 0x9c, 0x59, 0x03, 0x57, 0x03, 0xe0}
)
