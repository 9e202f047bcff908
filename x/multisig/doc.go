/*
Package multisig implements threshold authorization of batches of actions.

Signers of an instance approve a whole batch at once by signing the root of
a Merkle tree of actions, the commitment. Anybody allowed to execute may
then run the actions of the batch one by one, each with a membership proof.
A replay counter, part of every leaf, makes sure each action runs once and
in order.

Signers are secp256k1 keys identified by their EVM address. The signed
digest is EIP-712 typed data, so the same signatures approve the same batch
on an EVM deployment.

Actions run through a Host with the agent identity of the instance as
their signer. Configuration changes are authorized by that identity only,
which means they must be actions of an approved batch too.
*/
package multisig
