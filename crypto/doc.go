/*
Package crypto holds the primitives shared by both ledgers of a multisig
deployment.

Signer identities are secp256k1 keys addressed the way an EVM ledger does
it, the low 20 bytes of the Keccak-256 hash of the uncompressed public key.
Native identities are 32 byte ed25519 public keys or program derived
identities that are guaranteed to have no private key.
*/
package crypto
