/*
Package x contains the extensions an onesig ledger is built from.

The sub-packages implement handlers and decorators: transaction
signature checks (sigs), the native account host (host), the multisig
authorization engine (multisig) and common decorators (utils). The
root of this package only carries helpers shared between them, such
as the Authenticator interface and ChainAuth.
*/
package x
