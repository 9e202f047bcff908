/*
Package onesig defines the common interfaces that tie together the state
store, the message handlers and the authorization engine of a multisig
instance.

Request scoped data travels through context.Context. For every value T that
is stored in the context there is a pair of functions

	WithXYZ(context.Context, T) context.Context
	XYZ(context.Context) (T, error)

The setters panic when the value is already present so that a lower level
module cannot overwrite what the host provided, for example the block time.
*/
package onesig
