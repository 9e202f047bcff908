/*
Package errors provides the error kinds used across onesig.

Every failure returned by a handler or by the authorization engine wraps one
registered root error. The root error carries a numeric code that stays
stable across releases so that an off-ledger client can tell an expired
commitment from a bad proof without parsing messages.

Register new root errors with Register(code, description) during program
startup. Create instances with ErrXyz.New, ErrXyz.Newf or Wrap at the point
of failure so that a stack trace is recorded once, at the innermost frame.

	%s   prints the error message
	%+v  prints the message followed by the stack trace
*/
package errors
