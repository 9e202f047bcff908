package sigs

import (
	"github.com/iov-one/onesig/errors"
)

// x/sigs reserves 1200 ~ 1209.
var (
	ErrInvalidSequence = errors.Register(1200, "invalid sequence number")
)
