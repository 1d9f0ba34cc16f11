package ratelimit

import "errors"

var (
	ErrClosed      = errors.New("ratelimit: limiter is closed")
	ErrStore       = errors.New("ratelimit: store failure")
	ErrBadResponse = errors.New("ratelimit: unexpected store response")
)
