package auth

import "errors"

var (
	ErrMissingToken   = errors.New("missing_token")
	ErrInvalidToken   = errors.New("invalid_token")
	ErrUnknownAccount = errors.New("unknown_account")
)
