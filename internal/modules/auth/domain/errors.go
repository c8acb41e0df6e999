package domain

import "errors"

var (
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
	ErrTokenExpired = errors.New("token_expired")
)
