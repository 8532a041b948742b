package oauthmodel

import "errors"

var (
	ErrMissingAuthURL      = errors.New("missing authorization url")
	ErrMissingClientID     = errors.New("missing client id")
	ErrInvalidRedirectUri  = errors.New("invalid or no redirect uri")
	ErrInvalidResponseType = errors.New("unsupported response type")
)
