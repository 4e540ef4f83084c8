// Package common defines shared constants and sentinel errors used across
// the reviewvault server and CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Vault errors.
	ErrDuplicateVault      = errors.New("vault already initialized")
	ErrNoSuchVault         = errors.New("no such vault")
	ErrNothingWithdrawable = errors.New("nothing withdrawable")
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")

	// Authority and token ledger errors.
	ErrAuthorityMismatch = errors.New("authority mismatch")
	ErrTransferFailed    = errors.New("transfer failed")
	ErrMintFailed        = errors.New("mint failed")

	// Balance-specific errors.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Catalog errors.
	ErrMovieNotFound   = errors.New("movie not found")
	ErrDuplicateMovie  = errors.New("movie already exists")
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists")
)
