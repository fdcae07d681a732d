package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")

	ErrBookingNotFound     = errors.New("booking not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNotBookingParty     = errors.New("user is not a party of the booking")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrStatusConflict      = errors.New("booking status changed concurrently")
	ErrAlreadyReviewed     = errors.New("booking already reviewed")
	ErrAlreadyVoted        = errors.New("review already voted by user")
	ErrAlreadyResponded    = errors.New("review already has a provider response")
	ErrPaymentNotSucceeded = errors.New("payment is not succeeded")
)
