package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrUnknownTopic    = errors.New("unknown quick topic")
	ErrBusy            = errors.New("a reply is still pending")
	ErrNoDetailOpen    = errors.New("no product detail is open")
	ErrNoConsultation  = errors.New("consultation is not open")
	ErrStepBlocked     = errors.New("step requirements not met")
	ErrNoNextStep      = errors.New("no further step, submit instead")
	ErrNoPreviousStep  = errors.New("already at the first step")
	ErrNotAtReview     = errors.New("consultation is not at the review step")
)
