package domain

import "errors"

var (
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrDuplicateParticipant = errors.New("participant already exists")
	ErrLocalCameraExists    = errors.New("local camera participant already exists")
	ErrBannerNotFound       = errors.New("banner not found")
	ErrEmptyBannerText      = errors.New("banner text is empty")
	ErrDestinationNotFound  = errors.New("destination not found")
	ErrInvalidCredentials   = errors.New("invalid destination credentials")
	ErrInvalidPlatform      = errors.New("unknown destination platform")
	ErrAcquisitionFailed    = errors.New("media acquisition failed")
	ErrInvalidTransition    = errors.New("invalid session transition")
)
