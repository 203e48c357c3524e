package penalty

import "errors"

// Penalty domain errors
var (
	ErrPenaltyNotFound       = errors.New("penalty not found")
	ErrPenaltyAlreadyRemoved = errors.New("penalty has already been removed")
	ErrSettingsNotFound      = errors.New("penalty settings not found")
)
