package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("access denied")
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrFeedbackNotFound    = errors.New("feedback not found")
	ErrTypeNotFound        = errors.New("feedback type not found")
	ErrSettingNotFound     = errors.New("setting not found")
	ErrEmailExists         = errors.New("email already registered")
	ErrTeamExists          = errors.New("team already exists")
	ErrTypeExists          = errors.New("feedback type already exists")
	ErrInvalidFeedbackType = errors.New("invalid feedback type")
)
