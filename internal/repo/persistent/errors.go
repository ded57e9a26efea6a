package persistent

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrLastAdmin           = errors.New("cannot remove the last admin")
)
