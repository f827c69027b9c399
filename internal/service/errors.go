package service

import (
	"errors"
	"fmt"
	"hospital/internal/entity"
	"hospital/internal/entity/db"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("login failed")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrSlotTaken          = entity.ErrSlotTaken
	ErrUserInUse          = errors.New("user is referenced by appointments")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrUnavailable        = errors.New("service unavailable")

	// 以下错误同时匹配 ErrNotFound
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", ErrNotFound)
	ErrPostNotFound        = fmt.Errorf("post %w", ErrNotFound)
)

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Actor 是发起操作的已认证用户。
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin 管理员通过所有归属检查。
func (a Actor) IsAdmin() bool {
	return a.Role == db.UserRoleAdmin
}

func (a Actor) is(role string) bool {
	return a.Role == role
}
