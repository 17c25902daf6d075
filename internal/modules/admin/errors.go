package admin

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrCannotEditSelf = errors.New("admins cannot deactivate or delete themselves")
)
