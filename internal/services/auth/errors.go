package auth

import "errors"

// ErrDuplicateUser is returned when registering an email that already has an
// account, whether caught by the pre-insert lookup or by the unique index.
var ErrDuplicateUser = errors.New("user already exists")

// ErrUserNotFound is returned when no user record matches the lookup.
var ErrUserNotFound = errors.New("user not found, please register")

// ErrBadCredentials is returned when the password hash comparison fails.
var ErrBadCredentials = errors.New("email or password didn't match")

// ErrGenToken is returned when we cannot sign a JWT.
var ErrGenToken = errors.New("failed to generate token")

// ErrInvalidToken is returned when a presented token is malformed, has a bad
// signature, or is expired.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenMissingUserID is returned when a verified token lacks the user_id
// claim.
var ErrTokenMissingUserID = errors.New("token missing user_id claim")
