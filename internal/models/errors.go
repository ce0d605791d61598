package models

import "github.com/pkg/errors"

// Failure taxonomy for the advisory pipeline and the account layer. Each is
// terminal for the current request; there are no retries.
var (
	// ErrPlaceNotFound means geocoding returned an empty result set.
	ErrPlaceNotFound = errors.New("place not found")

	// ErrForecastUnavailable means the forecast response lacked the expected
	// data (quota exceeded, invalid key, malformed body).
	ErrForecastUnavailable = errors.New("forecast unavailable")

	// ErrDuplicateAccount means the email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
