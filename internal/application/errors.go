package application

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found for user")
	ErrEmailTaken      = errors.New("email already registered")
)

// ConfigError marks a missing-credentials condition: the relevant provider
// client was never constructed. Handlers surface it as a 500-class config
// error rather than an upstream failure.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
