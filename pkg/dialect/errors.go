package dialect

import (
	"errors"
	"fmt"
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// Configuration error causes, matched with errors.Is.
var (
	ErrUnknownDialect   = errors.New("unknown dialect")
	ErrUnknownParent    = errors.New("unknown parent dialect")
	ErrDuplicateDialect = errors.New("dialect already defined")
	ErrUndefinedRule    = errors.New("undefined grammar rule")
	ErrInvalidRule      = errors.New("invalid grammar rule")
)

// ConfigurationError reports a mistake in a dialect definition. These come
// from dialect or plugin code, never from user SQL, and are fatal.
type ConfigurationError struct {
	Dialect string
	Rule    string
	Err     error
	Detail  string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("dialect %q", e.Dialect)
	if e.Rule != "" {
		msg += fmt.Sprintf(" rule %q", e.Rule)
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(dialect, rule string, err error, detail string) *ConfigurationError {
	return &ConfigurationError{Dialect: dialect, Rule: rule, Err: err, Detail: detail}
}
