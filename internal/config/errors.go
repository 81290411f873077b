package config

import "errors"

// ErrInvalidConfig marks configuration that parses but cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")
