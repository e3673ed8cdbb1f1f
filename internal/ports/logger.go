package ports

import "github.com/geotala/zonalstats/pkg/log"

// Logger is the structured logging port. It aliases pkg/log so core
// packages only import ports.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// String creates a string field.
func String(key, value string) Field { return log.String(key, value) }

// Int creates an int field.
func Int(key string, value int) Field { return log.Int(key, value) }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return log.Float64(key, value) }

// Err creates an error field with key "error".
func Err(err error) Field { return log.Err(err) }
