// Package events defines the typed events the conversion pipeline emits.
package events

import "time"

// ConvertStart is emitted before a conversion stage runs. Stage names a
// pipeline step such as "parse", "to_json" or "format".
type ConvertStart struct {
	Stage  string
	Source string
}

// ConvertFinish is emitted after a conversion stage, whether it succeeded
// or not.
type ConvertFinish struct {
	Stage    string
	Err      error
	Duration time.Duration
}
