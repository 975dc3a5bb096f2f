// Package mocks holds testify mocks for the interfaces package.
package mocks

import (
	"github.com/haguru/blogd/internal/interfaces"
)

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger returns a logger that drops every entry.
func NewNopLogger() interfaces.Logger { return NopLogger{} }

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) SetLevel(string)              {}

func (n NopLogger) WithContext(map[string]interface{}) interfaces.Logger { return n }
