package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrUnknownSheet indicates the requested sheet name does not exist in
// the workbook.
var ErrUnknownSheet = errors.New("unknown sheet")

// ParseError wraps an error raised while building one component of the
// sheet model.
type ParseError struct {
	SheetName string
	Component string // "cells", "styles", "charts", "layout"
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(sheetName, component string, err error) *ParseError {
	return &ParseError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
