package models

import "errors"

var (
	// ErrInputNotFound is returned when the bookmark source does not exist
	ErrInputNotFound = errors.New("bookmarks file not found")
	// ErrInputParse is returned when the bookmark source cannot be decoded
	ErrInputParse = errors.New("cannot parse bookmarks")
	// ErrOutputWrite is returned when the export destination cannot be written
	ErrOutputWrite = errors.New("cannot write export")
)
