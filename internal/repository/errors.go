// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings themselves. For example,
// ErrEmailExists signals that a signup lost the uniqueness race on the
// email column, while a plain sql.ErrNoRows passes through lookups to
// mean "no such record".
package repository

import "errors"

// ErrEmailExists is returned when an insert into users hits the unique
// email index. Handlers should translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrEmptyMessage is returned when a message insert is attempted with
// neither a text body nor an image. Handlers should translate this into
// an HTTP 400 response.
var ErrEmptyMessage = errors.New("message needs text or image")
