// Package repository persists accounts and comments in MySQL. Sentinel
// errors let handlers map storage outcomes to HTTP statuses without ever
// inspecting raw driver errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert or profile update would leave
// two accounts with the same email. Handlers translate it to HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup or update matches no row.
// Handlers translate it to HTTP 404 (or 401 during login).
var ErrNotFound = errors.New("not found")
