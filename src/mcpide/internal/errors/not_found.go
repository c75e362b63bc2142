package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// UUIDNotFoundError is a service domain error for not found.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("UUID %q not found", n.UUID)
}

// NotFoundUUID returns an UUID and true if UUIDNotFoundError is part of the
// error chain.
func NotFoundUUID(e error) (_ uuid.UUID, ok bool) {
	var nf *UUIDNotFoundError
	if !stderr.As(e, &nf) {
		return uuid.Nil, false
	}
	return nf.UUID, true
}

// NoSessionFoundError indicates that a session cannot be found within the context.
type NoSessionFoundError struct{}

// Error is an implementation of the error interface.
func (n *NoSessionFoundError) Error() string {
	return "No session found in context"
}

// LockFileNotFoundError indicates that no lock file exists at Path.
type LockFileNotFoundError struct {
	Path string
}

// Error is an implementation of the error interface.
func (n *LockFileNotFoundError) Error() string {
	return fmt.Sprintf("lock file %q not found", n.Path)
}

// ToolNotFoundError indicates that no tool is registered under Name.
type ToolNotFoundError struct {
	Name string
}

// Error is an implementation of the error interface.
func (n *ToolNotFoundError) Error() string {
	return fmt.Sprintf("Tool not found: %s", n.Name)
}

// ResourceNotFoundError indicates that a resource URI does not resolve to a readable workspace file.
type ResourceNotFoundError struct {
	URI string
}

// Error is an implementation of the error interface.
func (n *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("Resource not found: %s", n.URI)
}

// DiffTabNotFoundError indicates that no diff is pending under TabName.
type DiffTabNotFoundError struct {
	TabName string
}

// Error is an implementation of the error interface.
func (n *DiffTabNotFoundError) Error() string {
	return fmt.Sprintf("diff tab %q not found", n.TabName)
}
