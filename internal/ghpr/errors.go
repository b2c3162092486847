package ghpr

import (
	"errors"
	"fmt"
)

// NotFoundError indicates the pull request or repository does not exist or
// is not visible to the credential.
type NotFoundError struct {
	Owner  string
	Repo   string
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pull request %s/%s#%d not found", e.Owner, e.Repo, e.Number)
}

// PermissionError indicates the credential lacks permission for an operation.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return "insufficient permission: " + e.Op
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsPermission checks if an error is a PermissionError.
func IsPermission(err error) bool {
	var e *PermissionError
	return errors.As(err, &e)
}
