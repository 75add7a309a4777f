// Package policy decides whether an authenticated caller may touch a
// resource. It holds no state of its own.
package policy

import (
	"errors"

	"todo-guard/backend/app/models"
)

// DefaultAccountRole is the role the account self-service endpoints require
// unless configured otherwise.
const DefaultAccountRole = models.RoleAdmin

var (
	// ErrUnauthenticated means there is no verified caller.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrRoleRequired means the caller lacks the role an operation needs.
	ErrRoleRequired = errors.New("required role missing")
	// ErrNotOwner is reported to clients exactly like a missing record.
	ErrNotOwner = errors.New("resource not owned by caller")
)

// Identity is the verified caller reconstructed from a bearer token.
type Identity struct {
	Username string
	UserID   uint
	Role     string
}

// Policy carries the configurable parts of the access rules.
type Policy struct {
	AccountRole string
}

func New(accountRole string) Policy {
	if accountRole == "" {
		accountRole = DefaultAccountRole
	}
	return Policy{AccountRole: accountRole}
}

// Authenticated rejects a nil identity.
func Authenticated(id *Identity) error {
	if id == nil {
		return ErrUnauthenticated
	}
	return nil
}

// CanAccessTodo allows read, update and delete only for the owner.
func CanAccessTodo(id *Identity, todo *models.Todo) error {
	if err := Authenticated(id); err != nil {
		return err
	}
	if todo == nil || todo.OwnerID != id.UserID {
		return ErrNotOwner
	}
	return nil
}

// StampOwner makes the caller the owner of a new todo, discarding any owner
// the client supplied.
func StampOwner(id *Identity, todo *models.Todo) error {
	if err := Authenticated(id); err != nil {
		return err
	}
	todo.OwnerID = id.UserID
	return nil
}

// CanManageAccount guards profile, password and phone-number operations.
func (p Policy) CanManageAccount(id *Identity) error {
	if err := Authenticated(id); err != nil {
		return err
	}
	if id.Role != p.AccountRole {
		return ErrRoleRequired
	}
	return nil
}
