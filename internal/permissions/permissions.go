// Package permissions models access tokens of the shape
// action-scope-resource[-field] as tagged values and evaluates them with a
// deterministic, side-effect-free predicate.
package permissions

import (
	"fmt"
	"strings"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Scope string

const (
	ScopeOwn           Scope = "own"
	ScopeWithinBranch  Scope = "within_branch"
	ScopeWithinCompany Scope = "within_company"
	ScopeOther         Scope = "other"
)

var validActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionList: {}, ActionUpdate: {}, ActionDelete: {},
}

var validScopes = map[Scope]struct{}{
	ScopeOwn: {}, ScopeWithinBranch: {}, ScopeWithinCompany: {}, ScopeOther: {},
}

// Permission is one grant. Field is optional and narrows the grant to a single
// column of the resource.
type Permission struct {
	Action   Action
	Scope    Scope
	Resource string
	Field    string
}

func (p Permission) String() string {
	if p.Field != "" {
		return fmt.Sprintf("%s-%s-%s-%s", p.Action, p.Scope, p.Resource, p.Field)
	}
	return fmt.Sprintf("%s-%s-%s", p.Action, p.Scope, p.Resource)
}

// Parse converts the wire form back into a tagged value. Scopes contain
// underscores, never hyphens, so a plain split on "-" is unambiguous.
func Parse(s string) (Permission, error) {
	parts := strings.SplitN(s, "-", 4)
	if len(parts) < 3 {
		return Permission{}, fmt.Errorf("malformed permission %q", s)
	}

	p := Permission{
		Action:   Action(parts[0]),
		Scope:    Scope(parts[1]),
		Resource: parts[2],
	}
	if len(parts) == 4 {
		p.Field = parts[3]
	}

	if _, ok := validActions[p.Action]; !ok {
		return Permission{}, fmt.Errorf("unknown action %q in permission %q", parts[0], s)
	}
	if _, ok := validScopes[p.Scope]; !ok {
		return Permission{}, fmt.Errorf("unknown scope %q in permission %q", parts[1], s)
	}
	if p.Resource == "" {
		return Permission{}, fmt.Errorf("missing resource in permission %q", s)
	}
	return p, nil
}

// MarshalText / UnmarshalText keep the wire form stable when permission sets
// travel inside JSON payloads.
func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Permission) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func contains(held []Permission, want Permission) bool {
	for _, p := range held {
		if p == want {
			return true
		}
	}
	return false
}

// PermissionError signals a denial to callers that opted into error-style
// signaling via ProtectParams.RaiseError.
type PermissionError struct {
	msg string
}

func (e *PermissionError) Error() string { return e.msg }

const defaultDeniedMessage = "You do not have permission to perform this action"

type ProtectParams struct {
	// Permissions the caller holds.
	Permissions []Permission
	// RequiredPermissions must all be held, in any order.
	RequiredPermissions []Permission
	// SuperAdmin bypasses every other rule.
	SuperAdmin bool
	// Condition, when set, can veto regardless of containment.
	Condition func(held []Permission) bool
	// RaiseError turns a plain denial into a returned error.
	RaiseError bool
	// Err is returned on denial instead of the default PermissionError.
	// Setting it opts into error signaling even when RaiseError is false.
	Err error
}

// Protect decides access over plain data. Evaluation order, first match wins:
// super-admin allows, a failing condition denies, full containment of the
// required set allows, anything else denies. The error return is nil unless
// the caller opted in via RaiseError or a non-nil Err.
func Protect(params ProtectParams) (bool, error) {
	if params.SuperAdmin {
		return true, nil
	}

	if params.Condition != nil && !params.Condition(params.Permissions) {
		return false, nil
	}

	allHeld := true
	for _, required := range params.RequiredPermissions {
		if !contains(params.Permissions, required) {
			allHeld = false
			break
		}
	}
	if allHeld {
		return true, nil
	}

	if params.Err != nil {
		return false, params.Err
	}
	if params.RaiseError {
		return false, &PermissionError{msg: defaultDeniedMessage}
	}
	return false, nil
}

// ---- * ROLE PERMISSIONS * ---- //

var (
	ReadOwnUsers   = Permission{Action: ActionRead, Scope: ScopeOwn, Resource: "users"}
	UpdateOwnUsers = Permission{Action: ActionUpdate, Scope: ScopeOwn, Resource: "users"}
	DeleteOwnUsers = Permission{Action: ActionDelete, Scope: ScopeOwn, Resource: "users"}
)

var UserPermissions = []Permission{ReadOwnUsers, UpdateOwnUsers, DeleteOwnUsers}

var DefaultPermissions = map[string][]Permission{
	"user": UserPermissions,
}
