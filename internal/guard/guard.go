// Package guard decides, per navigation, whether the current session may
// render a protected resource. The guard never navigates; it reports a
// decision for the presentation layer to interpret.
package guard

import (
	"errors"

	"github.com/clinops/wardview/internal/authz"
	"github.com/clinops/wardview/internal/session"
)

// Decision is the guard's verdict for a navigation request.
type Decision int

const (
	// DecisionRedirectToLogin means no authenticated session is present.
	DecisionRedirectToLogin Decision = iota
	// DecisionRedirectToUnauthorized means the session lacks a required
	// role or permission.
	DecisionRedirectToUnauthorized
	// DecisionRender allows the navigation to proceed.
	DecisionRender
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionRedirectToLogin:
		return "redirect-to-login"
	case DecisionRedirectToUnauthorized:
		return "redirect-to-unauthorized"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// ErrNotSettled is returned when the session has not reached a settled
// state yet; callers show a neutral loading indication and re-evaluate
// once the session settles.
var ErrNotSettled = errors.New("session not settled")

// Route declares a resource's authorization requirements. A route
// declaring neither roles nor permissions is open to any authenticated
// session.
type Route struct {
	Name                string
	RequiredRoles       []string
	RequiredPermissions []string
	// RequireAll selects ALL semantics for both requirement sets; the
	// default is ANY.
	RequireAll bool
}

// Evaluate decides whether sess may render route. Role and permission
// requirements are both evaluated; failing either denies access.
func Evaluate(sess session.Session, route Route) (Decision, error) {
	if !sess.Settled() {
		return DecisionRedirectToLogin, ErrNotSettled
	}
	if !sess.IsAuthenticated() {
		return DecisionRedirectToLogin, nil
	}

	p := sess.Principal

	if len(route.RequiredRoles) > 0 {
		ok := authz.HasAnyRole(p, route.RequiredRoles)
		if route.RequireAll {
			ok = authz.HasAllRoles(p, route.RequiredRoles)
		}
		if !ok {
			return DecisionRedirectToUnauthorized, nil
		}
	}

	if len(route.RequiredPermissions) > 0 {
		ok := authz.HasAnyPermission(p, route.RequiredPermissions)
		if route.RequireAll {
			ok = authz.HasAllPermissions(p, route.RequiredPermissions)
		}
		if !ok {
			return DecisionRedirectToUnauthorized, nil
		}
	}

	return DecisionRender, nil
}
