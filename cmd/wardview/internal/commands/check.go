package commands

import (
	"context"
	"fmt"

	"github.com/clinops/wardview/internal/guard"
)

type CheckCmd struct {
	Route       string   `arg:"" help:"Route name to evaluate"`
	Roles       []string `help:"Roles the route requires"`
	Permissions []string `help:"Permissions the route requires"`
	All         bool     `help:"Require every listed role and permission instead of any"`
}

func (c *CheckCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals)
	if err != nil {
		return err
	}

	decision, err := guard.Evaluate(a.manager.Current(), guard.Route{
		Name:                c.Route,
		RequiredRoles:       c.Roles,
		RequiredPermissions: c.Permissions,
		RequireAll:          c.All,
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate route %q: %w", c.Route, err)
	}

	fmt.Printf("%s: %s\n", c.Route, decision)

	return nil
}
