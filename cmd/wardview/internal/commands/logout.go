package commands

import (
	"context"
	"fmt"
)

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals)
	if err != nil {
		return err
	}

	a.manager.Logout(ctx)
	fmt.Println("Logged out")

	return nil
}
