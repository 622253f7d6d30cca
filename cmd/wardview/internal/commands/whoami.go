package commands

import (
	"context"
	"fmt"
	"strings"
)

type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals)
	if err != nil {
		return err
	}

	cur := a.manager.Current()
	if !cur.IsAuthenticated() {
		fmt.Println("Not logged in")
		return nil
	}

	p := cur.Principal
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", p.DisplayName)
	fmt.Printf("Roles:       %s\n", strings.Join(p.Roles, ", "))
	fmt.Printf("Permissions: %s\n", strings.Join(p.Permissions, ", "))

	return nil
}
