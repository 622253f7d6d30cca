package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/clinops/wardview/internal/identity"
)

type LoginCmd struct {
	Username string `arg:"" help:"Account username"`
	Password string `help:"Account password; prompted when omitted"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals)
	if err != nil {
		return err
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	p, err := a.manager.Login(ctx, identity.Credentials{
		Username: l.Username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", p.DisplayName, p.ID)
	if len(p.Roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(p.Roles, ", "))
	}

	return nil
}
