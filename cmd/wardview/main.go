package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/clinops/wardview/cmd/wardview/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login  commands.LoginCmd  `cmd:"" help:"Authenticate against the identity service"`
		Logout commands.LogoutCmd `cmd:"" help:"End the current session"`
		Whoami commands.WhoamiCmd `cmd:"" help:"Show the current session"`
		Check  commands.CheckCmd  `cmd:"" help:"Evaluate route access for the current session"`

		Config      string `help:"Config file path (YAML or JSON)." type:"path"`
		IdentityURL string `help:"Identity service base URL; overrides the config file."`
		StorageDir  string `help:"Credential storage directory; overrides the config file."`
		Debug       bool   `help:"Enable debug mode."`
		Version     kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Config:      cli.Config,
		IdentityURL: cli.IdentityURL,
		StorageDir:  cli.StorageDir,
		Debug:       cli.Debug,
		Version:     version,
	})
	cmd.FatalIfErrorf(err)
}
