package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "api",
		Usage: "GOODINSIDE backend",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			createAdminCommand(),
		},
		// サブコマンド無しはserve
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
