package main

import (
	"fmt"
	"os"

	"github.com/okian/matchscore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "matchscore:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
