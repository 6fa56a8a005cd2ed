/*
Copyright © 2026 Micromachine
*/
package main

import (
	"log/slog"
	"os"

	"micromachine.dev/blockbuild/cmd"
	"micromachine.dev/blockbuild/lib/utils"
)

func main() {
	slog.SetDefault(slog.New(utils.NewColorHandler(os.Stderr, cmd.LogLevel())))
	cmd.Execute()
}
