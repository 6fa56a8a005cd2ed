package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"micromachine.dev/blockbuild/lib/utils"
)

var verbose bool

// logLevel is shared with the handler installed in main so --verbose can
// lower it once flags are parsed.
var logLevel = new(slog.LevelVar)

var rootCmd = &cobra.Command{
	Use:   "blockbuild",
	Short: "Bundles WordPress blocks with esbuild",
	Long: `blockbuild bundles a WordPress block with esbuild.

Imports of scripts WordPress already ships (React, lodash, @wordpress/*)
are replaced with their global variables, and an index.asset.php file
listing the script handles the bundle depends on is written next to it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}
	},
}

func LogLevel() slog.Leveler {
	return logLevel
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		utils.LogWithColor(utils.Fail, err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every extracted import")
}
