package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"micromachine.dev/blockbuild/lib/bundler"
	"micromachine.dev/blockbuild/lib/utils"
)

var rootDir string
var minify bool
var watch bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Bundles the block and writes its asset manifest",
	Long: `The build command bundles the block for WordPress.
It performs the following steps:
1. Reads blockbuild.toml, blockbuild.json or blockbuild.jsonc if present.
2. Bundles the entry points as an IIFE, replacing WordPress scripts with globals.
3. Writes index.asset.php with the script handles the bundle depends on.

With --watch the bundle and the manifest are rebuilt on every change.`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := utils.DetectConfigFile(&rootDir)
		if err != nil {
			utils.LogWithColor(utils.Fail, fmt.Sprintf("✗ %v", err))
			os.Exit(1)
		}

		if config.Path != "" {
			utils.LogWithColor(utils.Default, fmt.Sprintf("Using \033[1m`%s`\033[0m", config.Path))
		}

		bundle := bundler.Bundle{
			RootDir: rootDir,
			Config:  config,
			Minify:  minify,
		}

		if watch {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := bundle.Watch(ctx); err != nil {
				utils.LogWithColor(utils.Fail, fmt.Sprintf("✗ %v", err))
				os.Exit(1)
			}
			return
		}

		start := time.Now()
		utils.LogWithColor(utils.Cyan, "Running `blockbuild build`...")

		if err := bundle.Build(); err != nil {
			utils.LogWithColor(utils.Fail, fmt.Sprintf("✗ %v", err))
			os.Exit(1)
		}

		elapsed := time.Since(start)
		utils.LogWithColor(utils.Success, fmt.Sprintf("✓ Completed `blockbuild build` in %s", elapsed))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.PersistentFlags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./blocks/my-block")
	buildCmd.PersistentFlags().BoolVar(&minify, "minify", false, "minify the bundle")
	buildCmd.PersistentFlags().BoolVar(&watch, "watch", false, "rebuild on every change")
}
