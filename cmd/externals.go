package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"micromachine.dev/blockbuild/lib/externals"
	"micromachine.dev/blockbuild/lib/utils"
)

var externalsCmd = &cobra.Command{
	Use:   "externals <request>...",
	Short: "Shows how imports map to WordPress globals and script handles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := utils.DetectConfigFile(&rootDir)
		if err != nil {
			return err
		}

		mapping, err := config.Mapping()
		if err != nil {
			return err
		}

		printExternals(cmd.OutOrStdout(), mapping, config.GlobalObject, args)
		return nil
	},
}

func printExternals(w io.Writer, mapping externals.Mapping, root string, requests []string) {
	for _, request := range requests {
		global, ok := mapping.Global(request)
		if !ok {
			fmt.Fprintf(w, "%s %s\n", request, utils.Muted.Render("bundled"))
			continue
		}

		handle, ok := mapping.Handle(request)
		if !ok {
			handle = request
		}

		fmt.Fprintf(w, "%s → %s.%s %s\n", request, root, strings.Join(global, "."), utils.Handle.Render(handle))
	}
}

func init() {
	rootCmd.AddCommand(externalsCmd)

	externalsCmd.Flags().StringVarP(&rootDir, "rootdir", "r", ".", "--rootdir ./blocks/my-block")
}
