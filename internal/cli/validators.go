package cli

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/docinspect/internal/validator/builtin"
)

var validatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "List the validators a configuration tree may name",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range builtin.Registry().Names() {
			cmd.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(validatorsCmd)
}
