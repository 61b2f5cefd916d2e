package cmd

import (
	"fmt"

	"github.com/shengfai/socialite/internal/version"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of socialite",
	Long:  `All software has versions. This is socialite's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
