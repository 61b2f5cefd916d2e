package cmd

import (
	"fmt"

	"github.com/shengfai/socialite/internal/bootstrap"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/spf13/cobra"
)

var ConfCmd = &cobra.Command{
	Use:   "conf",
	Short: "conf",
	Long:  `print the merged config, secrets masked`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitDiscardLog,
			bootstrap.InitConfig,
		).Run()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(conf.Conf.String())
	},
}

func init() {
	RootCmd.AddCommand(ConfCmd)
}
