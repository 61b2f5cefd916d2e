package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/internal/version"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "socialite",
	Short: "socialite",
	Long:  `socialite alipay oauth2 login server`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".socialite")
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&flags.Global.Dev, "dev", version.Version == "dev", "start with dev mode")
	RootCmd.PersistentFlags().BoolVar(&flags.Global.LogStd, "log-std", true, "log to std")
	RootCmd.PersistentFlags().BoolVar(&flags.EnvNoPrefix, "env-no-prefix", false, "env no SOCIALITE_ prefix")
	RootCmd.PersistentFlags().BoolVar(&flags.Server.SkipConfig, "skip-config", false, "skip config")
	RootCmd.PersistentFlags().BoolVar(&flags.Server.SkipEnvConfig, "skip-env", false, "skip env")
	RootCmd.PersistentFlags().StringVar(&flags.Global.DataDir, "data-dir", defaultDataDir(), "data dir")
}
