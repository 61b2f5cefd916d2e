package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shengfai/socialite/cmd/flags"
	"github.com/shengfai/socialite/internal/bootstrap"
	"github.com/shengfai/socialite/internal/conf"
	"github.com/shengfai/socialite/server"
	"github.com/shengfai/socialite/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start socialite server",
	Long:  `Start socialite server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitConfig,
			bootstrap.InitLog,
			bootstrap.InitGinMode,
			bootstrap.InitProvider,
		).Run()
	},
	RunE: Server,
}

func Server(cmd *cobra.Command, args []string) error {
	certPath, keyPath := conf.Conf.Server.CertPath, conf.Conf.Server.KeyPath
	useTLS := certPath != "" && keyPath != ""
	if !useTLS && (certPath != "" || keyPath != "") {
		return errors.New("cert and key must be both set")
	}
	var err error
	if useTLS {
		if certPath, err = utils.OptFilePath(flags.Global.DataDir, certPath); err != nil {
			return err
		}
		if keyPath, err = utils.OptFilePath(flags.Global.DataDir, keyPath); err != nil {
			return err
		}
	}

	e, err := server.NewAndInit()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.Conf.Server.Listen, conf.Conf.Server.Port),
		Handler:           e.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if useTLS {
			log.Infof("website run on https://%s", srv.Addr)
			errCh <- srv.ListenAndServeTLS(certPath, keyPath)
		} else {
			log.Infof("website run on http://%s", srv.Addr)
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	RootCmd.AddCommand(ServerCmd)
	ServerCmd.PersistentFlags().BoolVar(&flags.Server.DisableLogColor, "disable-log-color", false, "disable log color")
}
