package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LianHaeming/weightlog/handlers"
	"github.com/LianHaeming/weightlog/metrics"
	"github.com/LianHaeming/weightlog/tmpl"
)

func newServeCmd(e *env, buildVersion string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the weight log page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				e.viper.Set("port", port)
			}
			cfg, err := e.config()
			if err != nil {
				return err
			}
			app, closeStore, err := e.open()
			if err != nil {
				return err
			}
			defer closeStore()

			// Resolve asset version for cache-busting
			assetVer := buildVersion
			if assetVer == "" {
				assetVer = strconv.FormatInt(time.Now().Unix(), 10)
			}
			templates, err := tmpl.Load(assetVer)
			if err != nil {
				return err
			}

			deps := &handlers.Deps{
				App:       app,
				Templates: templates,
				Metrics:   metrics.New(),
			}
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%s", cfg.Port),
				Handler:           deps.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Infof("weightlog listening on http://localhost:%s", cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "", "listen port (default 8000)")
	return cmd
}
