// Package cli arma los comandos cobra de cowcatalog.
package cli

import (
	"context"
	"fmt"
	"io"

	"cow-catalog/internal/adapters/storage"
	"cow-catalog/internal/domain/cows"
	"cow-catalog/internal/platform/config"
	"cow-catalog/internal/platform/logger"
	"cow-catalog/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app es el wiring compartido por todos los subcomandos.
type app struct {
	cfg     config.Config
	log     logger.Logger
	metrics *metrics.Metrics
	store   storage.Opened
	svc     *cows.Service

	// loadErr queda seteado si la carga inicial falló (la vista arranca vacía)
	loadErr error
	closed  bool
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "cowcatalog",
		Short:         "Catálogo de ganado: alta, historial y filtros",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), configFile, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")

	root.AddCommand(
		serveCommand(a),
		seedCommand(a),
		listCommand(a),
		resetCommand(a),
	)
	// cobra no corre PersistentPostRunE si RunE falla
	for _, c := range root.Commands() {
		closeAfter(a, c)
	}
	return root
}

// closeAfter cierra el storage al terminar RunE, haya fallado o no.
// Gana el error del comando.
func closeAfter(a *app, c *cobra.Command) {
	run := c.RunE
	if run == nil {
		return
	}
	c.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

// init carga config y levanta logger, metrics, storage y el servicio.
// Los logs van a stderr para no ensuciar la salida de list.
func (a *app) init(ctx context.Context, configFile string, logOut io.Writer) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
		Output: logOut,
	})

	a.metrics, err = metrics.New(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	a.store, err = storage.Open(ctx, cfg.Storage, a.log, a.metrics)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	repo := cows.NewKVRepository(a.store.Store)
	a.svc = cows.NewService(repo, a.log, a.metrics)
	a.loadErr = a.svc.Load(ctx)
	return nil
}

func (a *app) close() error {
	if a.closed || a.store.Close == nil {
		return nil
	}
	a.closed = true
	return a.store.Close()
}
