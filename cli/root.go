// Package cli holds the weightlog commands.
package cli

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LianHaeming/weightlog/config"
	"github.com/LianHaeming/weightlog/storage"
	"github.com/LianHaeming/weightlog/tracker"
)

// NewRootCmd builds the command tree. buildVersion is stamped into page
// asset URLs.
func NewRootCmd(buildVersion string) *cobra.Command {
	v := viper.New()
	e := &env{viper: v}
	root := &cobra.Command{
		Use:           "weightlog",
		Short:         "Track dated weight measurements against a goal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&e.configFile, "config", "", "config file (default weightlog.yaml in . or $XDG_CONFIG_HOME/weightlog)")
	flags.String("storage", "", "storage driver: file, sqlite or memory")
	flags.String("path", "", "storage path (directory for file, database for sqlite)")
	flags.String("log-level", "", "log level")
	_ = v.BindPFlag("storage.driver", flags.Lookup("storage"))
	_ = v.BindPFlag("storage.path", flags.Lookup("path"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(
		newServeCmd(e, buildVersion),
		newAddCmd(e),
		newListCmd(e),
		newDeleteCmd(e),
		newGoalCmd(e),
		newStatusCmd(e),
	)
	return root
}

// Execute runs the root command.
func Execute(buildVersion string) error {
	return NewRootCmd(buildVersion).Execute()
}

// env resolves config and opens the tracker for a command.
type env struct {
	viper      *viper.Viper
	configFile string
	cfg        *config.Config
}

func (e *env) config() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	if e.configFile != "" {
		e.viper.SetConfigFile(e.configFile)
	}
	cfg, err := config.Load(e.viper)
	if err != nil {
		return nil, err
	}
	cfg.SetupLogging()
	e.cfg = cfg
	return cfg, nil
}

// open returns a loaded tracker and a func closing its store.
func (e *env) open() (*tracker.App, func(), error) {
	cfg, err := e.config()
	if err != nil {
		return nil, nil, err
	}
	slots, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	closeFn := func() {
		if err := slots.Close(); err != nil {
			log.WithError(err).Warn("close storage")
		}
	}
	app := tracker.New(storage.NewWeightStore(slots))
	if err := app.Load(); err != nil {
		closeFn()
		return nil, nil, err
	}
	log.WithFields(log.Fields{
		"driver": cfg.Storage.Driver,
		"path":   cfg.Storage.Path,
	}).Debug("storage opened")
	return app, closeFn, nil
}

func printStatus(w io.Writer, status string) {
	if status == "" {
		return
	}
	fmt.Fprintln(w, statusStyle(status).Render(status))
}
