package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Vitexus/pohoda"
	"github.com/Vitexus/pohoda/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	ico        string
	logLevel   string
	cfg        config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "pohoda",
		Short:        "Exchange agendas with Pohoda through dataPack XML",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "configuration file")
	flags.StringVar(&opts.ico, "ico", "", "organization code (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")

	cmd.AddCommand(newExportCmd(opts), newImportCmd(opts), newKindsCmd())
	return cmd
}

// load reads the configuration file. A missing file is fine when the
// organization code comes from the command line.
func (o *globalOptions) load() error {
	cfg, err := config.Load(o.configPath)
	switch {
	case err == nil:
		o.cfg = *cfg
	case errors.Is(err, fs.ErrNotExist) && o.ico != "":
		o.cfg = config.AppConfig{
			Application: config.DefaultApplication,
			Log:         config.LogConfig{Level: config.DefaultLogLevel, Format: config.DefaultLogFormat},
		}
	default:
		return err
	}

	if o.ico != "" {
		o.cfg.ICO = o.ico
	}
	if o.logLevel != "" {
		o.cfg.Log.Level = o.logLevel
	}
	if err := pohoda.InitLogging(o.cfg.Log.Level, o.cfg.Log.Format); err != nil {
		return err
	}
	logrus.WithField("ico", o.cfg.ICO).Debug("configuration loaded")
	return nil
}
