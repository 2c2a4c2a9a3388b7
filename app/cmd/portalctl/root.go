package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/db"
	"backend/insurance-platform/app/pkg/logging"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"

	dateLayout = time.DateOnly
)

type rootOptions struct {
	output string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operate the insurance portal backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text, json or yaml")

	cmd.AddCommand(
		newTimelineCommand(opts),
		newEstimateCommand(opts),
		newMigrateCommand(),
		newSeedCommand(),
		newPublishCommand(),
	)
	return cmd
}

// render writes v as json or yaml, or calls text for the plain format.
func (o *rootOptions) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch o.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case outputText, "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

// environment loads logging and configuration for commands that touch the
// database or AWS.
type environment struct {
	cfg    config.ApplicationConfig
	logger *zap.Logger
}

func loadEnvironment() (*environment, error) {
	mode := ctxutil.GetAppModeFromEnv()
	logger, err := logging.NewLogConfig("[portalctl]", mode).NewLogging()
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadApplicationConfig(mode, logger)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, logger: logger}, nil
}

func (e *environment) openDB() (*db.DB, error) {
	return db.NewDB(e.cfg, e.logger)
}

func (e *environment) close() {
	_ = e.logger.Sync()
}
