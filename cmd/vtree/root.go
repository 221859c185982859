package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/document"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// app is the state shared by every command, built before it runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

type globalFlags struct {
	configPath string
	logLevel   string
	jsonLogs   bool
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render and diff virtual tree documents",
		Long: `vtree reconciles declarative virtual trees against a host tree.

Tree documents are JSON or YAML files (or s3://bucket/key objects)
describing elements, text and components. vtree renders them to HTML,
prints the host mutations between two versions, re-renders on every
file change, and serves a live playground over HTTP and WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to vtree.json (default: search from the working directory)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from vtree.json)")
	rootCmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(a),
		diffCmd(a),
		watchCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, flags globalFlags) error {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.jsonLogs {
		cfg.Log.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(a.logger)
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// tracerProvider is the global provider when tracing is enabled and a
// no-op provider otherwise.
func (a *app) tracerProvider() trace.TracerProvider {
	if a.cfg.Tracing.Enabled {
		return otel.GetTracerProvider()
	}
	return noop.NewTracerProvider()
}

func (a *app) newReconciler(tree *memtree.Tree) *reconcile.Reconciler {
	return reconcile.New(tree,
		reconcile.WithLogger(a.logger),
		reconcile.WithTracer(a.tracerProvider().Tracer(a.cfg.Tracing.TracerName)),
	)
}

func (a *app) newLoader() *document.Loader {
	s3 := document.NewS3Source(document.S3Options{
		Region:    a.cfg.S3.Region,
		Endpoint:  a.cfg.S3.Endpoint,
		PathStyle: a.cfg.S3.PathStyle,
	}, a.cfg.Server.MaxDocumentBytes)
	return document.NewLoader(nil, a.cfg.Server.MaxDocumentBytes, s3)
}

// requireLocal rejects references watch cannot observe.
func requireLocal(ref string) error {
	if document.Scheme(ref) != "file" {
		return errors.New("E031").
			WithDetailf("%s is not a local file", ref).
			WithSuggestion("Only local documents can be watched")
	}
	return nil
}
