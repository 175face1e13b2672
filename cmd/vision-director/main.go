package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/vision-director/internal/config"
	"github.com/ironsheep/vision-director/internal/imaging"
	"github.com/ironsheep/vision-director/internal/logging"
	"github.com/ironsheep/vision-director/internal/server"
	"github.com/ironsheep/vision-director/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// cli holds the flags and the logger shared by all commands.
type cli struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "vision-director",
		Short: "Turn camera frames into robot directives",
		Long: `vision-director detects regions in camera frames, selects the target
amount of them, computes a directive (a steering offset, a count, a token)
and passes it through a chain of monitors such as PID control and stop
conditions.

Pipelines are described in TOML or YAML. Logs go to stderr; set
VISION_DIRECTOR_LOG_LEVEL=debug or pass --verbose for per-frame detail.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(c.verbose)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Pipeline configuration (.toml, .yaml or .yml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Runs the MCP server. Clients create pipelines with pipeline_create and
feed frames with pipeline_direct. With --config the configured pipeline is
created at startup and its ID is logged.`,
		Args: cobra.NoArgs,
		RunE: c.runServe,
	}

	directCmd := &cobra.Command{
		Use:   "direct FRAME...",
		Short: "Run frames through a pipeline and print one JSON outcome per frame",
		Long: `Loads the pipeline from --config (or the built-in default) and processes
the frames in order, so stateful monitors see them as a sequence.

Example:
  vision-director direct --config cone.toml frame-001.png frame-002.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runDirect,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vision-director %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}

	root.AddCommand(serveCmd, directCmd, versionCmd)
	return root
}

func (c *cli) loadConfig() (*config.File, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	c.logger.Info("starting MCP server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", GitCommit),
	)

	srv := server.New(c.logger, Version)
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		info, err := srv.AddPipeline(cfg, c.configPath)
		if err != nil {
			return err
		}
		c.logger.Info("preloaded pipeline", zap.String("pipeline_id", info.ID), zap.String("name", info.Name))
	}
	return srv.Run()
}

func (c *cli) runDirect(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	proc, err := vision.Build(cfg, c.logger)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	for _, path := range args {
		img, err := imaging.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out, err := proc.Process(img)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := encoder.Encode(struct {
			Frame string `json:"frame"`
			vision.Outcome
		}{path, out}); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
