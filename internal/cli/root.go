// Package cli implements the observerdemo command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"observerkit/internal/config"
	"observerkit/internal/logging"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
}

// NewRootCmd builds the command tree. Transcripts go to the command's
// output writer, logs to its error writer.
func NewRootCmd() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "observerdemo",
		Short:         "Typed observer demonstrations and HTTP playground",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to ./"+config.DefaultFile+" when present")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults OBSERVERKIT_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.LoadOptional(st.configPath, wd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = st.logLevel
		} else if cfg.LogLevel == "" {
			cfg.LogLevel = os.Getenv(logging.EnvLevel)
		}
		st.cfg = cfg.WithDefaults()
		st.log = logging.New(cmd.ErrOrStderr(), st.cfg.LogLevel, st.cfg.LogFormat)
		st.log.Debug().Str("config", st.configPath).Str("addr", st.cfg.Addr).Msg("configuration loaded")
		return nil
	}

	root.AddCommand(newRunCmd(st), newListCmd(), newServeCmd(st))
	return root
}

// Main runs the command tree with args and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
