// Package cli wires the command line interface around the TUI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/interpretive-systems/triptych/internal/config"
	"github.com/interpretive-systems/triptych/internal/log"
	"github.com/interpretive-systems/triptych/internal/tui"
)

var cfgFile string

// Execute runs the root command.
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "triptych [path]",
		Short: "Three-column git file history navigator",
		Long: "Triptych: browse files, walk a file's revision history, and compare\n" +
			"any two points of it, three columns in one terminal window.\n\n" +
			"With a directory argument the Files column opens there. With a file\n" +
			"argument its history opens immediately.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			return run(start)
		},
	}

	cobra.OnInitialize(initConfig)
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/triptych/config.yaml)")

	def := config.Defaults()
	flags := root.Flags()
	flags.Int("history-limit", def.HistoryLimit, "maximum revisions listed per file")
	flags.Bool("follow-renames", def.FollowRenames, "follow a file's history across renames")
	flags.String("log-file", def.Log.File, "debug log file (empty disables logging)")
	flags.String("log-level", def.Log.Level, "log level: debug, info, warn, error")
	_ = viper.BindPFlag("history_limit", flags.Lookup("history-limit"))
	_ = viper.BindPFlag("follow_renames", flags.Lookup("follow-renames"))
	_ = viper.BindPFlag("log.file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))

	root.AddCommand(newInitConfigCmd())
	return root
}

// initConfig points viper at the config file and seeds the defaults. A
// missing file is fine, the defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if path := config.DefaultConfigPath(); path != "" {
		viper.AddConfigPath(filepath.Dir(path))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	def := config.Defaults()
	viper.SetDefault("theme", def.Theme)
	viper.SetDefault("history_limit", def.HistoryLimit)
	viper.SetDefault("diff_context", def.DiffContext)
	viper.SetDefault("follow_renames", def.FollowRenames)
	viper.SetDefault("refresh_debounce_ms", def.DebounceMS)
	viper.SetDefault("log.file", def.Log.File)
	viper.SetDefault("log.level", def.Log.Level)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(2)
		}
	}
}

func run(start string) error {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Log.File != "" {
		if err := log.Init(cfg.Log.File, log.ParseLevel(cfg.Log.Level)); err != nil {
			return fmt.Errorf("init log: %w", err)
		}
		defer log.Close()
	}

	applyTheme(cfg.Theme)

	abs, err := filepath.Abs(start)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	opts := tui.Options{Cfg: cfg, StartDir: abs}
	fi, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", start, err)
	}
	if !fi.IsDir() {
		opts.StartDir = filepath.Dir(abs)
		opts.StartFile = filepath.Base(abs)
	}

	return tui.Run(opts)
}

// applyTheme pins the adaptive palette when the config forces a theme.
func applyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	default:
		// Query the terminal once before the renderer takes over.
		_ = lipgloss.HasDarkBackground()
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if path == "" {
				return errors.New("cannot determine config path")
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
}
