package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/gesture"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
}

func buildRootCmd(logger *zerolog.Logger) *cobra.Command {
	opts := &options{logLevel: "info"}
	root := &cobra.Command{
		Use:           "gesturectl",
		Short:         "Inspect and validate gesture recognizer configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Recognizer config file (.yaml, .yml, .toml or .json); empty uses the default preset")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug|info|warn|error")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := zerolog.ParseLevel(strings.ToLower(opts.logLevel))
		if err != nil {
			return fmt.Errorf("log level %q: %w", opts.logLevel, err)
		}
		*logger = logger.Level(lvl)
		return nil
	}

	validateCmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check directions and recognizer relationships",
		Example: "  gesturectl validate --config gestures.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			for _, rc := range cfg.Recognizers {
				if !gesture.KnownKind(rc.Kind) {
					logger.Warn().Str("event", rc.EventName()).Str("kind", string(rc.Kind)).Msg("unknown kind emits no events")
				}
			}
			logger.Info().Str("config", source(opts.configPath)).Int("recognizers", len(recognizers(cfg))).Msg("config ok")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "List the event names each recognizer can emit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), eventTree(recognizers(cfg)))
			return nil
		},
	}

	subsCmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Show the event names a Manager subscribes to for the config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			cfg.Logger = logger
			hub := gesture.NewHub(nil)
			defer hub.Destroy()
			mgr, err := gesture.New(hub, nil, cfg)
			if err != nil {
				return err
			}
			defer mgr.Destroy()
			mgr.Flush()
			for _, name := range mgr.RegisteredEventNames() {
				fmt.Fprintln(cmd.OutOrStdout(), gesture.Namespace(name))
			}
			return nil
		},
	}

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "List base gesture kinds and their event suffixes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := treeprint.New()
			tree.SetValue("kinds")
			for _, k := range gesture.Kinds() {
				branch := tree.AddBranch(string(k))
				for _, s := range gesture.Suffixes(k) {
					if s == "" {
						s = "(bare)"
					}
					branch.AddNode(s)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.String())
			return nil
		},
	}

	var frameMS, maxFrames int
	replayCmd := &cobra.Command{
		Use:     "replay SCRIPT",
		Short:   "Replay an input script and print the recognized events",
		Example: "  gesturectl replay taps.yaml --config gestures.toml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			runner, err := gesture.LoadScript(data, filepath.Ext(args[0]))
			if err != nil {
				return err
			}
			n, err := replay(cmd, runner, cfg, time.Duration(frameMS)*time.Millisecond, maxFrames)
			if err != nil {
				return err
			}
			logger.Info().Int("frames", n).Bool("complete", runner.Done()).Msg("replay finished")
			return nil
		},
	}
	replayCmd.Flags().IntVar(&frameMS, "frame-ms", 16, "Simulated frame duration in milliseconds")
	replayCmd.Flags().IntVar(&maxFrames, "max-frames", 10000, "Stop after this many frames")

	root.AddCommand(validateCmd, eventsCmd, subsCmd, kindsCmd, replayCmd)
	return root
}

// loadConfig reads path (or starts from the default preset when empty) and
// applies GESTURE_* environment overrides.
func loadConfig(path string) (gesture.Config, error) {
	var cfg gesture.Config
	if path != "" {
		var err error
		if cfg, err = gesture.LoadConfig(path); err != nil {
			return gesture.Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return gesture.Config{}, err
	}
	return cfg, nil
}

func recognizers(cfg gesture.Config) []gesture.RecognizerConfig {
	if len(cfg.Recognizers) == 0 {
		return gesture.DefaultPreset()
	}
	return cfg.Recognizers
}

func source(path string) string {
	if path == "" {
		return "default preset"
	}
	return path
}

// eventTree renders one branch per recognizer, annotated with its state and
// relationships, listing every concrete event name it can emit.
func eventTree(specs []gesture.RecognizerConfig) string {
	tree := treeprint.New()
	tree.SetValue("recognizers")
	for _, rc := range specs {
		label := fmt.Sprintf("%s (%s)", rc.EventName(), rc.Kind)
		if rc.Disabled {
			label += " disabled"
		}
		if len(rc.RecognizeWith) > 0 {
			label += " with=" + strings.Join(rc.RecognizeWith, ",")
		}
		if len(rc.RequireFailure) > 0 {
			label += " after=" + strings.Join(rc.RequireFailure, ",")
		}
		branch := tree.AddBranch(label)
		names := gesture.EventNames(rc.Kind, rc.EventName())
		if len(names) == 0 {
			branch.AddNode("(none)")
			continue
		}
		for _, name := range names {
			branch.AddNode(name)
		}
	}
	return tree.String()
}

// replay runs the script against a Hub with cfg's recognizers on a simulated
// clock and prints one line per recognized event: frame, elapsed time and
// event name.
func replay(cmd *cobra.Command, runner *gesture.ScriptRunner, cfg gesture.Config, frame time.Duration, maxFrames int) (int, error) {
	if frame <= 0 {
		return 0, fmt.Errorf("frame duration must be positive")
	}
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := gesture.NewFrameClock(start)
	hub := gesture.NewHub(clock)
	defer hub.Destroy()
	cfg.Clock = clock
	mgr, err := gesture.New(hub, nil, cfg)
	if err != nil {
		return 0, err
	}
	defer mgr.Destroy()
	mgr.Flush()

	out := cmd.OutOrStdout()
	current := 0
	for _, name := range mgr.RegisteredEventNames() {
		hub.On(name, func(ev gesture.Event) {
			fmt.Fprintf(out, "%4d %6dms %s\n", current, clock.Now().Sub(start).Milliseconds(), ev.Type)
		})
	}
	n := runner.Run(gesture.NewPointerFeed(hub, clock), clock, frame, func(i int) { current = i + 1 }, maxFrames)
	return n, nil
}
