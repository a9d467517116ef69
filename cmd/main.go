package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luca-patrignani/poker-battler/config"
	"github.com/luca-patrignani/poker-battler/domain/combat"
	"github.com/luca-patrignani/poker-battler/domain/deck"
	"github.com/luca-patrignani/poker-battler/ledger"
)

const envPrefix = "BATTLER"

// options are the resolved flag and environment values.
type options struct {
	ConfigPath string
	Difficulty string
	Seed       int64
	LogLevel   string
	LedgerPath string
	SavePath   string
	ResumePath string
	Auto       bool
}

func readOptions(v *viper.Viper) options {
	return options{
		ConfigPath: v.GetString("config"),
		Difficulty: v.GetString("difficulty"),
		Seed:       v.GetInt64("seed"),
		LogLevel:   v.GetString("log-level"),
		LedgerPath: v.GetString("ledger"),
		SavePath:   v.GetString("save"),
		ResumePath: v.GetString("resume"),
		Auto:       v.GetBool("auto"),
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "battler",
		Short:         "Fight your way through eight levels with poker hands",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGame(readOptions(v))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML file overriding the difficulty preset")
	flags.String("difficulty", "normal", "balance preset: casual, normal or hard")
	flags.Int64("seed", 0, "random seed; 0 draws one from the system")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.Flags().String("ledger", "", "write the hash-chained event ledger to this file")
	rootCmd.Flags().String("save", "battler-save.json", "file written when saving a game")
	rootCmd.Flags().String("resume", "", "continue the game saved in this file")
	rootCmd.Flags().Bool("auto", false, "let the autopilot play the best hand every turn")

	rootCmd.AddCommand(newConfigCmd(v), newVerifyCmd())
	return rootCmd
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved balance configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(readOptions(v))
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <ledger>",
		Short: "Check the hash chain of a recorded game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := ledger.Open(args[0])
			if err != nil {
				return err
			}
			latest := bc.GetLatest()
			fmt.Fprintf(cmd.OutOrStdout(), "ledger ok: %d events, seed %d, last %s\n",
				bc.Len()-1, latest.Metadata.Seed, latest.Event.Kind)
			return nil
		},
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl pterm.LogLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = pterm.LogLevelDebug
	case "", "info":
		lvl = pterm.LogLevelInfo
	case "warn":
		lvl = pterm.LogLevelWarn
	case "error":
		lvl = pterm.LogLevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(lvl))), nil
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Preset(opts.Difficulty)
	if err != nil {
		return config.Config{}, err
	}
	if opts.ConfigPath == "" {
		return cfg, nil
	}
	return config.LoadOver(cfg, opts.ConfigPath)
}

func runGame(opts options) error {
	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = deck.CryptoSeed()
	}
	logger.Debug("starting game", slog.Int64("seed", seed), slog.String("difficulty", opts.Difficulty))

	var bc *ledger.Blockchain
	ctrlOpts := []combat.Option{combat.WithLogger(logger)}
	if opts.LedgerPath != "" {
		bc = ledger.NewBlockchain(seed)
		ctrlOpts = append(ctrlOpts, combat.WithRecorder(bc))
	}

	rng := deck.NewSeededRand(seed)
	var ctrl *combat.Controller
	if opts.ResumePath != "" {
		data, err := os.ReadFile(opts.ResumePath)
		if err != nil {
			return err
		}
		ctrl, err = combat.RestoreJSON(cfg, rng, data, ctrlOpts...)
		if err != nil {
			return err
		}
	} else {
		ctrl, err = combat.NewController(cfg, rng, ctrlOpts...)
		if err != nil {
			return err
		}
	}

	var strat strategy = interactive{}
	if opts.Auto {
		strat = autopilot{}
	} else {
		printBanner()
	}

	g := game{ctrl: ctrl, strat: strat, logger: logger, savePath: opts.SavePath}
	playErr := g.run()

	if bc != nil {
		if err := bc.Save(opts.LedgerPath); err != nil {
			logger.Error("failed to save ledger", slog.String("path", opts.LedgerPath), slog.Any("error", err))
		} else {
			pterm.Info.Printfln("Ledger written to %s", opts.LedgerPath)
		}
	}
	return playErr
}

func printBanner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("oker ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("B", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("attler", pterm.FgDarkGray.ToStyle()),
	).Render()
}
