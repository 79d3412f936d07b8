package foldermgr

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/foldermgr/internal/version"
	"github.com/arthur-debert/foldermgr/pkg/config"
	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/logging"
	"github.com/arthur-debert/foldermgr/pkg/processor"
	"github.com/arthur-debert/foldermgr/pkg/sheets"
	"github.com/arthur-debert/foldermgr/pkg/size"
	"github.com/arthur-debert/foldermgr/pkg/worker"
)

// skipConfig marks commands that run without loading the configuration.
const skipConfig = "skip-config"

// app carries the state shared by the subcommands of one invocation.
type app struct {
	verbosity  int
	configFile string
	rulesPath  string
	cfg        *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()
	disableColorIfPiped()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "foldermgr",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				logging.SetupLogger(a.verbosity, "")
				log.Debug().Str("command", cmd.Name()).Msg("Command started")
				return nil
			}

			overrides := map[string]interface{}{}
			if a.rulesPath != "" {
				overrides["rules_path"] = a.rulesPath
			}
			cfg, err := config.Load(a.configFile, overrides)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logging.SetupLogger(a.verbosity, cfg.Log.File)
			log.Debug().
				Str("command", cmd.Name()).
				Str("config", cfg.Source).
				Str("rules", cfg.RulesPath).
				Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.rulesPath, "rules", "", MsgFlagRules)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newRunCmd())
	rootCmd.AddCommand(a.newScanCmd())
	rootCmd.AddCommand(a.newRulesCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newSizeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newWorker wires a worker and its processor from the loaded configuration.
func (a *app) newWorker(onResult func(processor.Result)) *worker.Worker {
	fs := filesystem.NewOS()
	reader := sheets.NewReader(fs)

	proc := processor.New(processor.Options{
		FS:         fs,
		RowReader:  reader,
		TempFolder: a.cfg.TempFolder,
	})

	return worker.New(worker.Options{
		Processor: proc,
		RowReader: reader,
		FS:        fs,
		Config: worker.Config{
			RulesPath:       a.cfg.RulesPath,
			ScanInterval:    a.cfg.ScanInterval,
			BackoffInterval: a.cfg.BackoffInterval,
			WatchRules:      a.cfg.WatchRules,
		},
		OnResult: onResult,
	})
}

func (a *app) newRunCmd() *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("watch") {
				a.cfg.WatchRules = watch
			}
			if cmd.Flags().Changed("interval") {
				if interval <= 0 {
					return errors.Newf(errors.ErrInvalidInput, "interval must be positive, got %s", interval)
				}
				a.cfg.ScanInterval = interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.newWorker(nil).Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, MsgFlagWatch)
	cmd.Flags().DurationVar(&interval, "interval", 0, MsgFlagInterval)

	return cmd
}

func (a *app) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: MsgScanShort,
		Long:  MsgScanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []processor.Result
			w := a.newWorker(func(r processor.Result) {
				results = append(results, r)
			})

			w.Start()
			if !w.RunPass(cmd.Context()) {
				return fmt.Errorf(MsgErrPassUnusable, a.cfg.RulesPath)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoFiles)
				return nil
			}
			table, err := renderTable(resultsTable(results))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(out, table)
			return nil
		},
	}
}

func (a *app) newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [path]",
		Short: MsgRulesShort,
		Long:  MsgRulesLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.RulesPath
			if len(args) == 1 {
				path = args[0]
			}

			fs := filesystem.NewOS()
			reader := sheets.NewReader(fs)
			proc := processor.New(processor.Options{FS: fs, RowReader: reader})
			if err := proc.LoadRules(path); err != nil {
				return err
			}

			dirs, err := reader.GetRows(path, sheets.MainSheet)
			if err != nil && !errors.IsErrorCode(err, errors.ErrSheetNotFound) {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, headerStyle.Render(MsgSourceDirsHeader))
			listed := 0
			for i, row := range dirs {
				if i == 0 || len(row) == 0 || strings.TrimSpace(row[0]) == "" {
					continue
				}
				status := MsgDirectoryExisting
				if info, err := fs.Stat(strings.TrimSpace(row[0])); err != nil || !info.IsDir() {
					status = MsgDirectoryMissing
				}
				_, _ = fmt.Fprintf(out, "  %s (%s)\n", strings.TrimSpace(row[0]), status)
				listed++
			}
			if listed == 0 {
				_, _ = fmt.Fprintln(out, MsgNoRules)
			}

			set := proc.Rules()

			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, headerStyle.Render(MsgMigrateHeader))
			if len(set.Migrate) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoRules)
			} else {
				table, err := renderTable(migrateTable(set.Migrate))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(out, table)
			}

			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, headerStyle.Render(MsgZipHeader))
			if len(set.Zip) == 0 {
				_, _ = fmt.Fprintln(out, MsgNoRules)
			} else {
				table, err := renderTable(zipTable(set.Zip))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(out, table)
			}
			return nil
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfg.Source != "" {
				_, _ = fmt.Fprintf(out, MsgConfigSource, a.cfg.Source)
			} else {
				_, _ = fmt.Fprint(out, MsgConfigSourceNone)
			}

			data, err := a.cfg.TOML()
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "size <expression> [bytes...]",
		Short:       MsgSizeShort,
		Long:        MsgSizeLong,
		Example:     MsgSizeExample,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := size.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgSizeSummary, args[0], p.Operator(), p.Threshold())
			for _, arg := range args[1:] {
				n, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || n < 0 {
					return fmt.Errorf(MsgErrBadByteCount, arg)
				}
				_, _ = fmt.Fprintf(out, MsgSizeResult, n, p.Compare(n))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.String())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "man",
		Short:       MsgManShort,
		Hidden:      true,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "FOLDERMGR",
				Section: "1",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
