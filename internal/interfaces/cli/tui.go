package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/internal/interfaces/tui"
)

func newTUICmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive generation window",
		Long: "Open the terminal window with the generation form. The latest depiction is\n" +
			"also saved to render.output_dir. Logs go to --log-file since the terminal is in use.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config

			level := cfg.Log.Level
			if cliCtx.Verbose {
				level = "debug"
			}
			log, err := logging.NewLogger(logging.LogConfig{
				Level:            level,
				Format:           "json",
				OutputPaths:      []string{logFile},
				ErrorOutputPaths: []string{logFile},
			})
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			display := tui.NewDisplay(cfg.Render.OutputDir, log)
			app, err := Bootstrap(cmd.Context(), cfg, log, BootstrapOptions{Text: display, Image: display})
			if err != nil {
				return err
			}
			defer app.Close()

			log.Info("Window opened", logging.String("output_dir", cfg.Render.OutputDir))
			return tui.Run(cmd.Context(), app.Action(), display, log)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "molgen-tui.log", "file receiving the window's logs")
	return cmd
}

//Personal.AI order the ending
