package cli

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molgen/pkg/errors"
)

// eventSource is the part of kafka.Consumer the events command drives.
type eventSource interface {
	Run(ctx context.Context, handle kafka.GeneratedHandler) error
	Close() error
}

var newEventSource = func(cliCtx *CLIContext, group string) (eventSource, error) {
	if !cliCtx.Config.Kafka.Enabled {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "kafka is not enabled")
	}
	return kafka.NewConsumer(cliCtx.Config.Kafka, group, cliCtx.Logger)
}

func newEventsCmd() *cobra.Command {
	var (
		group string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail molecule.generated events",
		Long:  "Join a consumer group on the generation topic and print one line per event until\ninterrupted or --max events have been seen.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			src, err := newEventSource(cliCtx, group)
			if err != nil {
				return err
			}
			defer src.Close()
			return tailEvents(cmd.Context(), src, cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().StringVar(&group, "group", "molgen-cli", "consumer group id")
	cmd.Flags().IntVar(&limit, "max", 0, "stop after this many events (0 runs until interrupted)")
	return cmd
}

// tailEvents prints events from src until ctx ends or limit events were seen.
func tailEvents(ctx context.Context, src eventSource, w io.Writer, limit int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var seen atomic.Int64
	return src.Run(ctx, func(_ context.Context, evt *molgen.GeneratedEvent) error {
		if limit > 0 && seen.Load() >= int64(limit) {
			return nil
		}
		writeLine(w, "%s  %s  %s  MolWt=%.2f LogP=%.2f HBD=%d HBA=%d",
			evt.OccurredAt.UTC().Format(time.RFC3339), evt.ID, evt.SMILES,
			evt.Descriptors.MolWt, evt.Descriptors.LogP, evt.Descriptors.HBD, evt.Descriptors.HBA)
		if n := seen.Add(1); limit > 0 && n >= int64(limit) {
			cancel()
		}
		return nil
	})
}

//Personal.AI order the ending
