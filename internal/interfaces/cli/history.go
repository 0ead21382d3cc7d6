package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/application/molgen"
	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

// HistoryOutput is the list printed by `molgen history`.
type HistoryOutput struct {
	Items []moltypes.GenerationRecord `json:"items"`
	Count int                         `json:"count"`
}

func (h *HistoryOutput) TableHeaders() []string {
	return []string{"ID", "SMILES", "GROUPS", "MOLWT", "LOGP", "HBD", "HBA", "CREATED"}
}

func (h *HistoryOutput) TableRows() [][]string {
	return lo.Map(h.Items, func(r moltypes.GenerationRecord, _ int) []string {
		return []string{
			r.ID,
			r.SMILES,
			r.FunctionalGroups,
			strconv.FormatFloat(r.Descriptors.MolWt, 'f', 2, 64),
			strconv.FormatFloat(r.Descriptors.LogP, 'f', 2, 64),
			strconv.Itoa(r.Descriptors.HBD),
			strconv.Itoa(r.Descriptors.HBA),
			r.CreatedAt.Local().Format(time.DateTime),
		}
	})
}

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		server string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			var items []moltypes.GenerationRecord
			if server != "" {
				c, err := newAPIClient(cliCtx, server)
				if err != nil {
					return err
				}
				if items, err = c.History(ctx, limit); err != nil {
					return err
				}
			} else {
				if items, err = localHistory(ctx, cliCtx, limit); err != nil {
					return err
				}
			}
			return PrintResult(cmd, &HistoryOutput{Items: items, Count: len(items)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of generations to show (max 100)")
	cmd.Flags().StringVar(&server, "server", "", "read history through the HTTP API at this base URL")
	return cmd
}

func localHistory(ctx context.Context, cliCtx *CLIContext, limit int) ([]moltypes.GenerationRecord, error) {
	app, err := Bootstrap(ctx, cliCtx.Config, cliCtx.Logger, BootstrapOptions{})
	if err != nil {
		return nil, err
	}
	defer app.Close()

	records, err := app.Service.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(r *molgen.GenerationRecord, _ int) moltypes.GenerationRecord {
		return moltypes.GenerationRecord{
			ID:               r.ID,
			BaseSMILES:       r.BaseSMILES,
			FunctionalGroups: r.FunctionalGroups,
			SMILES:           r.SMILES,
			Descriptors:      moltypes.Descriptors(r.Descriptors),
			ImageKey:         r.ImageKey,
			CreatedAt:        r.CreatedAt,
		}
	}), nil
}

//Personal.AI order the ending
