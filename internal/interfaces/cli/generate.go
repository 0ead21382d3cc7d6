package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

type generateOptions struct {
	base    string
	groups  string
	out     string
	server  string
	desired molgen.DesiredProperties
}

// GenerateOutput is what `molgen generate` prints in json and table mode.
type GenerateOutput struct {
	ID          string               `json:"id,omitempty"`
	SMILES      string               `json:"smiles"`
	Descriptors moltypes.Descriptors `json:"descriptors"`
	Report      string               `json:"report"`
	ImageFile   string               `json:"image_file,omitempty"`
	ImageKey    string               `json:"image_key,omitempty"`
	Cached      bool                 `json:"cached"`
}

func (o *GenerateOutput) String() string {
	return o.Report
}

func (o *GenerateOutput) TableHeaders() []string {
	return []string{"SMILES", "MOLWT", "LOGP", "HBD", "HBA"}
}

func (o *GenerateOutput) TableRows() [][]string {
	return [][]string{{
		o.SMILES,
		strconv.FormatFloat(o.Descriptors.MolWt, 'f', 2, 64),
		strconv.FormatFloat(o.Descriptors.LogP, 'f', 2, 64),
		strconv.Itoa(o.Descriptors.HBD),
		strconv.Itoa(o.Descriptors.HBA),
	}}
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a molecule and report its properties",
		Long: "Attach functional groups to a base SMILES, print MolWt, LogP, HBD and HBA\n" +
			"and optionally write the 2D depiction to a PNG file.",
		Example: `  molgen generate --base CCO --groups "O:0" --out ethanediol.png
  molgen generate --base c1ccccc1 --groups "N:0,O:3" -o json
  molgen generate --base CCO --server http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			var out *GenerateOutput
			if opts.server != "" {
				out, err = generateRemote(ctx, cliCtx, opts)
			} else {
				out, err = generateLocal(ctx, cliCtx, opts)
			}
			if err != nil {
				return err
			}
			return PrintResult(cmd, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.base, "base", "", "base structure as SMILES [REQUIRED]")
	f.StringVar(&opts.groups, "groups", "", `functional groups as "SMILES:index" pairs separated by commas`)
	f.StringVar(&opts.out, "out", "", "write the depiction PNG to this file")
	f.StringVar(&opts.server, "server", "", "generate through the HTTP API at this base URL")
	f.StringVar(&opts.desired.LogP, "logp", "", "desired LogP (recorded only)")
	f.StringVar(&opts.desired.Sigma, "sigma", "", "desired sigma (recorded only)")
	f.StringVar(&opts.desired.Pi, "pi", "", "desired pi (recorded only)")
	f.StringVar(&opts.desired.HBA, "hba", "", "desired HBA (recorded only)")
	f.StringVar(&opts.desired.HBD, "hbd", "", "desired HBD (recorded only)")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

// pngFile is an image region backed by a file; an empty path discards.
type pngFile struct {
	path string
	err  error
}

func (p *pngFile) SetImage(png []byte) {
	if p.path == "" {
		return
	}
	p.err = writePNG(p.path, png)
}

func writePNG(path string, png []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to create output directory").WithDetail(dir)
		}
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write image").WithDetail(path)
	}
	return nil
}

func generateLocal(ctx context.Context, cliCtx *CLIContext, opts *generateOptions) (*GenerateOutput, error) {
	image := &pngFile{path: opts.out}
	app, err := Bootstrap(ctx, cliCtx.Config, cliCtx.Logger, BootstrapOptions{Image: image})
	if err != nil {
		return nil, err
	}
	defer app.Close()

	res, err := app.Action().Run(ctx, molgen.FormInput{
		BaseSMILES:       opts.base,
		FunctionalGroups: opts.groups,
		Desired:          opts.desired,
	})
	if err != nil {
		return nil, err
	}
	if image.err != nil {
		return nil, image.err
	}
	cliCtx.Logger.Debug("Generated molecule", logging.String("smiles", res.SMILES), logging.Bool("cached", res.Cached))

	return &GenerateOutput{
		ID:          res.ID,
		SMILES:      res.SMILES,
		Descriptors: moltypes.Descriptors(res.Descriptors),
		Report:      res.Report,
		ImageFile:   opts.out,
		ImageKey:    res.ImageKey,
		Cached:      res.Cached,
	}, nil
}

func generateRemote(ctx context.Context, cliCtx *CLIContext, opts *generateOptions) (*GenerateOutput, error) {
	c, err := newAPIClient(cliCtx, opts.server)
	if err != nil {
		return nil, err
	}
	resp, err := c.Generate(ctx, &moltypes.GenerateRequest{
		BaseSMILES:       opts.base,
		FunctionalGroups: opts.groups,
		Desired: moltypes.DesiredProperties{
			LogP:  opts.desired.LogP,
			Sigma: opts.desired.Sigma,
			Pi:    opts.desired.Pi,
			HBA:   opts.desired.HBA,
			HBD:   opts.desired.HBD,
		},
	})
	if err != nil {
		return nil, err
	}
	if opts.out != "" {
		if err := writePNG(opts.out, resp.Image); err != nil {
			return nil, err
		}
	}
	return &GenerateOutput{
		ID:          resp.ID,
		SMILES:      resp.SMILES,
		Descriptors: resp.Descriptors,
		Report:      resp.Report,
		ImageFile:   opts.out,
		ImageKey:    resp.ImageKey,
		Cached:      resp.Cached,
	}, nil
}

// writeLine prints one line, ignoring write errors on the terminal.
func writeLine(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

//Personal.AI order the ending
