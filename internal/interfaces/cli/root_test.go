package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/molgen/internal/testutil"
	"github.com/turtacn/molgen/pkg/errors"
	"github.com/turtacn/molgen/pkg/types/common"
	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

const baseConfig = `
log:
  level: error
render:
  output_dir: %s
`

// writeConfig writes a YAML config into a temp dir and returns its path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "molgen.yaml")
	content := fmt.Sprintf(baseConfig, dir) + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	if ctx == nil {
		ctx = context.Background()
	}
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "molgen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.True(t, cmd.SilenceUsage)

	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"generate", "tui", "serve", "history", "migrate", "events", "version"} {
		assert.True(t, subs[name], "missing subcommand %s", name)
	}

	for _, flag := range []string{"config", "log-level", "output", "verbose", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("output").DefValue)
	assert.Equal(t, "30s", cmd.PersistentFlags().Lookup("timeout").DefValue)
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	_, err := run(t, nil, "--config", writeConfig(t, ""), "-o", "yaml", "version")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := run(t, nil, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, nil, "--config", writeConfig(t, ""), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "molgen "+Version)
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := GetCLIContext(cmd)
	assert.Error(t, err)

	cmd.SetContext(context.Background())
	_, err = GetCLIContext(cmd)
	assert.Error(t, err)
}

func TestInitLogger_LevelPrecedence(t *testing.T) {
	cfg := config.NewDefaultConfig()
	for _, opts := range []*RootOptions{
		{},
		{LogLevel: "warn"},
		{LogLevel: "warn", Verbose: true},
	} {
		log, err := initLogger(cfg, opts)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"ID", "SMILES"}, [][]string{{"a", "OCCO"}, {"long-id", "C"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID       SMILES", lines[0])
	assert.Equal(t, "-------  ------", lines[1])
	assert.Equal(t, "a        OCCO", lines[2])
	assert.Equal(t, "long-id  C", lines[3])

	assert.Empty(t, FormatTable(nil, nil))
}

func TestGenerate_LocalText(t *testing.T) {
	cfgPath := writeConfig(t, "")
	pngPath := filepath.Join(t.TempDir(), "out", "mol.png")

	out, err := run(t, nil, "--config", cfgPath, "generate", "--base", "CCO", "--groups", "O:0", "--out", pngPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated Molecule:")
	assert.Contains(t, out, "Number of Hydrogen Donors: 2")

	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestGenerate_LocalJSON(t *testing.T) {
	out, err := run(t, nil, "--config", writeConfig(t, ""), "-o", "json",
		"generate", "--base", "CCO", "--groups", "O:0", "--logp", "1.0")
	require.NoError(t, err)

	var res GenerateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.Descriptors.HBD)
	assert.Equal(t, 2, res.Descriptors.HBA)
	assert.InDelta(t, 62.07, res.Descriptors.MolWt, 0.01)
	assert.NotEmpty(t, res.ID)
	assert.Empty(t, res.ImageFile)
}

func TestGenerate_LocalTable(t *testing.T) {
	out, err := run(t, nil, "--config", writeConfig(t, ""), "-o", "table", "generate", "--base", "C")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SMILES"))
	assert.Contains(t, out, "16.04")
}

func TestGenerate_Errors(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, nil, "--config", cfgPath, "generate", "--base", "C(")
	assert.True(t, errors.IsInputSyntax(err), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "generate", "--base", "CCO", "--groups", "O:x")
	assert.True(t, errors.IsInputSyntax(err), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "generate", "--base", "CCO", "--groups", "O:9")
	assert.True(t, errors.IsStructureValidation(err), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base")
}

func TestGenerate_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/molecules/generate", r.URL.Path)
		var req moltypes.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.BaseSMILES)
		assert.Equal(t, "O:0", req.FunctionalGroups)
		assert.Equal(t, "3", req.Desired.HBA)
		_ = json.NewEncoder(w).Encode(moltypes.GenerateResponse{
			ID:          "remote-1",
			SMILES:      "OCCO",
			Descriptors: moltypes.Descriptors{MolWt: 62.068, HBD: 2, HBA: 2},
			Report:      "Generated Molecule: OCCO",
			Image:       []byte("png-bytes"),
		})
	}))
	defer srv.Close()

	pngPath := filepath.Join(t.TempDir(), "remote.png")
	out, err := run(t, nil, "--config", writeConfig(t, ""), "generate",
		"--server", srv.URL, "--base", "CCO", "--groups", "O:0", "--hba", "3", "--out", pngPath)
	require.NoError(t, err)
	assert.Equal(t, "Generated Molecule: OCCO\n", out)

	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestGenerate_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(common.ErrorDetail{Code: "MOL_001", Message: "invalid base structure"})
	}))
	defer srv.Close()

	_, err := run(t, nil, "--config", writeConfig(t, ""), "generate", "--server", srv.URL, "--base", "C(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOL_001")
}

func TestHistory_DatabaseDisabled(t *testing.T) {
	_, err := run(t, nil, "--config", writeConfig(t, ""), "history")
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled), "got %v", err)
}

func TestHistory_Remote(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(common.NewListResponse([]moltypes.GenerationRecord{
			{ID: "g1", SMILES: "OCCO", FunctionalGroups: "O:0", Descriptors: moltypes.Descriptors{MolWt: 62.068, HBD: 2, HBA: 2}, CreatedAt: created},
		}))
	}))
	defer srv.Close()

	out, err := run(t, nil, "--config", writeConfig(t, ""), "-o", "table", "history", "--server", srv.URL, "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "ID  SMILES")
	assert.Contains(t, out, "g1  OCCO")
	assert.Contains(t, out, "62.07")

	out, err = run(t, nil, "--config", writeConfig(t, ""), "-o", "json", "history", "--server", srv.URL, "--limit", "5")
	require.NoError(t, err)
	var res HistoryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "g1", res.Items[0].ID)
}

func TestMigrate_Arguments(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, nil, "--config", cfgPath, "migrate", "down", "x")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "migrate", "down", "0")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "migrate", "down")
	assert.Error(t, err)

	_, err = run(t, nil, "--config", cfgPath, "migrate", "version")
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled), "got %v", err)

	_, err = run(t, nil, "--config", cfgPath, "migrate", "up")
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled), "got %v", err)
}

func TestMigrationStatus_String(t *testing.T) {
	assert.Equal(t, "version 1", MigrationStatus{Version: 1}.String())
	assert.Equal(t, "version 2 (dirty)", MigrationStatus{Version: 2, Dirty: true}.String())
}

func TestEvents_KafkaDisabled(t *testing.T) {
	_, err := run(t, nil, "--config", writeConfig(t, ""), "events")
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled), "got %v", err)
}

type fakeSource struct {
	events []*molgen.GeneratedEvent
	closed bool
}

func (f *fakeSource) Run(ctx context.Context, handle kafka.GeneratedHandler) error {
	for _, evt := range f.events {
		if ctx.Err() != nil {
			return nil
		}
		if err := handle(ctx, evt); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestEvents_StopsAfterMax(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	src := &fakeSource{}
	for i := 0; i < 5; i++ {
		src.events = append(src.events, &molgen.GeneratedEvent{
			ID:          fmt.Sprintf("e%d", i),
			SMILES:      "OCCO",
			Descriptors: molecule.Descriptors{MolWt: 62.068, LogP: -1.0303, HBD: 2, HBA: 2},
			OccurredAt:  at,
		})
	}

	orig := newEventSource
	newEventSource = func(*CLIContext, string) (eventSource, error) { return src, nil }
	defer func() { newEventSource = orig }()

	out, err := run(t, nil, "--config", writeConfig(t, ""), "events", "--max", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-03-04T05:06:07Z  e0  OCCO  MolWt=62.07 LogP=-1.03 HBD=2 HBA=2", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2026-03-04T05:06:07Z  e1"))
	assert.True(t, src.closed)
}

func TestEvents_UntilCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	src := &fakeSource{events: []*molgen.GeneratedEvent{{ID: "only", SMILES: "C"}}}
	require.NoError(t, tailEvents(ctx, src, &buf, 0))
	assert.Contains(t, buf.String(), "only")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := run(t, ctx, "--config", writeConfig(t, "server:\n  mode: test\n"),
		"serve", "--host", "127.0.0.1", "--port", "0")
	assert.NoError(t, err)
}

func TestServe_StrictFailsOnUnreachableComponent(t *testing.T) {
	cfgPath := writeConfig(t, "redis:\n  enabled: true\n  addr: 127.0.0.1:1\n  dial_timeout: 200ms\n")
	_, err := run(t, nil, "--config", cfgPath, "serve", "--host", "127.0.0.1", "--port", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBootstrap_DegradesWithoutStrict(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.DialTimeout = 200 * time.Millisecond
	log := testutil.NewMockLogger()

	app, err := Bootstrap(context.Background(), cfg, log, BootstrapOptions{})
	require.NoError(t, err)
	defer app.Close()
	assert.True(t, log.HasMessage("warn", "Component unavailable, continuing without it"))
	assert.Empty(t, app.HealthCheckers())

	res, err := app.Action().Run(context.Background(), molgen.FormInput{BaseSMILES: "CCO"})
	require.NoError(t, err)
	assert.False(t, res.Cached)
}

func TestBootstrap_MetricsEnabled(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Metrics.Enabled = true

	app, err := Bootstrap(context.Background(), cfg, nil, BootstrapOptions{})
	require.NoError(t, err)
	defer app.Close()
	require.NotNil(t, app.Metrics)
	require.NotNil(t, app.Collector)

	_, err = app.Service.Generate(context.Background(), &molgen.GenerateRequest{BaseSMILES: "C"})
	require.NoError(t, err)
	families, err := app.Collector.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "molgen_generations_total" {
			found = true
		}
	}
	assert.True(t, found)
}

//Personal.AI order the ending
