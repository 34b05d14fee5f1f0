package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drdhaval2785/prakriya/internal/config"
	"github.com/drdhaval2785/prakriya/internal/testhelper"
	"github.com/drdhaval2785/prakriya/pkg/dataset"
	"github.com/drdhaval2785/prakriya/pkg/formdb"
	"github.com/drdhaval2785/prakriya/pkg/prakriya"
	"github.com/drdhaval2785/prakriya/pkg/translit"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{errors.New("boom"), ExitFailure},
		{&translit.InvalidScriptError{Name: "x"}, ExitScript},
		{fmt.Errorf("wrapped: %w", prakriya.ErrUnknownForm), ExitUnknownForm},
		{&prakriya.QueryError{Kind: prakriya.ErrUnknownField}, ExitUnknownFld},
		{prakriya.ErrUnknownVerb, ExitUnknownVerb},
		{prakriya.ErrInvalidTense, ExitTense},
		{prakriya.ErrInvalidPerson, ExitPerson},
		{prakriya.ErrInvalidVachana, ExitVachana},
		{prakriya.ErrInvalidSuffix, ExitSuffix},
		{prakriya.ErrNoData, ExitNoData},
		{&dataset.UnavailableError{Artifact: "x", Err: io.ErrUnexpectedEOF}, ExitUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Data:     config.DataConfig{Dir: testhelper.DatasetDir(t), PreloadWorkers: 2},
		Translit: config.TranslitConfig{Input: "slp1", Output: "iast"},
		Forms:    config.FormsConfig{Backend: config.BackendJSON},
	}
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_JSONBackend(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, testConfig(t), quiet())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, translit.IAST, s.Prakriya.OutputScheme())
	got, err := s.Prakriya.LookupField(ctx, "Bavati", "verb")
	require.NoError(t, err)
	assert.Equal(t, []string{"bhū"}, got)
}

func TestOpen_SQLiteBackend(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Forms = config.FormsConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "forms.db")}

	s, err := Open(ctx, cfg, quiet())
	require.NoError(t, err)
	defer s.Close()

	// empty database until forms are imported
	_, err = s.Prakriya.Generate(ctx, prakriya.GenerateQuery{Root: "BU", Suffix: "tip"})
	require.ErrorIs(t, err, prakriya.ErrUnknownVerb)

	fdb, err := formdb.Open(ctx, cfg.Forms.SQLitePath)
	require.NoError(t, err)
	_, err = formdb.Import(ctx, fdb.DB(), s.Store, formdb.ImportOptions{})
	require.NoError(t, err)
	require.NoError(t, fdb.Close())

	got, err := s.Prakriya.Generate(ctx, prakriya.GenerateQuery{Root: "BU", Lakara: "liw", Suffix: "tip"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"01.0001": {"babhūva"}}, got)
}

func TestOpen_BadScheme(t *testing.T) {
	cfg := testConfig(t)
	cfg.Translit.Input = "klingon"
	_, err := Open(context.Background(), cfg, quiet())
	assert.ErrorIs(t, err, prakriya.ErrInvalidScript)
}
