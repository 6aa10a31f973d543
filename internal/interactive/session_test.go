package interactive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func feed(keys ...Key) <-chan Key {
	ch := make(chan Key, len(keys))
	for _, k := range keys {
		ch <- k
	}
	close(ch)
	return ch
}

func runesOf(text string) []Key {
	keys := make([]Key, 0, len(text))
	for _, r := range text {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

func TestSessionDriveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	session := NewSession(zap.NewNop(), nil, &out, dir, config.MortgageConfig{StartDate: "2025-01"})

	keys := runesOf("300000")
	for i := 0; i < FieldCount; i++ {
		keys = append(keys, Key{Type: KeyEnter})
	}
	keys = append(keys, RuneKey('e'), RuneKey('s'), RuneKey('e'), RuneKey('q'))

	err := session.Drive(context.Background(), feed(keys...))
	require.NoError(t, err)

	state := session.State()
	assert.Equal(t, ModeSummary, state.Mode)
	require.NotNil(t, state.Forecast)
	assert.Equal(t, 300000.0, state.Forecast.Params.HouseValue)
	assert.Equal(t, "2025-01", state.Forecast.StartDate)
	assert.Contains(t, state.Status, constants.AnalysisFileName)

	for _, name := range []string{constants.SpreadsheetFileName, constants.AnalysisFileName} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}

	assert.Contains(t, out.String(), "Mortgage Spreadsheet")
	assert.Contains(t, out.String(), "Mortgage Summary")
}

func TestSessionDriveShowsCalculationErrors(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(nil, nil, &out, t.TempDir(), config.MortgageConfig{})

	keys := runesOf("300000")
	keys = append(keys, Key{Type: KeyEnter}, Key{Type: KeyBackspace}, Key{Type: KeyBackspace})
	keys = append(keys, runesOf("100")...)
	keys = append(keys, Key{Type: KeyEnter})

	require.NoError(t, session.Drive(context.Background(), feed(keys...)))

	state := session.State()
	assert.Equal(t, ModeForm, state.Mode)
	assert.Contains(t, state.Err, "downPayment")
	require.NotNil(t, state.Forecast, "the forecast from the previous field is kept")
	assert.Equal(t, 240000.0, state.Forecast.Params.LoanAmount())
}

func TestSessionDriveExportWithoutForecast(t *testing.T) {
	dir := t.TempDir()
	session := NewSession(nil, nil, &bytes.Buffer{}, dir, config.MortgageConfig{})
	session.state.Mode = ModeSpreadsheet

	require.NoError(t, session.Drive(context.Background(), feed(RuneKey('e'))))

	_, err := os.Stat(filepath.Join(dir, constants.SpreadsheetFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestSessionDriveCancelled(t *testing.T) {
	session := NewSession(nil, nil, &bytes.Buffer{}, t.TempDir(), config.MortgageConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.Drive(ctx, make(chan Key))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionRunRequiresTerminal(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer file.Close()

	session := NewSession(nil, file, &bytes.Buffer{}, t.TempDir(), config.MortgageConfig{})
	assert.ErrorIs(t, session.Run(context.Background()), ErrNotTerminal)
}
