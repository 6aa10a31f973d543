package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/output"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[?25l"
	leaveAltScreen = "\x1b[?25h\x1b[?1049l"
	clearScreen    = "\x1b[H\x1b[2J"

	defaultWidth  = 120
	defaultHeight = 40
)

// ErrNotTerminal is returned by Run when stdin is not a terminal.
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// Session runs the form and schedule viewer against a terminal.
type Session struct {
	logger    *zap.Logger
	in        *os.File
	out       io.Writer
	exportDir string
	startDate string
	state     State
	size      func() (int, int)
}

// NewSession creates a session reading keys from in and drawing to out. The
// form starts from m; exports are written to exportDir.
func NewSession(logger *zap.Logger, in *os.File, out io.Writer, exportDir string, m config.MortgageConfig) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		logger:    logger,
		in:        in,
		out:       out,
		exportDir: exportDir,
		startDate: m.StartDate,
		state:     NewState(m),
	}
	s.size = func() (int, int) {
		if s.in != nil {
			if w, h, err := term.GetSize(int(s.in.Fd())); err == nil {
				return w, h
			}
		}
		return defaultWidth, defaultHeight
	}
	return s
}

// State returns the current screen state.
func (s *Session) State() State {
	return s.state
}

// Run puts the terminal in raw mode and processes key presses until the user
// quits or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(s.out, leaveAltScreen)
		if err := term.Restore(fd, oldState); err != nil {
			s.logger.Warn("failed to restore terminal",
				zap.String("op", "interactive.Run"),
				zap.Error(err),
			)
		}
	}()
	_, _ = io.WriteString(s.out, enterAltScreen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return s.Drive(ctx, readKeys(ctx, s.in))
}

// readKeys decodes key presses from r until it fails or ctx is done. The
// blocking read is abandoned, not interrupted, on cancellation.
func readKeys(ctx context.Context, r io.Reader) <-chan Key {
	keys := make(chan Key)
	go func() {
		defer close(keys)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, k := range DecodeKeys(buf[:n]) {
				select {
				case keys <- k:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return keys
}

// Drive redraws the screen and applies keys until a quit command, a closed
// channel or a cancelled context.
func (s *Session) Drive(ctx context.Context, keys <-chan Key) error {
	s.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			next, cmd := Update(s.state, k)
			s.state = next
			if cmd == CommandQuit {
				return nil
			}
			s.execute(cmd)
			s.draw()
		}
	}
}

func (s *Session) execute(cmd Command) {
	switch cmd {
	case CommandCalculate, CommandShowSchedule:
		result, err := s.calculate()
		s.state = Calculated(s.state, result, err, cmd == CommandShowSchedule)
	case CommandExportSpreadsheet:
		if s.state.Forecast == nil {
			return
		}
		path, err := output.ExportSpreadsheet(s.exportDir, s.state.Forecast.Records)
		s.logExport(path, err)
		s.state = Exported(s.state, path, err)
	case CommandExportAnalysis:
		if s.state.Forecast == nil {
			return
		}
		path, err := output.ExportAnalysis(s.exportDir, s.state.Forecast.Params, s.state.Forecast.Summary)
		s.logExport(path, err)
		s.state = Exported(s.state, path, err)
	}
}

func (s *Session) calculate() (*forecast.Forecast, error) {
	params, err := s.state.Parameters()
	if err != nil {
		return nil, err
	}
	result, err := forecast.GetForecast(s.logger, params)
	if err != nil {
		return nil, err
	}
	if s.startDate != "" {
		_ = result.SetStartDate(s.startDate)
	}
	return result, nil
}

func (s *Session) logExport(path string, err error) {
	if err != nil {
		s.logger.Error("export failed",
			zap.String("op", "interactive.execute"),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("exported "+path,
		zap.String("op", "interactive.execute"),
		zap.String("run_id", s.state.Forecast.RunID),
	)
}

func (s *Session) draw() {
	width, height := s.size()
	_, _ = io.WriteString(s.out, clearScreen+Render(s.state, width, height))
}
