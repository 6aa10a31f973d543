package interactive

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-forecast/internal/config"
	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/iwvelando/mortgage-forecast/pkg/mortgage"
)

// Mode is the screen currently shown.
type Mode int

// Screens of the session.
const (
	ModeForm Mode = iota
	ModeSpreadsheet
	ModeSummary
)

// Command is a side effect requested by Update for the session to carry out.
type Command int

// Commands returned by Update.
const (
	CommandNone Command = iota
	// CommandCalculate recomputes the forecast from the form.
	CommandCalculate
	// CommandShowSchedule recomputes and opens the spreadsheet on success.
	CommandShowSchedule
	CommandExportSpreadsheet
	CommandExportAnalysis
	CommandQuit
)

// PageSize is how many rows Ctrl-D and Ctrl-U move the selection.
const PageSize = 10

// State is everything the screen shows. It is passed and returned by value.
type State struct {
	Mode     Mode
	Field    FieldID
	Form     Form
	Forecast *forecast.Forecast // latest successful run, never modified
	Selected int                // spreadsheet row
	Status   string
	Err      string

	costOfCapital *float64
}

// NewState starts a session on the first form field, seeded from m.
func NewState(m config.MortgageConfig) State {
	return State{
		Mode:          ModeForm,
		Field:         FieldHouseValue,
		Form:          NewForm(m),
		costOfCapital: m.CostOfCapitalRate,
	}
}

// Parameters parses the form into engine parameters.
func (s State) Parameters() (mortgage.InputParameters, error) {
	return s.Form.Parameters(s.costOfCapital)
}

// Update applies one key press and returns the new state and the command the
// session must run.
func Update(s State, k Key) (State, Command) {
	if k.Type == KeyCtrlC {
		return s, CommandQuit
	}

	switch s.Mode {
	case ModeSpreadsheet:
		return updateSpreadsheet(s, k)
	case ModeSummary:
		return updateSummary(s, k)
	default:
		return updateForm(s, k)
	}
}

func updateForm(s State, k Key) (State, Command) {
	field := s.Form.Fields[s.Field]

	switch {
	case k.Type == KeyTab:
		if field.Toggle {
			field.UsePercent = !field.UsePercent
		}
	case k.Type == KeyBackspace:
		if text := field.Text(); text != "" {
			field.setText(text[:len(text)-1])
		}
	case k.Type == KeyEnter || k.Type == KeyRight || (k.Type == KeyRune && k.Rune == 'l'):
		if field.Text() == "" {
			s.Err = field.Label + " is required"
			return s, CommandNone
		}
		s.Err = ""
		if s.Field == fieldCount-1 {
			return s, CommandShowSchedule
		}
		s.Field++
		return s, CommandCalculate
	case k.Type == KeyEscape || k.Type == KeyLeft || (k.Type == KeyRune && k.Rune == 'h'):
		if s.Field == FieldHouseValue {
			if k.Type == KeyEscape {
				return s, CommandQuit
			}
			return s, CommandNone
		}
		s.Field--
		s.Err = ""
		return s, CommandNone
	case k.Type == KeyRune && k.Rune == 'q':
		if s.Field == FieldHouseValue {
			return s, CommandQuit
		}
	case k.Type == KeyRune:
		if field.Accepts(k.Rune) {
			field.setText(field.Text() + string(k.Rune))
		}
	}

	s.Form.Fields[s.Field] = field
	return s, CommandNone
}

func updateSpreadsheet(s State, k Key) (State, Command) {
	rows := 0
	if s.Forecast != nil {
		rows = len(s.Forecast.Records)
	}

	switch k.Type {
	case KeyDown:
		s.Selected++
	case KeyUp:
		s.Selected--
	case KeyCtrlD, KeyPageDown:
		s.Selected += PageSize
	case KeyCtrlU, KeyPageUp:
		s.Selected -= PageSize
	case KeyEscape, KeyLeft:
		return backToForm(s), CommandNone
	case KeyRune:
		switch k.Rune {
		case 'j':
			s.Selected++
		case 'k':
			s.Selected--
		case 'g':
			s.Selected = 0
		case 'G':
			s.Selected = rows - 1
		case 'h':
			return backToForm(s), CommandNone
		case 's', 'S':
			s.Mode = ModeSummary
			s.Status = ""
		case 'e', 'E':
			return s, CommandExportSpreadsheet
		case 'q', 'Q':
			return s, CommandQuit
		}
	}

	s.Selected = clamp(s.Selected, 0, rows-1)
	return s, CommandNone
}

func updateSummary(s State, k Key) (State, Command) {
	switch {
	case k.Type == KeyEscape || k.Type == KeyLeft || (k.Type == KeyRune && k.Rune == 'h'):
		s.Mode = ModeSpreadsheet
		s.Status = ""
	case k.Type == KeyRune && (k.Rune == 'e' || k.Rune == 'E'):
		return s, CommandExportAnalysis
	case k.Type == KeyRune && (k.Rune == 'q' || k.Rune == 'Q'):
		return s, CommandQuit
	}
	return s, CommandNone
}

func backToForm(s State) State {
	s.Mode = ModeForm
	s.Field = fieldCount - 1
	s.Status = ""
	return s
}

// Calculated records the outcome of a CommandCalculate or CommandShowSchedule.
// A failed calculation keeps the previous forecast.
func Calculated(s State, result *forecast.Forecast, err error, show bool) State {
	if err != nil {
		s.Err = describeError(err)
		return s
	}

	s.Forecast = result
	s.Err = ""
	if show {
		s.Mode = ModeSpreadsheet
		s.Selected = 0
		s.Status = ""
	}
	return s
}

// Exported records the outcome of an export command.
func Exported(s State, path string, err error) State {
	if err != nil {
		s.Status = ""
		s.Err = fmt.Sprintf("export failed: %v", err)
		return s
	}
	s.Err = ""
	s.Status = "Exported to " + path
	return s
}

func describeError(err error) string {
	var calcErr *mortgage.CalculationError
	if errors.As(err, &calcErr) {
		switch calcErr.Kind {
		case mortgage.NonConverging:
			return fmt.Sprintf("the payment never pays the loan down (month %d); lower the rate or lengthen the term", calcErr.Month)
		default:
			return fmt.Sprintf("%s: %s", calcErr.Field, calcErr.Reason)
		}
	}
	return err.Error()
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
