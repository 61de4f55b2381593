package views

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/mutation"
)

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(msg string) bool
}

// Env is what every screen shares: cached reads, writes, prompts and output style.
type Env struct {
	Queries   *Queries
	Mutations *mutation.Mutations
	Confirm   Confirmer
	Notify    mutation.Notifier
	Locale    i18n.Locale
	Styles    Styles
	Logger    *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Env) label(key string) string {
	return e.Locale.Label(key)
}

func (e *Env) confirm(key string) bool {
	if e.Confirm == nil {
		return false
	}
	return e.Confirm.Confirm(e.Locale.T(key))
}

// rejectInvalid notifies the generic form message for a validation error.
func (e *Env) rejectInvalid(err error) error {
	e.logger().Debug("Form rejected", zap.Error(err))
	e.Notify.Error(e.Locale.T(i18n.CheckInput))
	return err
}

// Console prints notifications as colored lines.
type Console struct {
	out    io.Writer
	styles Styles
}

func NewConsole(out io.Writer, styles Styles) *Console {
	return &Console{out: out, styles: styles}
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.styles.Success.Render("✓ "+msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.styles.Error.Render("✗ "+msg))
}
