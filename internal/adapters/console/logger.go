// Package console renders the leveled log sink the farm core writes to.
// One process-wide writer gate keeps lines from interleaving when several
// account controllers log at once.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/steambooster/internal/ports"
)

type styles struct {
	timestamp lipgloss.Style
	prefix    lipgloss.Style
	debug     lipgloss.Style
	info      lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	errorMsg  lipgloss.Style
}

func newStyles() styles {
	return styles{
		timestamp: lipgloss.NewStyle().Faint(true),
		prefix:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		info:      lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		errorMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

type core struct {
	mu     sync.Mutex
	out    io.Writer
	debug  bool
	styles styles
	now    func() time.Time
}

// Logger is the lipgloss-rendered console sink. Derive per-account loggers
// with WithPrefix; they share the writer gate.
type Logger struct {
	core   *core
	prefix string
}

var _ ports.Logger = (*Logger)(nil)

func New(out io.Writer, debug bool) *Logger {
	return &Logger{core: &core{
		out:    out,
		debug:  debug,
		styles: newStyles(),
		now:    time.Now,
	}}
}

// WithPrefix returns a logger that tags every line with the given name.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{core: l.core, prefix: prefix}
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.core.debug {
		return
	}
	l.write(l.core.styles.debug, format, args)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(l.core.styles.info, format, args)
}

func (l *Logger) Success(format string, args ...any) {
	l.write(l.core.styles.success, format, args)
}

func (l *Logger) Warning(format string, args ...any) {
	l.write(l.core.styles.warning, format, args)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(l.core.styles.errorMsg, format, args)
}

func (l *Logger) write(style lipgloss.Style, format string, args []any) {
	c := l.core

	timestamp := c.styles.timestamp.Render("[" + c.now().Format("15:04:05") + "]")
	line := timestamp
	if l.prefix != "" {
		line += " " + c.styles.prefix.Render("["+l.prefix+"]")
	}
	line += " " + style.Render(fmt.Sprintf(format, args...))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, line)
}
