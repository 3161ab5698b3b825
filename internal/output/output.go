package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Out is where status lines go. Swapped in tests.
var Out io.Writer = os.Stdout

func line(icon, format string, args ...any) {
	fmt.Fprint(Out, icon+" ")
	fmt.Fprintf(Out, format+"\n", args...)
}

func Success(format string, args ...any) {
	line(successStyle.Render("✓"), format, args...)
}

func Warning(format string, args ...any) {
	line(warningStyle.Render("⚠"), format, args...)
}

func Error(format string, args ...any) {
	line(errorStyle.Render("✗"), format, args...)
}

func Info(format string, args ...any) {
	line(infoStyle.Render("ℹ"), format, args...)
}

func Muted(format string, args ...any) {
	fmt.Fprintln(Out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}
