package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleHighlight marks the selected vertex in the preview.
	StyleHighlight = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue   = lipgloss.NewStyle().Foreground(colorText)
	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleFail    = lipgloss.NewStyle().Foreground(colorFail)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Status Output
// =============================================================================

// ui writes human-oriented status lines. Logs go to the logger instead.
type ui struct {
	w io.Writer
}

func newUI(w io.Writer) *ui {
	if w == nil {
		w = os.Stdout
	}
	return &ui{w: w}
}

func (u *ui) line(mark lipgloss.Style, icon, msg string) {
	fmt.Fprintln(u.w, mark.Render(icon)+" "+msg)
}

func (u *ui) success(format string, args ...any) { u.line(styleOK, "✓", fmt.Sprintf(format, args...)) }
func (u *ui) failure(format string, args ...any) { u.line(styleFail, "✗", fmt.Sprintf(format, args...)) }
func (u *ui) info(format string, args ...any)    { u.line(StyleDim, "›", fmt.Sprintf(format, args...)) }

func (u *ui) warn(format string, args ...any) {
	u.line(styleWarn, "!", styleWarn.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented muted line under the previous status.
func (u *ui) detail(format string, args ...any) {
	fmt.Fprintln(u.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// files lists written output paths.
func (u *ui) files(paths ...string) {
	for _, p := range paths {
		fmt.Fprintln(u.w, "  "+StyleDim.Render("→")+" "+styleValue.Render(p))
	}
}

// stats prints "N vertices · H levels · cached|fresh".
func (u *ui) stats(vertexCount, height int, cached bool) {
	status := StyleDim.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(u.w, "  "+strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d vertices", vertexCount)),
		StyleDim.Render(fmt.Sprintf("%d levels", height)),
		status,
	}, sep))
}

// next suggests a follow-up command after a blank line.
func (u *ui) next(description, cmd string) {
	fmt.Fprintln(u.w)
	fmt.Fprintln(u.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
