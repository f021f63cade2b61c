package tui

import "github.com/charmbracelet/lipgloss"

const (
	// LogTailLength is how many recent log lines the run view shows
	LogTailLength = 12
	// ProgressBarWidth is the default width of the progress bar
	ProgressBarWidth = 40
	// PromptArrow is the arrow character used in prompts
	PromptArrow = "▶ "
)

// unexported constants.
const (
	dimColorCode     = "240" // Dark gray
	errorColorCode   = "196" // Red
	highlightCode    = "86"  // Cyan
	primaryColorCode = "205" // Pink/purple
	subtleColorCode  = "241" // Medium gray
	successColorCode = "42"  // Green
)

// DimStyle returns the style for dimmed text
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColorCode))
}

// ErrorStyle returns the style for error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorColorCode)).
		Bold(true)
}

// LabelStyle returns the style for labels
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(highlightCode)).
		Bold(true)
}

// SubtitleStyle returns the style for subtitles
func SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(subtleColorCode)).
		MarginBottom(1)
}

// SuccessStyle returns the style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(successColorCode)).
		Bold(true)
}

// TitleStyle returns the style for titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(primaryColorCode)).
		MarginBottom(1)
}

// RenderDim renders dimmed text with consistent styling
func RenderDim(text string) string {
	return DimStyle().Render(text)
}

// RenderError renders an error message with consistent styling
func RenderError(text string) string {
	return ErrorStyle().Render(text)
}

// RenderLabel renders a label with consistent styling
func RenderLabel(text string) string {
	return LabelStyle().Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle().Render(text)
}

// RenderSuccess renders a success message with consistent styling
func RenderSuccess(text string) string {
	return SuccessStyle().Render(text)
}

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle().Render(text)
}
