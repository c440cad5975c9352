// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Color aliases for the active palette.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	TitleStyle       lipgloss.Style
	SubtitleStyle    lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextPrimaryStyle lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	WarningStyle     lipgloss.Style

	// Diff highlighting.
	RemovedStyle  lipgloss.Style
	InsertedStyle lipgloss.Style
	ArrowStyle    lipgloss.Style

	// Review table.
	SelectedRowStyle lipgloss.Style
	CursorRowStyle   lipgloss.Style
	StatusBadge      map[string]lipgloss.Style

	// Modal and bars.
	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	StatusBarStyle     lipgloss.Style
	ProgressFillStyle  lipgloss.Style
	ProgressTrackStyle lipgloss.Style
	HelpStyle          lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme applies a palette and rebuilds all exported styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)

	RemovedStyle = lipgloss.NewStyle().Foreground(p.Error).Strikethrough(true)
	InsertedStyle = lipgloss.NewStyle().Foreground(p.Success).Underline(true)
	ArrowStyle = lipgloss.NewStyle().Foreground(p.Muted)

	SelectedRowStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	CursorRowStyle = lipgloss.NewStyle().Background(p.Surface)
	StatusBadge = map[string]lipgloss.Style{
		"pending":  lipgloss.NewStyle().Foreground(p.Warning),
		"accepted": lipgloss.NewStyle().Foreground(p.Success),
		"rejected": lipgloss.NewStyle().Foreground(p.Error),
	}

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ProgressFillStyle = lipgloss.NewStyle().Foreground(p.Success)
	ProgressTrackStyle = lipgloss.NewStyle().Foreground(p.Surface)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
}
