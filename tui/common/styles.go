package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(0, 1)

	// AuthorStyle styles the reviewer name.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles the review creation date.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles review text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// ShowMoreStyle styles the control that expands truncated text.
	ShowMoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8AADF4"))

	// RatingStyle styles the stars of a rating.
	RatingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// SummaryStyle styles the trailing "N reviews" row.
	SummaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Bold(true)

	// SelectedMarkerStyle styles the gutter marker of the selected review.
	SelectedMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6600"))

	// AvatarPlaceholderStyle fills the avatar box until an image loads.
	AvatarPlaceholderStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#45475A")).
				Foreground(lipgloss.Color("#CAD3F5")).
				Bold(true)

	// PhotoPlaceholderStyle fills photo boxes until an image loads.
	PhotoPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#45475A"))

	// SpinnerStyle colors the loading spinner.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)
)
