package analysis

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/invoice-advisor/internal/cli"
	"github.com/Veraticus/invoice-advisor/internal/model"
)

// Styles contains all styling definitions for analysis result formatting.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// Analysis-specific styles
	Box          lipgloss.Style
	AnomalyBox   lipgloss.Style
	PriorityBox  lipgloss.Style
	AdviceBox    lipgloss.Style
	ReplyBox     lipgloss.Style
	Urgent       lipgloss.Style
	HighValue    lipgloss.Style
	Anomaly      lipgloss.Style
	MenuOption   lipgloss.Style
	MenuKey      lipgloss.Style
	TableHeader  lipgloss.Style
	TableCell    lipgloss.Style
	AmountColumn lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor),
		Subtitle: lipgloss.NewStyle().Foreground(cli.SubtleColor).MarginBottom(1),
		Success:  lipgloss.NewStyle().Foreground(cli.SuccessColor),
		Warning:  lipgloss.NewStyle().Foreground(cli.WarningColor),
		Error:    lipgloss.NewStyle().Foreground(cli.ErrorColor),
		Info:     lipgloss.NewStyle().Foreground(cli.InfoColor),
		Subtle:   lipgloss.NewStyle().Foreground(cli.SubtleColor),
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.AnomalyBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.ErrorColor).
		Padding(0, 1).
		MarginTop(1)

	s.PriorityBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.WarningColor).
		Padding(0, 1).
		MarginTop(1)

	s.AdviceBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SuccessColor).
		Padding(0, 1).
		MarginTop(1)

	s.ReplyBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(cli.InfoColor).
		Padding(0, 1)

	s.Urgent = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.WarningColor)

	s.HighValue = lipgloss.NewStyle().
		Foreground(cli.InfoColor)

	s.Anomaly = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.ErrorColor)

	s.MenuOption = lipgloss.NewStyle().
		PaddingLeft(2)

	s.MenuKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.InfoColor)

	s.TableHeader = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(cli.SubtleColor)
	s.TableCell = lipgloss.NewStyle().PaddingRight(2)
	s.AmountColumn = lipgloss.NewStyle().
		Align(lipgloss.Right).
		Width(12).
		PaddingRight(2)

	return s
}

// WithWidth returns a new Styles instance adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s

	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
		newStyles.AnomalyBox = s.AnomalyBox.Width(width - 4)
		newStyles.PriorityBox = s.PriorityBox.Width(width - 4)
		newStyles.AdviceBox = s.AdviceBox.Width(width - 4)
		newStyles.ReplyBox = s.ReplyBox.Width(width - 4)
	}

	return &newStyles
}

// ForTier returns the style used for a priority tier.
func (s *Styles) ForTier(tier model.PriorityTier) lipgloss.Style {
	switch tier {
	case model.TierUrgent:
		return s.Urgent
	case model.TierHighValue:
		return s.HighValue
	default:
		return s.Normal
	}
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string, style lipgloss.Style) string {
	if title != "" {
		// lipgloss v1.1.0 has no border titles; the title goes in the content.
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return style.Render(titleStyled + "\n" + content)
	}
	return style.Render(content)
}
