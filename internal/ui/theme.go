package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"questchronicles/internal/engine"
)

// Quest Chronicles theme (CLI + TUI).

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconSword   = "⚔️"
	IconShield  = "🛡️"
	IconPotion  = "🧪"
	IconCoin    = "🪙"
	IconHeart   = "❤️"
	IconSkull   = "💀"
	IconRun     = "🏃"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconScroll  = "📜"
	IconLock    = "🔒"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func GoldText(amount int) string {
	return Gold.Render(fmt.Sprintf("%d gold", amount))
}

// HealthBar renders current/max as a fixed-width bar, colored by how much is
// left.
func HealthBar(current, max, width int) string {
	if max <= 0 {
		max = 1
	}
	if width < 3 {
		width = 3
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}
	filled := current * width / max
	if current > 0 && filled == 0 {
		filled = 1
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := Good
	switch {
	case current*4 <= max:
		style = Bad
	case current*2 <= max:
		style = Warn
	}
	return style.Render(bar) + Muted.Render(fmt.Sprintf(" %d/%d", current, max))
}

func ItemIcon(t engine.ItemType) string {
	switch t {
	case engine.ItemWeapon:
		return IconSword
	case engine.ItemArmor:
		return IconShield
	case engine.ItemConsumable:
		return IconPotion
	default:
		return IconBox
	}
}

func ClassText(c engine.Class) string {
	switch c {
	case engine.ClassWarrior:
		return Bad.Render(string(c))
	case engine.ClassMage:
		return H2.Render(string(c))
	case engine.ClassRogue:
		return Good.Render(string(c))
	case engine.ClassCleric:
		return Gold.Render(string(c))
	default:
		return Muted.Render(string(c))
	}
}

// QuestStatus labels a quest from the character's point of view.
func QuestStatus(c *engine.Character, questID string, catalog engine.QuestCatalog) string {
	switch {
	case engine.IsQuestCompleted(c, questID):
		return Good.Render("completed")
	case engine.IsQuestActive(c, questID):
		return H2.Render("active")
	case engine.CanAcceptQuest(c, questID, catalog):
		return Warn.Render("available")
	default:
		return Muted.Render("locked")
	}
}

func BattleStateText(s engine.BattleState) string {
	switch s {
	case engine.BattlePlayerWon:
		return Good.Render(IconTrophy + " Victory")
	case engine.BattleEnemyWon:
		return Bad.Render(IconSkull + " Defeat")
	case engine.BattleEscaped:
		return Warn.Render(IconRun + " Escaped")
	default:
		return H2.Render(s.String())
	}
}
