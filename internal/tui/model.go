package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"questchronicles/internal/engine"
	"questchronicles/internal/ui"
)

const maxLogLines = 8

type battleModel struct {
	ctx    context.Context
	battle *engine.Battle

	width int

	log     []string
	busy    bool
	err     error
	levelUp bool
}

type turnMsg struct {
	rep       engine.TurnReport
	levelBase int
	err       error
}

func newBattleModel(ctx context.Context, b *engine.Battle) battleModel {
	return battleModel{
		ctx:    ctx,
		battle: b,
		log:    []string{fmt.Sprintf("A wild %s appears!", b.Enemy.Name)},
	}
}

func (m battleModel) Init() tea.Cmd {
	return nil
}

func (m battleModel) turnCmd(a engine.Action) tea.Cmd {
	b := m.battle
	return func() tea.Msg {
		if err := m.ctx.Err(); err != nil {
			return turnMsg{err: err}
		}
		level := b.Character.Level
		rep, err := b.Turn(a)
		return turnMsg{rep: rep, levelBase: level, err: err}
	}
}

func (m battleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case turnMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.appendLog(DescribeTurn(m.battle, msg.rep)...)
		if m.battle.Character.Level > msg.levelBase {
			m.levelUp = true
			m.appendLog(fmt.Sprintf("%s reached level %d!", m.battle.Character.Name, m.battle.Character.Level))
		}
		return m, nil
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.battle.State().Terminal() || m.err != nil {
			if key == "q" || key == "enter" || key == "esc" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		var action engine.Action
		switch key {
		case "a":
			action = engine.ActionAttack
		case "s":
			action = engine.ActionAbility
		case "r":
			action = engine.ActionEscape
		default:
			return m, nil
		}
		m.busy = true
		return m, m.turnCmd(action)
	}
	return m, nil
}

func (m *battleModel) appendLog(lines ...string) {
	m.log = append(m.log, lines...)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m battleModel) View() string {
	b := m.battle
	c, e := b.Character, b.Enemy

	var sb strings.Builder
	sb.WriteString(ui.Heading(ui.IconSword, fmt.Sprintf("%s vs %s", c.Name, e.Name)))
	sb.WriteString(ui.Muted.Render(fmt.Sprintf("  turn %d", b.TurnNumber())))
	sb.WriteString("\n\n")

	barW := 24
	if m.width > 0 && m.width < 60 {
		barW = 12
	}
	sb.WriteString(fmt.Sprintf("%-10s %s\n", c.Name, ui.HealthBar(c.Health, c.MaxHealth, barW)))
	sb.WriteString(fmt.Sprintf("%-10s %s\n\n", e.Name, ui.HealthBar(e.Health, e.MaxHealth, barW)))

	sb.WriteString(ui.Panel.Render(strings.Join(m.log, "\n")))
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n")
		sb.WriteString(ui.Muted.Render("q: quit") + "\n")
		return sb.String()
	}
	if b.State().Terminal() {
		sb.WriteString(ui.BattleStateText(b.State()))
		if m.levelUp {
			sb.WriteString("  " + ui.BadgeLevelUp)
		}
		sb.WriteString("\n" + ui.Muted.Render("q: leave") + "\n")
		return sb.String()
	}

	special := c.Class.AbilityName()
	if cd := b.Cooldown(); cd > 0 {
		special = fmt.Sprintf("%s (%d)", special, cd)
	}
	sb.WriteString(fmt.Sprintf("%s attack  %s %s  %s run  %s quit\n",
		ui.Key.Render("a"), ui.Key.Render("s"), special, ui.Key.Render("r"), ui.Key.Render("ctrl+c")))
	return sb.String()
}
