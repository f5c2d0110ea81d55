// Command skirmishtui is a terminal demo driving the skirmish engine's
// facade through its public surface only: CreateGame, ProcessEvent,
// GetScreen, GetState, GetSelectedWarriorID, Narrate. It renders the Screen Projector's AvailableEvents as a
// selectable menu and fills in the minimal payload each event needs so a
// full match can be played from a keyboard with no mouse, no coordinates,
// and no knowledge of the engine's internals.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jruiznavarro/skirmishengine/internal/engine"
	"github.com/jruiznavarro/skirmishengine/internal/engine/core"
	"github.com/jruiznavarro/skirmishengine/internal/engine/event"
	"github.com/jruiznavarro/skirmishengine/internal/engine/screen"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	borderStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed for this match")
	flag.Parse()

	eng := engine.New()
	w1, w2 := sampleWarbands()
	eng.CreateGame(w1, w2, "border-skirmish", *seed)

	m := model{eng: eng}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "skirmishtui:", err)
		os.Exit(1)
	}
}

// menuItem is one selectable line: an event type plus the already-filled-in
// event it would submit.
type menuItem struct {
	label string
	ev    event.Event
}

type model struct {
	eng     *engine.Engine
	cursor  int
	lastErr string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.menuItems()

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(items) {
			res := m.eng.ProcessEvent(items[m.cursor].ev)
			if res.Success {
				m.lastErr = ""
			} else {
				m.lastErr = res.Error.Error()
			}
			m.cursor = 0
		}
	}
	return m, nil
}

func (m model) View() string {
	desc := m.eng.GetScreen()

	header := headerStyle.Render(fmt.Sprintf("Turn %d  |  %s  |  Player %d's %s",
		desc.Turn, desc.Screen, desc.CurrentPlayer, desc.Phase))

	var body string
	switch data := desc.Data.(type) {
	case screen.CombatResolutionData:
		body = renderResolution(data.Resolution)
	case screen.GameOverData:
		body = renderGameOver(data.Winner)
	case screen.RoutTestData:
		body = fmt.Sprintf("Warband %d must take a rout test.", data.WarbandIndex+1)
	case screen.MovementData:
		body = fmt.Sprintf("Actable: %d warriors  |  Charge targets: %d", len(data.ActableWarriors), len(data.ChargeTargets))
	default:
		body = renderRoster(m.eng.GetState())
	}

	items := m.menuItems()
	menu := make([]string, 0, len(items))
	for i, it := range items {
		line := it.label
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = dimStyle.Render("  " + line)
		}
		menu = append(menu, line)
	}
	if len(items) == 0 {
		menu = append(menu, dimStyle.Render("  (no events available)"))
	}

	narration := dimStyle.Render("no events yet")
	if lines := m.eng.Narrate(); len(lines) > 0 {
		start := 0
		if len(lines) > 5 {
			start = len(lines) - 5
		}
		narration = logStyle.Render(joinLines(lines[start:]))
	}

	errLine := ""
	if m.lastErr != "" {
		errLine = "\n" + errorStyle.Render("! "+m.lastErr)
	}

	return borderStyle.Render(fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\nActions:\n%s%s\n\n%s",
		header, body, narration, joinLines(menu), errLine,
		dimStyle.Render("up/down to choose, enter to submit, q to quit"),
	))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func renderResolution(res core.CombatResolution) string {
	verb := "strikes"
	if res.IsShooting {
		verb = "shoots"
	}
	return fmt.Sprintf("%s: hit=%v wound=%v crit=%v saved=%v outcome=%s",
		verb, res.Hit, res.Wounded, res.Critical, res.Saved, res.Outcome)
}

func renderGameOver(winner int) string {
	if winner <= 0 {
		return "The battle ends in a draw."
	}
	return fmt.Sprintf("Player %d wins the battle!", winner)
}

func renderRoster(gs *core.GameState) string {
	out := ""
	for i, wb := range gs.Warbands {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%s:", wb.Name)
		for _, gw := range wb.Warriors {
			out += fmt.Sprintf("\n  %-10s %-12s W:%d/%d", gw.Warrior.Name, gw.GameStatus, gw.WoundsRemaining, gw.Warrior.Profile.W)
		}
	}
	return out
}

// menuItems translates the projector's AvailableEvents into concrete, ready-
// to-submit events, auto-filling the payload a full interactive parser would
// otherwise prompt for (a warrior to act with, a target to strike or
// charge). This keeps the demo a single menu loop instead of a per-event
// form, while still exercising every event the facade accepts.
func (m model) menuItems() []menuItem {
	desc := m.eng.GetScreen()
	gs := m.eng.GetState()
	if gs == nil {
		return nil
	}

	var items []menuItem
	for _, t := range desc.AvailableEvents {
		ev, ok := m.buildEvent(t, gs)
		if !ok {
			continue
		}
		items = append(items, menuItem{label: menuLabel(t, ev), ev: ev})
	}
	return items
}

func (m model) buildEvent(t event.Type, gs *core.GameState) (event.Event, bool) {
	switch t {
	case event.AdvancePhase:
		return event.Event{Type: t}, true
	case event.Acknowledge:
		return event.Event{Type: t}, true
	case event.Undo:
		return event.Event{Type: t}, true
	case event.EndGame:
		return event.Event{Type: t, Meta: event.Meta{PlayerID: gs.CurrentPlayer}}, true
	case event.Deselect:
		if m.eng.GetSelectedWarriorID() == "" {
			return event.Event{}, false
		}
		return event.Event{Type: t}, true
	case event.SelectWarrior:
		w := firstSelectable(gs)
		if w == nil {
			return event.Event{}, false
		}
		return event.Event{Type: t, Payload: event.Payload{WarriorID: w.ID()}}, true
	case event.ConfirmPosition:
		if m.eng.GetSelectedWarriorID() == "" {
			return event.Event{}, false
		}
		return event.Event{Type: t}, true
	case event.RecoveryAction:
		w, kind := firstRecoverable(gs)
		if w == nil {
			return event.Event{}, false
		}
		return event.Event{Type: t, Payload: event.Payload{WarriorID: w.ID(), RecoveryAction: kind}}, true
	case event.ConfirmMove:
		sel := m.eng.GetSelectedWarriorID()
		if sel == "" {
			return event.Event{}, false
		}
		return event.Event{Type: t, Payload: event.Payload{MoveType: event.MoveTypeMove}}, true
	case event.ToggleModifier:
		if m.eng.GetSelectedWarriorID() == "" {
			return event.Event{}, false
		}
		return event.Event{Type: t, Payload: event.Payload{ModifierKey: "cover"}}, true
	case event.ConfirmShot:
		sel := m.eng.GetSelectedWarriorID()
		if sel == "" {
			return event.Event{}, false
		}
		target := firstEnemyTarget(gs, sel)
		if target == nil {
			return event.Event{}, false
		}
		return event.Event{Type: t, Payload: event.Payload{TargetID: target.ID()}}, true
	case event.SkipShooting:
		sel := m.eng.GetSelectedWarriorID()
		if sel == "" {
			w := firstSelectable(gs)
			if w == nil {
				return event.Event{}, false
			}
			sel = w.ID()
		}
		return event.Event{Type: t, Payload: event.Payload{WarriorID: sel}}, true
	case event.ConfirmMelee:
		attacker, target := currentFighterAndTarget(gs)
		if attacker == nil || target == nil {
			return event.Event{}, false
		}
		weapon := ""
		if len(attacker.Warrior.Equipment.MeleeWeapons) > 0 {
			weapon = attacker.Warrior.Equipment.MeleeWeapons[0]
		}
		return event.Event{Type: t, Payload: event.Payload{TargetID: target.ID(), WeaponKey: weapon}}, true
	default:
		return event.Event{}, false
	}
}

func menuLabel(t event.Type, ev event.Event) string {
	switch t {
	case event.SelectWarrior:
		return fmt.Sprintf("SELECT_WARRIOR %s", ev.Payload.WarriorID)
	case event.ConfirmMove:
		return "CONFIRM_MOVE (move)"
	case event.RecoveryAction:
		return fmt.Sprintf("RECOVERY_ACTION %s for %s", ev.Payload.RecoveryAction, ev.Payload.WarriorID)
	case event.ConfirmShot:
		return fmt.Sprintf("CONFIRM_SHOT at %s", ev.Payload.TargetID)
	case event.ConfirmMelee:
		return fmt.Sprintf("CONFIRM_MELEE at %s with %s", ev.Payload.TargetID, ev.Payload.WeaponKey)
	case event.ToggleModifier:
		return fmt.Sprintf("TOGGLE_MODIFIER %s", ev.Payload.ModifierKey)
	default:
		return string(t)
	}
}

func firstSelectable(gs *core.GameState) *core.GameWarrior {
	for _, gw := range gs.ActiveWarband().Warriors {
		if gw.IsActive() {
			return gw
		}
	}
	return nil
}

func firstRecoverable(gs *core.GameState) (*core.GameWarrior, event.RecoveryActionKind) {
	for _, gw := range gs.ActiveWarband().Warriors {
		if gw.HasRecovered {
			continue
		}
		switch gw.GameStatus {
		case core.StatusStunned:
			return gw, event.RecoverFromStunned
		case core.StatusKnockedDown:
			return gw, event.StandUp
		case core.StatusFleeing:
			return gw, event.Rally
		}
	}
	return nil, ""
}

func firstEnemyTarget(gs *core.GameState, self core.WarriorID) *core.GameWarrior {
	_, idx := gs.FindWarrior(self)
	if idx < 0 {
		return nil
	}
	opponent := gs.Warbands[1-idx]
	for _, gw := range opponent.Warriors {
		if !gw.IsOutOfAction() {
			return gw
		}
	}
	return nil
}

func currentFighterAndTarget(gs *core.GameState) (attacker, target *core.GameWarrior) {
	idx := gs.CurrentFighterIndex
	if idx < 0 || idx >= len(gs.StrikeOrder) {
		return nil, nil
	}
	entry := gs.StrikeOrder[idx]
	attacker, _ = gs.FindWarrior(entry.WarriorID)
	if attacker == nil {
		return nil, nil
	}
	for id := range attacker.CombatState.EngagedWith {
		if gw, ok := gs.AllWarriors()[id]; ok {
			return attacker, gw
		}
	}
	return attacker, nil
}

// sampleWarbands builds a small two-warband roster for the demo match.
func sampleWarbands() (*core.Warband, *core.Warband) {
	reaver := core.NewGameWarrior(&core.Warrior{
		ID:        core.NewWarriorID(),
		Name:      "Kassia",
		Category:  core.CategoryHero,
		Profile:   core.Profile{Movement: 4, WS: 4, BS: 3, S: 4, T: 4, W: 2, I: 5, A: 2, Ld: 8},
		Equipment: core.Equipment{MeleeWeapons: []string{"sword"}, RangedWeapons: []string{"bow"}, Armor: true},
	})
	brute := core.NewGameWarrior(&core.Warrior{
		ID:        core.NewWarriorID(),
		Name:      "Orrin",
		Category:  core.CategoryHenchman,
		Profile:   core.Profile{Movement: 4, WS: 3, BS: 3, S: 4, T: 4, W: 1, I: 3, A: 1, Ld: 6},
		Equipment: core.Equipment{MeleeWeapons: []string{"flail"}},
	})
	w1 := &core.Warband{ID: core.NewWarbandID(), Name: "Ashvale Reavers", Warriors: []*core.GameWarrior{reaver, brute}}

	cultLeader := core.NewGameWarrior(&core.Warrior{
		ID:        core.NewWarriorID(),
		Name:      "Vex",
		Category:  core.CategoryHero,
		Profile:   core.Profile{Movement: 4, WS: 3, BS: 4, S: 3, T: 3, W: 2, I: 4, A: 1, Ld: 7},
		Equipment: core.Equipment{MeleeWeapons: []string{"dagger"}, RangedWeapons: []string{"crossbow"}},
	})
	cultist := core.NewGameWarrior(&core.Warrior{
		ID:        core.NewWarriorID(),
		Name:      "Thane",
		Category:  core.CategoryHenchman,
		Profile:   core.Profile{Movement: 4, WS: 3, BS: 3, S: 3, T: 3, W: 1, I: 3, A: 1, Ld: 6},
		Equipment: core.Equipment{MeleeWeapons: []string{"axe"}, Shield: true},
	})
	w2 := &core.Warband{ID: core.NewWarbandID(), Name: "Red Hand Cult", Warriors: []*core.GameWarrior{cultLeader, cultist}}

	return w1, w2
}
