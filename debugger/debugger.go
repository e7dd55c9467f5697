// Package debugger implements an interactive terminal front end for
// single-stepping a cpu.Chip: a scrolling memory page view, register and
// flag status, and the disassembly of the instruction about to execute.
// It only reads Chip state and calls Step/Reset; it never reaches past the
// Chip into peripherals directly.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hcaron/go6502/cpu"
	"github.com/hcaron/go6502/disassembler"
)

// reader is the memory view the debugger renders from; *bus.Bus satisfies
// this without the debugger needing to import the bus package directly.
type reader interface {
	Read(addr uint16) uint8
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	pcStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	setFlag     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("●")
	clearFlag   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("○")
)

type model struct {
	chip *cpu.Chip
	mem  reader

	lastCycles uint8
	lastErr    error
	quitting   bool
}

// New builds a debugger model wired to chip (already Reset) and mem, the
// same bus the chip reads through, used here only for display.
func New(chip *cpu.Chip, mem reader) tea.Model {
	return model{chip: chip, mem: mem}
}

// Run starts the interactive TUI and blocks until the user quits.
func Run(chip *cpu.Chip, mem reader) error {
	_, err := tea.NewProgram(New(chip, mem)).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ", "s":
		if m.lastErr != nil {
			return m, nil
		}
		cycles, err := m.chip.Step()
		m.lastCycles = cycles
		m.lastErr = err
	case "r":
		m.chip.Reset()
		m.lastErr = nil
		m.lastCycles = 0
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderMemory(),
		"  ",
		m.renderStatus(),
	)
	footer := "[space/s] step  [r] reset  [q] quit"
	if m.lastErr != nil {
		footer = errorStyle.Render(fmt.Sprintf("step error: %v", m.lastErr)) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}

// renderMemory draws the 16-byte row containing PC, plus two rows on
// either side for context, highlighting the byte PC currently points at.
func (m model) renderMemory() string {
	pc := m.chip.PC
	base := pc &^ 0x0F
	var rows []string
	rows = append(rows, headerStyle.Render("addr  +0 +1 +2 +3 +4 +5 +6 +7 +8 +9 +A +B +C +D +E +F"))
	for row := uint16(0); row < 5; row++ {
		page := base - 0x20 + row*0x10
		var b strings.Builder
		fmt.Fprintf(&b, "%04X  ", page)
		for i := uint16(0); i < 16; i++ {
			addr := page + i
			val := m.mem.Read(addr)
			cell := fmt.Sprintf("%02X ", val)
			if addr == pc {
				cell = pcStyle.Render(fmt.Sprintf("%02X ", val))
			}
			b.WriteString(cell)
		}
		rows = append(rows, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderStatus() string {
	c := m.chip
	flagBits := []struct {
		name string
		set  bool
	}{
		{"N", c.P&cpu.NEGATIVE != 0},
		{"V", c.P&cpu.OVERFLOW != 0},
		{"U", c.P&cpu.UNUSED != 0},
		{"B", c.P&cpu.BREAK != 0},
		{"D", c.P&cpu.DECIMAL != 0},
		{"I", c.P&cpu.INTERRUPT != 0},
		{"Z", c.P&cpu.ZERO != 0},
		{"C", c.P&cpu.CARRY != 0},
	}
	var flagLine, nameLine strings.Builder
	for _, f := range flagBits {
		fmt.Fprintf(&nameLine, "%s ", f.name)
		if f.set {
			flagLine.WriteString(setFlag + " ")
		} else {
			flagLine.WriteString(clearFlag + " ")
		}
	}

	disasm, _ := disassembler.Step(c.PC, m.mem)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render("registers"),
		fmt.Sprintf("A=%02X X=%02X Y=%02X SP=%02X PC=%04X", c.A, c.X, c.Y, c.SP, c.PC),
		fmt.Sprintf("cycles=%d  last step=%d", c.Cycles(), m.lastCycles),
		"",
		nameLine.String(),
		flagLine.String(),
		"",
		headerStyle.Render("next"),
		disasm,
	)
}
