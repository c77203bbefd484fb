/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/hostserial"
	"github.com/allbin/go-board/internal/sim"
	"github.com/allbin/go-board/internal/tui/components"
	"github.com/allbin/go-board/internal/tui/keys"
	"github.com/allbin/go-board/internal/tui/models"
	"github.com/allbin/go-board/internal/tui/styles"
)

const pollInterval = 20 * time.Millisecond

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect [port]",
	Short: "Open an interactive terminal on a serial port",
	Long: `Open a serial port through the board layer and show an interactive
terminal with bidirectional communication.

With a device path the port is a host serial device. Without one, or with
--sim, the port belongs to the simulated --board and echoes everything
sent to it, which is handy for checking what each variant accepts.

Keys:
  i       type data to send (tab toggles ASCII/hex)
  :       run a port command
  esc     back to normal mode
  t       switch between log and table view
  ?       full help

Port commands:
  :begin [baud] [format]   e.g. ":begin 9600 7E1"
  :end                     close the port
  :timeout <duration>      e.g. ":timeout 250ms"
  :flush                   wait for transmission to finish
  :role <role>             watch the port holding a registry role
  :port <name>             watch a port by peripheral name
  :ports                   list the board's ports

Example usage:
  boardctl connect /dev/ttyUSB0 --baud 115200
  boardctl connect /dev/ttyACM0 --format 7E1
  boardctl connect --sim --board due --role console`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		baud, format, err := serialSettings(cmd)
		exitOnError("Error parsing serial settings", err)
		simulate, _ := cmd.Flags().GetBool("sim")
		role, _ := cmd.Flags().GetString("role")

		// The board logs nothing here; output would corrupt the screen.
		var b *board.Board
		if simulate || len(args) == 0 {
			profile, err := selectedProfile()
			exitOnError("Error selecting board", err)
			var drv *sim.Driver
			b, drv = sim.NewBoard(profile)
			for _, p := range b.Ports() {
				if u, ok := drv.UART(p.Name()); ok {
					u.SetLoopback(true)
				}
			}
		} else {
			b, _, err = hostserial.NewBoard(args, nil)
			exitOnError("Error", err)
		}

		port, err := b.LookupPort(role)
		exitOnError("Error selecting port", err)

		exitOnError("Error", runConnectTUI(b, port, baud, format))
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)

	addSerialFlags(connectCmd)
	connectCmd.Flags().Bool("sim", false, "Use the simulated ports of --board")
	connectCmd.Flags().StringP("role", "r", "console", "Port role or peripheral name to open")
}

type pollMsg time.Time

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

// connectModel represents the Bubble Tea model for the connect command
type connectModel struct {
	session   *models.Session
	formatter *components.Formatter
	terminal  *components.Terminal
	logTable  *components.LogTable
	statusBar *components.StatusBar
	input     *components.Input
	help      help.Model
	keys      keys.ConnectKeys
	ready     bool
	tableView bool
}

func newConnectModel(b *board.Board, port *board.SerialPort) *connectModel {
	session := models.NewSession(b, port)
	formatter := components.NewFormatter(true, true)
	return &connectModel{
		session:   session,
		formatter: formatter,
		terminal:  components.NewTerminal(0, 0, formatter),
		logTable:  components.NewLogTable(80, 10, formatter),
		statusBar: components.NewStatusBar(session.Info()),
		input:     components.NewInput(),
		help:      help.New(),
		keys:      keys.NewConnectKeys(),
	}
}

func runConnectTUI(b *board.Board, port *board.SerialPort, baud uint32, format board.SerialConfig) error {
	m := newConnectModel(b, port)
	m.exec(fmt.Sprintf("begin %d %s", baud, format))

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	m.session.Port().End()
	return err
}

func (m *connectModel) Init() tea.Cmd {
	return poll()
}

func (m *connectModel) add(r components.Record) {
	m.terminal.Add(r)
	m.logTable.Add(r)
}

func (m *connectModel) refresh() {
	m.terminal.Refresh(m.session.Records())
	m.logTable.Refresh(m.session.Records())
}

// exec runs a port command and reports the result in the log and the
// status bar.
func (m *connectModel) exec(line string) {
	msg, err := m.session.Exec(line)
	if err != nil {
		m.add(m.session.Note("%s: %v", line, err))
		m.statusBar.SetMessage(err.Error(), err)
	} else if msg != "" {
		m.add(m.session.Note("%s", msg))
		m.statusBar.SetMessage(msg, nil)
	}
	m.statusBar.SetInfo(m.session.Info())
}

func (m *connectModel) send() {
	payload, err := m.input.Payload()
	if err != nil {
		m.add(m.session.Note("Invalid hex input: %v", err))
		return
	}
	if m.input.SendingMode() == components.SendingModeASCII {
		payload = append(payload, '\n')
	}
	m.add(m.session.Send(payload))
}

func (m *connectModel) setMode(mode models.InputMode) {
	m.session.SetMode(mode)
	switch mode {
	case models.InputModeNormal:
		m.input.SetCommandMode(false)
		m.input.Blur()
	case models.InputModeInsert:
		m.input.Focus()
	case models.InputModeCommand:
		m.input.SetCommandMode(true)
		m.input.Focus()
	}
}

func (m *connectModel) resize(width, height int) {
	// input (3) + status bar (1) + help (1) + content border (1)
	contentHeight := max(height-6, 1)
	m.terminal.SetSize(width, contentHeight)
	m.logTable.SetSize(width, contentHeight)
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.help.Width = width
	m.ready = true
}

func (m *connectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.terminal.Update(msg)

	case pollMsg:
		for {
			r, ok := m.session.Poll()
			if !ok {
				break
			}
			m.add(r)
		}
		m.statusBar.SetInfo(m.session.Info())
		return m, poll()

	case tea.KeyMsg:
		if m.session.Mode() == models.InputModeNormal {
			return m.updateNormal(msg)
		}
		return m.updateEditing(msg)
	}
	return m, nil
}

func (m *connectModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	command := m.session.Mode() == models.InputModeCommand

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.setMode(models.InputModeNormal)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		line := m.input.Value()
		if line == "" {
			return m, nil
		}
		m.input.AddToHistory(line)
		if command {
			m.exec(line)
			m.setMode(models.InputModeNormal)
			return m, nil
		}
		m.send()
		m.input.SetValue("")
		return m, nil

	case msg.Type == tea.KeyUp:
		m.input.HistoryUp()
		return m, nil

	case msg.Type == tea.KeyDown:
		m.input.HistoryDown()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSend) && !command:
		m.input.ToggleSendingMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *connectModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.InsertMode):
		m.setMode(models.InputModeInsert)

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(models.InputModeCommand)

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.terminal.Clear()
		m.logTable.Clear()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.ToggleHex):
		m.formatter.ToggleHex()
		m.refresh()

	case key.Matches(msg, m.keys.ToggleASCII):
		m.formatter.ToggleASCII()
		m.refresh()

	case key.Matches(msg, m.keys.ToggleTable):
		m.tableView = !m.tableView

	case key.Matches(msg, m.keys.ToggleSend):
		m.input.ToggleSendingMode()

	case key.Matches(msg, m.keys.Up):
		if m.tableView {
			m.logTable.MoveUp()
		} else {
			m.terminal.ScrollUp()
		}

	case key.Matches(msg, m.keys.Down):
		if m.tableView {
			m.logTable.MoveDown()
		} else {
			m.terminal.ScrollDown()
		}

	case key.Matches(msg, m.keys.GotoTop):
		if m.tableView {
			m.logTable.Top()
		} else {
			m.terminal.Top()
		}

	case key.Matches(msg, m.keys.GotoBottom):
		if m.tableView {
			m.logTable.Bottom()
		} else {
			m.terminal.Bottom()
		}
	}
	return m, nil
}

func (m *connectModel) View() string {
	content := "Initializing..."
	if m.ready {
		if m.tableView {
			content = m.logTable.View()
		} else {
			content = m.terminal.View()
		}
	}

	mode := m.session.Mode()
	input := m.input.View(mode != models.InputModeNormal)
	statusBar := m.statusBar.View(mode.String(), m.input.SendingMode().String(), time.Now().Format("15:04:05"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ContentBorderStyle.Render(content),
		input,
		statusBar,
		m.help.View(m.keys),
	)
}
