/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/sim"
	"github.com/allbin/go-board/internal/tui/colors"
)

// loopbackResult is the outcome of one round trip.
type loopbackResult struct {
	port    string
	variant board.Variant
	format  board.SerialConfig
	err     error
}

// loopbackCmd represents the loopback command
var loopbackCmd = &cobra.Command{
	Use:   "loopback",
	Short: "Round-trip data through the simulated ports of a board",
	Long: `Begin serial ports of the selected board on the simulator with TX
wired to RX, write a payload and read it back through the same board
layer firmware uses.

With --format all every frame format is tried, which shows the formats
each port's variant rejects.

Example usage:
  boardctl loopback --board due
  boardctl loopback --board due --role console --format all
  boardctl loopback --board zero --format 7E2 --payload "hello"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := selectedProfile()
		exitOnError("Error selecting board", err)

		b, drv := sim.NewBoard(profile, board.WithLogger(logger))

		ports := b.Ports()
		if role, _ := cmd.Flags().GetString("role"); role != "" {
			p, err := b.LookupPort(role)
			exitOnError("Error selecting port", err)
			ports = []*board.SerialPort{p}
		}

		var formats []board.SerialConfig
		if f, _ := cmd.Flags().GetString("format"); f == "all" {
			formats = board.AllSerialConfigs()
		} else {
			format, err := serialFormat(cmd)
			exitOnError("Error parsing format", err)
			formats = []board.SerialConfig{format}
		}
		baud, err := serialBaud(cmd)
		exitOnError("Error parsing baud rate", err)
		payload, _ := cmd.Flags().GetString("payload")

		var results []loopbackResult
		for _, p := range ports {
			if u, ok := drv.UART(p.Name()); ok {
				u.SetLoopback(true)
			}
			for _, f := range formats {
				results = append(results, loopback(p, baud, f, []byte(payload)))
			}
		}

		printLoopback(profile.Name(), results)
		for _, r := range results {
			if r.err != nil && !errors.Is(r.err, board.ErrUnsupportedSerialMode) {
				exitOnError("Loopback failed", r.err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(loopbackCmd)

	addSerialFlags(loopbackCmd)
	loopbackCmd.Flags().StringP("role", "r", "", "Only test the port holding this role or name")
	loopbackCmd.Flags().StringP("payload", "p", "The quick brown fox", "Data to send")
}

// loopback begins p, sends payload and reads it back.
func loopback(p *board.SerialPort, baud uint32, format board.SerialConfig, payload []byte) loopbackResult {
	r := loopbackResult{port: p.Name(), variant: p.Variant(), format: format}
	defer p.End()

	if !p.Begin(baud, format) {
		r.err = fmt.Errorf("%w: %v", board.ErrUnsupportedSerialMode, format)
		return r
	}
	if err := p.WriteAll(payload); err != nil {
		r.err = err
		return r
	}
	got := make([]byte, len(payload))
	if err := p.ReadFull(got); err != nil {
		r.err = err
		return r
	}
	if !bytes.Equal(got, payload) {
		r.err = fmt.Errorf("read back %q, want %q", got, payload)
	}
	return r
}

func printLoopback(name string, results []loopbackResult) {
	columns := []table.Column{
		table.NewColumn("port", "Port", 10),
		table.NewColumn("variant", "Variant", 8),
		table.NewColumn("format", "Format", 6),
		table.NewColumn("result", "Result", 40),
	}
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		result := table.NewStyledCell("ok", lipgloss.NewStyle().Foreground(colors.Green))
		switch {
		case errors.Is(r.err, board.ErrUnsupportedSerialMode):
			result = table.NewStyledCell("rejected by variant", lipgloss.NewStyle().Foreground(colors.Yellow))
		case r.err != nil:
			result = table.NewStyledCell(r.err.Error(), lipgloss.NewStyle().Foreground(colors.Red))
		}
		rows = append(rows, table.NewRow(table.RowData{
			"port":    r.port,
			"variant": r.variant.String(),
			"format":  r.format.String(),
			"result":  result,
		}))
	}
	printTable(name+" loopback", columns, rows)
}
