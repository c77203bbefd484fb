/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/styles"
)

// pinsCmd represents the pins command
var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "Show the pin capability table of a board",
	Long: `Show which pins of the selected board are analog inputs, analog
outputs, PWM capable or wired to an interrupt line, followed by the
analog references the board accepts.

Example usage:
  boardctl pins --board due
  boardctl pins --board leonardo --all`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := selectedProfile()
		exitOnError("Error selecting board", err)
		all, _ := cmd.Flags().GetBool("all")

		columns := []table.Column{
			table.NewColumn("pin", "Pin", 4),
			table.NewColumn("label", "Label", 6),
			table.NewColumn("pwm", "PWM", 4),
			table.NewColumn("irq", "IRQ", 4),
		}
		rows := make([]table.Row, 0)
		for _, pin := range boardPins(profile) {
			label, capable := pinLabel(profile.Pins(), pin)
			irq := "-"
			if line, ok := profile.Pins().InterruptLineOf(pin); ok {
				irq = strconv.Itoa(int(line))
				capable = true
			}
			pwm := profile.Pins().HasPWM(pin)
			if !all && !capable && !pwm {
				continue
			}
			rows = append(rows, table.NewRow(table.RowData{
				"pin":   strconv.Itoa(int(pin)),
				"label": dash(label),
				"pwm":   mark(pwm),
				"irq":   irq,
			}))
		}

		printTable(fmt.Sprintf("%s (%s, %s)", profile.Name(), profile.Family(), profile.MCU()), columns, rows)

		refs := make([]string, 0)
		for _, ref := range profile.AnalogReferences() {
			code, _ := profile.NativeReference(ref)
			refs = append(refs, fmt.Sprintf("%s=%d", ref, code))
		}
		fmt.Printf("%s %s\n", styles.InfoStyle.Render("Analog references:"), strings.Join(refs, " "))
		fmt.Printf("%s %s\n", styles.InfoStyle.Render("Tone:"), styles.Mark(profile.Family().SupportsTone()))
	},
}

func init() {
	rootCmd.AddCommand(pinsCmd)

	pinsCmd.Flags().BoolP("all", "a", false, "Include pins without any special capability")
}

// boardPins returns every digital pin plus analog pins numbered past the
// digital range, in ascending order.
func boardPins(p board.Profile) []board.Pin {
	pins := make([]board.Pin, 0, p.DigitalPins())
	for i := 0; i < p.DigitalPins(); i++ {
		pins = append(pins, board.Pin(i))
	}
	for _, pin := range slices.Concat(p.Pins().AnalogInputs(), p.Pins().AnalogOutputs()) {
		if !slices.Contains(pins, pin) {
			pins = append(pins, pin)
		}
	}
	slices.Sort(pins)
	return pins
}

// pinLabel names the analog roles of pin, e.g. "A0" or "A0/DAC0".
func pinLabel(t *board.PinTable, pin board.Pin) (string, bool) {
	var labels []string
	if i := slices.Index(t.AnalogInputs(), pin); i >= 0 {
		labels = append(labels, "A"+strconv.Itoa(i))
	}
	if i := slices.Index(t.AnalogOutputs(), pin); i >= 0 {
		labels = append(labels, "DAC"+strconv.Itoa(i))
	}
	return strings.Join(labels, "/"), len(labels) > 0
}
