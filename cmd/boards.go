/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"strconv"

	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
)

// boardsCmd represents the boards command
var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List board profiles",
	Long: `List the built-in board profiles and any profiles loaded with
--profile-dir, with a summary of their capabilities.

The profile compiled in with a board_<name> build tag is marked with *.

Example usage:
  boardctl boards
  boardctl boards --profile-dir ./boards`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var profiles []board.Profile
		for _, name := range board.ProfileNames() {
			p, err := board.LookupProfile(name)
			exitOnError("Error loading built-in profile", err)
			profiles = append(profiles, p)
		}
		builtin := len(profiles)

		loaded, err := loadedProfiles()
		exitOnError("Error loading profiles", err)
		profiles = append(profiles, loaded...)

		active := board.ActiveProfile().Name()

		columns := []table.Column{
			table.NewColumn("active", "", 1),
			table.NewColumn("name", "Board", 12),
			table.NewColumn("family", "Family", 6),
			table.NewColumn("mcu", "MCU", 14),
			table.NewColumn("digital", "Digital", 7),
			table.NewColumn("ain", "A-In", 4),
			table.NewColumn("aout", "A-Out", 5),
			table.NewColumn("pwm", "PWM", 4),
			table.NewColumn("irq", "IRQ", 4),
			table.NewColumn("ports", "Ports", 5),
			table.NewColumn("source", "Source", 8),
		}

		rows := make([]table.Row, 0, len(profiles))
		for i, p := range profiles {
			pins := p.Pins()
			marker, source := "", "built-in"
			if i >= builtin {
				source = "file"
			} else if p.Name() == active {
				marker = "*"
			}
			rows = append(rows, table.NewRow(table.RowData{
				"active":  marker,
				"name":    p.Name(),
				"family":  p.Family().String(),
				"mcu":     p.MCU(),
				"digital": strconv.Itoa(p.DigitalPins()),
				"ain":     strconv.Itoa(pins.NumAnalogInputs()),
				"aout":    strconv.Itoa(pins.NumAnalogOutputs()),
				"pwm":     strconv.Itoa(len(pins.PWMPins())),
				"irq":     strconv.Itoa(len(pins.InterruptPins())),
				"ports":   strconv.Itoa(len(p.Ports())),
				"source":  source,
			}))
		}

		printTable("Boards", columns, rows)
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
