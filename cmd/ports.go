/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/styles"
)

// portsCmd represents the ports command
var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Show the serial ports and registry roles of a board",
	Long: `Show every serial peripheral of the selected board with its variant,
buffer sizes and the number of frame formats it accepts, followed by the
registry roles and the peripheral each one resolves to.

Example usage:
  boardctl ports --board leonardo`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		profile, err := selectedProfile()
		exitOnError("Error selecting board", err)

		columns := []table.Column{
			table.NewColumn("name", "Peripheral", 10),
			table.NewColumn("variant", "Variant", 8),
			table.NewColumn("roles", "Roles", 36),
			table.NewColumn("rx", "RX", 4),
			table.NewColumn("tx", "TX", 4),
			table.NewColumn("formats", "Formats", 7),
		}
		rows := make([]table.Row, 0, len(profile.Ports()))
		for _, spec := range profile.Ports() {
			roles := make([]string, 0, len(spec.Roles))
			for _, r := range spec.Roles {
				roles = append(roles, r.String())
			}
			rows = append(rows, table.NewRow(table.RowData{
				"name":    spec.Name,
				"variant": table.NewStyledCell(spec.Variant.String(), styles.VariantStyle(spec.Variant)),
				"roles":   dash(strings.Join(roles, ", ")),
				"rx":      strconv.Itoa(spec.RXBuffer),
				"tx":      strconv.Itoa(spec.TXBuffer),
				"formats": fmt.Sprintf("%d/%d", acceptedFormats(spec.Variant), len(board.AllSerialConfigs())),
			}))
		}
		printTable(profile.Name()+" serial ports", columns, rows)

		roleColumns := []table.Column{
			table.NewColumn("role", "Role", 14),
			table.NewColumn("port", "Peripheral", 10),
			table.NewColumn("present", "Present", 7),
		}
		roleRows := make([]table.Row, 0)
		for _, role := range board.AllPortRoles() {
			name, ok := profile.RolePort(role)
			roleRows = append(roleRows, table.NewRow(table.RowData{
				"role":    role.String(),
				"port":    dash(name),
				"present": mark(ok),
			}))
		}
		printTable("Registry", roleColumns, roleRows)
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func acceptedFormats(v board.Variant) int {
	n := 0
	for _, c := range board.AllSerialConfigs() {
		if v.Accepts(c) {
			n++
		}
	}
	return n
}
