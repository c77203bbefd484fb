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

var (
	allVariants = []board.Variant{board.VariantUART, board.VariantUSART, board.VariantUSBCDC}
	allFamilies = []board.Family{board.FamilyAVR, board.FamilySAM, board.FamilySAMD}
)

// formatsCmd represents the formats command
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Show the frame formats accepted by each serial variant",
	Long: `Show all 24 serial frame formats, whether each variant accepts it and
the native configuration value each family passes to its begin call.

Example usage:
  boardctl formats
  boardctl formats --variant uart`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var only board.Variant
		if v, _ := cmd.Flags().GetString("variant"); v != "" {
			parsed, err := board.ParseVariant(v)
			exitOnError("Error parsing variant", err)
			only = parsed
		}

		columns := []table.Column{
			table.NewColumn("config", "Format", 6),
			table.NewColumn("bits", "Bits", 4),
			table.NewColumn("parity", "Parity", 6),
			table.NewColumn("stop", "Stop", 4),
		}
		for _, v := range allVariants {
			columns = append(columns, table.NewColumn(v.String(), v.String(), 7))
		}
		for _, f := range allFamilies {
			columns = append(columns, table.NewColumn(f.String(), f.String(), 6))
		}

		rows := make([]table.Row, 0, len(board.AllSerialConfigs()))
		for _, c := range board.AllSerialConfigs() {
			if only != 0 && !only.Accepts(c) {
				continue
			}
			ff := c.Format()
			data := table.RowData{
				"config": c.String(),
				"bits":   strconv.Itoa(ff.DataBits),
				"parity": ff.Parity.String(),
				"stop":   strconv.Itoa(ff.StopBits),
			}
			for _, v := range allVariants {
				data[v.String()] = mark(v.Accepts(c))
			}
			for _, f := range allFamilies {
				native, _ := f.NativeSerialConfig(c)
				data[f.String()] = native.String()
			}
			rows = append(rows, table.NewRow(data))
		}

		printTable("Serial frame formats", columns, rows)
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)

	formatsCmd.Flags().String("variant", "", "Only show formats accepted by this variant (uart, usart, usb-cdc)")
}
