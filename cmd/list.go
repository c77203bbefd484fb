/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"

	"github.com/allbin/go-board/internal/hostserial"
	"github.com/allbin/go-board/internal/tui/styles"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List host serial ports",
	Long: `List the serial devices of this computer that connect can open.

This command scans for communication-capable serial devices including:
- USB serial adapters (ttyUSB*)
- USB CDC/ACM devices (ttyACM*), shown as the usb-cdc variant
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)
- And other platform-specific serial devices

Virtual terminals and pseudo-terminals are excluded from the listing.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := hostserial.ListPorts()
		exitOnError("Error listing ports", err)

		filterType, _ := cmd.Flags().GetString("filter")
		tableFormat, _ := cmd.Flags().GetBool("table")
		details, _ := cmd.Flags().GetBool("details")

		infos := filterPorts(portInfos(ports), filterType)
		if len(infos) == 0 {
			if filterType != "" {
				fmt.Printf("No serial ports found matching filter: %s\n", filterType)
			} else {
				fmt.Println("No serial ports found")
			}
			return
		}

		switch {
		case details:
			renderDetails(infos)
		case tableFormat:
			renderPortTable(infos)
		default:
			for _, info := range infos {
				fmt.Println(info.Path)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("filter", "f", "", "Filter by port type: usb, standard, arm, all")
	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("details", "d", false, "Show USB identification for every port")
}

func portInfos(ports []string) []hostserial.PortInfo {
	infos := make([]hostserial.PortInfo, 0, len(ports))
	for _, port := range ports {
		info, err := hostserial.GetPortInfo(port)
		if err != nil {
			logger.Debug("skipping port", "path", port, "err", err)
			continue
		}
		infos = append(infos, *info)
	}
	return infos
}

// filterPorts filters the port list based on the specified filter type
func filterPorts(infos []hostserial.PortInfo, filterType string) []hostserial.PortInfo {
	filterType = strings.ToLower(filterType)
	if filterType == "" || filterType == "all" {
		return infos
	}

	var filtered []hostserial.PortInfo
	for _, info := range infos {
		name := strings.ToLower(info.Name)
		var keep bool
		switch filterType {
		case "usb":
			keep = strings.HasPrefix(name, "ttyusb") || strings.HasPrefix(name, "ttyacm")
		case "standard":
			keep = strings.HasPrefix(name, "ttys")
		case "arm":
			keep = strings.HasPrefix(name, "ttyama")
		}
		if keep {
			filtered = append(filtered, info)
		}
	}
	return filtered
}

func renderPortTable(infos []hostserial.PortInfo) {
	columns := []table.Column{
		table.NewColumn("path", "Port", 16),
		table.NewColumn("variant", "Variant", 8),
		table.NewColumn("desc", "Description", 22),
		table.NewColumn("usb", "USB ID", 9),
	}
	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		usbID := ""
		if info.VendorID != "" {
			usbID = info.VendorID + ":" + info.ProductID
		}
		rows = append(rows, table.NewRow(table.RowData{
			"path":    info.Path,
			"variant": table.NewStyledCell(info.Variant.String(), styles.VariantStyle(info.Variant)),
			"desc":    info.Description,
			"usb":     dash(usbID),
		}))
	}
	printTable(fmt.Sprintf("Found %d serial port(s)", len(infos)), columns, rows)
}

func renderDetails(infos []hostserial.PortInfo) {
	for _, info := range infos {
		fmt.Println(styles.TitleStyle.Render(info.Path))
		fields := []struct{ label, value string }{
			{"Description", info.Description},
			{"Variant", info.Variant.String()},
			{"Manufacturer", info.Manufacturer},
			{"Product", info.Product},
			{"Serial", info.SerialNumber},
			{"Vendor:Product", strings.Trim(info.VendorID+":"+info.ProductID, ":")},
			{"Interface", info.InterfaceNumber},
			{"Bus/Device", strings.Trim(info.BusNumber+"/"+info.DeviceNumber, "/")},
		}
		for _, f := range fields {
			fmt.Fprintf(os.Stdout, "  %-15s %s\n", styles.MutedStyle.Render(f.label), dash(f.value))
		}
		fmt.Println()
	}
}
