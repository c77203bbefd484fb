/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/hostserial"
	"github.com/allbin/go-board/internal/tui/components"
	"github.com/allbin/go-board/internal/tui/styles"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [data] <port>",
	Short: "Send data to a serial port",
	Long: `Send data to a host serial port through the board serial layer.

Data can be provided as:
- Command line argument: boardctl send "Hello World" /dev/ttyUSB0
- From stdin (pipe): echo "test data" | boardctl send /dev/ttyUSB0
- Interactive mode: boardctl send /dev/ttyUSB0 (prompts for input)

The port is opened with --baud and --format. ttyACM devices are USB CDC
ports and accept every frame format; the framing is ignored by the device.

Example usage:
  boardctl send "Hello World" /dev/ttyUSB0
  boardctl send "AT+GMR" /dev/ttyUSB0 --newline --baud 115200
  boardctl send --hex "02 06 00 03" /dev/ttyACM0 --format 8E1
  echo "test" | boardctl send /dev/ttyUSB0`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var data, portPath string

		if len(args) == 1 {
			portPath = args[0]
			stat, err := os.Stdin.Stat()
			if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
				data = promptForData()
			} else {
				stdinData, err := io.ReadAll(os.Stdin)
				exitOnError("Error reading from stdin", err)
				data = strings.TrimRight(string(stdinData), "\r\n")
			}
		} else {
			data, portPath = args[0], args[1]
		}

		baud, format, err := serialSettings(cmd)
		exitOnError("Error parsing serial settings", err)
		addNewline, _ := cmd.Flags().GetBool("newline")
		hexMode, _ := cmd.Flags().GetBool("hex")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		payload := []byte(data)
		if hexMode {
			payload, err = components.ParseHex(data)
			exitOnError("Invalid hex data", err)
		} else if addNewline {
			payload = append(payload, '\n')
		}

		exitOnError("Error", sendData(portPath, payload,
			board.WithBaudRate(baud),
			board.WithFormat(format),
			board.WithTimeout(timeout),
		))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	addSerialFlags(sendCmd)
	sendCmd.Flags().BoolP("newline", "n", false, "Add newline character to the end of data")
	sendCmd.Flags().BoolP("hex", "x", false, "Interpret data as hexadecimal (e.g., '48656c6c6f' for 'Hello')")
	sendCmd.Flags().DurationP("timeout", "t", 5*time.Second, "Timeout for sending data")
}

func promptForData() string {
	fmt.Print(styles.InfoStyle.Render("Enter data to send: "))

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}

func sendData(portPath string, data []byte, opts ...board.Option) error {
	b, drv, err := hostserial.NewBoard([]string{portPath}, logger)
	if err != nil {
		return err
	}
	port, _ := b.Console()

	fmt.Printf("%s Opening %s...\n", styles.InfoStyle.Render("⚡"), portPath)
	if err := port.Open(opts...); err != nil {
		return err
	}
	defer port.End()
	if !port.Ready() {
		tty, _ := drv.TTY(port.Name())
		return tty.Err()
	}

	fmt.Printf("%s Opened at %d baud %v (%v)\n", styles.SuccessStyle.Render("✓"),
		port.BaudRate(), port.Format(), port.Variant())
	fmt.Printf("%s Sending %d bytes...\n", styles.InfoStyle.Render("📤"), len(data))

	if err := port.WriteAll(data); err != nil {
		return fmt.Errorf("failed to send data: %w", err)
	}
	port.Flush()

	fmt.Printf("%s Successfully sent %d bytes\n", styles.SuccessStyle.Render("✓"), len(data))

	preview := data
	if len(preview) > 50 {
		preview = preview[:50]
	}
	fmt.Printf("%s Data: %s\n", styles.InfoStyle.Render("📋"), components.Printable(preview))
	return nil
}
