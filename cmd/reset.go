/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/allbin/go-board/internal/hostserial"
	"github.com/allbin/go-board/internal/tui/styles"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset <port>",
	Short: "Reset the board behind a serial port",
	Long: `Reset the board connected to a serial port.

Methods:
- dtr (default): pulse DTR low. Boards with a USB-serial bridge (uno,
  mega2560) reset on the falling edge.
- touch: open at 1200 baud and close. Boards with native USB (leonardo,
  zero, mkrzero) enter their bootloader.
- usb: USB-level reset of the device. Needs the usbreset utility from
  usbutils and root. The device re-enumerates and its path may change;
  use --serial to select it by serial number instead.

Examples:
  boardctl reset /dev/ttyUSB0
  boardctl reset /dev/ttyACM0 --method touch
  sudo boardctl reset --method usb --serial NC7ILXW1`,
	Args: func(cmd *cobra.Command, args []string) error {
		serialFlag, _ := cmd.Flags().GetString("serial")
		if serialFlag == "" && len(args) != 1 {
			return errors.New("requires either a port path argument or --serial flag")
		}
		if serialFlag != "" && len(args) > 0 {
			return errors.New("cannot specify both port path and --serial flag")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		method, _ := cmd.Flags().GetString("method")
		serialFlag, _ := cmd.Flags().GetString("serial")
		width, _ := cmd.Flags().GetDuration("width")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if serialFlag != "" && method != "usb" {
			exitOnError("Error", errors.New("--serial requires --method usb"))
		}

		var err error
		switch method {
		case "dtr", "touch":
			err = resetTTY(ctx, args[0], method, width)
		case "usb":
			err = resetUSB(ctx, args, serialFlag)
		default:
			err = fmt.Errorf("unknown method %q", method)
		}
		if errors.Is(err, hostserial.ErrUSBInfoNotAvailable) {
			fmt.Fprintln(os.Stderr, "This device does not appear to be a USB device")
		}
		if errors.Is(err, hostserial.ErrUSBResetNotAvailable) {
			fmt.Fprintln(os.Stderr, "Install usbreset with: sudo apt-get install usbutils")
		}
		exitOnError("Error", err)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().StringP("method", "m", "dtr", "Reset method: dtr, touch, usb")
	resetCmd.Flags().StringP("serial", "s", "", "Reset USB device by serial number")
	resetCmd.Flags().Duration("width", 100*time.Millisecond, "DTR pulse width")
}

func resetTTY(ctx context.Context, portPath, method string, width time.Duration) error {
	_, drv, err := hostserial.NewBoard([]string{portPath}, logger)
	if err != nil {
		return err
	}
	devices := hostserial.DevicesFromPaths([]string{portPath})
	tty, _ := drv.TTY(devices[0].Name)

	if method == "touch" {
		fmt.Printf("Touching %s at 1200 baud\n", portPath)
		if err := hostserial.TouchReset(ctx, tty); err != nil {
			return err
		}
		fmt.Println(styles.SuccessStyle.Render("✓") + " Bootloader requested; the port may re-enumerate")
		return nil
	}

	fmt.Printf("Pulsing DTR on %s for %v\n", portPath, width)
	if err := hostserial.PulseReset(ctx, tty, width); err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render("✓") + " Board reset")
	return nil
}

func resetUSB(ctx context.Context, args []string, serialNumber string) error {
	if !hostserial.IsUSBResetAvailable() {
		return hostserial.ErrUSBResetNotAvailable
	}
	if serialNumber != "" {
		fmt.Printf("Resetting USB device with serial: %s\n", serialNumber)
		if err := hostserial.ResetUSBDeviceBySerial(ctx, serialNumber); err != nil {
			return err
		}
	} else {
		fmt.Printf("Resetting USB device: %s\n", args[0])
		if err := hostserial.ResetUSBDevice(ctx, args[0]); err != nil {
			return err
		}
	}
	fmt.Println(styles.SuccessStyle.Render("✓") + " USB device reset successfully")
	fmt.Println("Device will re-enumerate (port path may change)")
	fmt.Println("\nUse 'boardctl list --table' to see updated device list")
	return nil
}
