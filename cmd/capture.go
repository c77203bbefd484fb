/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/hostserial"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture <port> <output-file>",
	Short: "Capture serial data to a file",
	Long: `Capture incoming serial data to a file for later parsing.

Reads from the specified serial port and writes the bytes unchanged to
the output file. Runs until interrupted (Ctrl+C) or until --bytes bytes
have been captured.

The output file is opened in append mode, allowing you to resume captures
without overwriting existing data.

Example usage:
  boardctl capture /dev/ttyUSB0 data.log
  boardctl capture /dev/ttyUSB0 output.txt --baud 9600 --format 7E1
  boardctl capture /dev/ttyACM0 capture.log --console --bytes 4096`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		portPath, outputPath := args[0], args[1]

		baud, format, err := serialSettings(cmd)
		exitOnError("Error parsing serial settings", err)
		bufferSize, _ := cmd.Flags().GetInt("buffer")
		showConsole, _ := cmd.Flags().GetBool("console")
		limit, _ := cmd.Flags().GetInt64("bytes")

		b, drv, err := hostserial.NewBoard([]string{portPath}, logger)
		exitOnError("Error", err)
		port, _ := b.Console()
		err = port.Open(
			board.WithBaudRate(baud),
			board.WithFormat(format),
			board.WithTimeout(100*time.Millisecond),
		)
		exitOnError("Error opening port", err)
		defer port.End()
		if !port.Ready() {
			tty, _ := drv.TTY(port.Name())
			exitOnError("Error opening port", tty.Err())
		}

		file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		exitOnError("Error opening output file", err)
		defer file.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "Capturing data from %s to %s\n", portPath, outputPath)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n\n")

		var console io.Writer
		if showConsole {
			console = os.Stdout
		}

		start := time.Now()
		n, err := capture(ctx, port, file, console, bufferSize, limit)
		fmt.Fprintf(os.Stderr, "\nCapture complete: %d bytes written in %v\n", n, time.Since(start).Round(time.Millisecond))
		if err != nil {
			port.End()
			file.Close()
			exitOnError("Error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)

	addSerialFlags(captureCmd)
	captureCmd.Flags().Int("buffer", 4096, "Read buffer size")
	captureCmd.Flags().BoolP("console", "c", false, "Display incoming data on console while capturing")
	captureCmd.Flags().Int64("bytes", 0, "Stop after this many bytes (0 for no limit)")
}

// capture copies from r to w until ctx is done, r fails or limit bytes
// have been copied. Read timeouts are not failures. A non-nil console
// receives a copy of the data.
func capture(ctx context.Context, r io.Reader, w, console io.Writer, bufferSize int, limit int64) (int64, error) {
	if console != nil {
		w = io.MultiWriter(w, console)
	}
	buf := make([]byte, max(bufferSize, 1))
	var total int64
	for ctx.Err() == nil {
		chunk := buf
		if limit > 0 {
			if total >= limit {
				break
			}
			chunk = buf[:min(int64(len(buf)), limit-total)]
		}

		n, err := r.Read(chunk)
		if n > 0 {
			if _, werr := w.Write(chunk[:n]); werr != nil {
				return total, fmt.Errorf("write error: %w", werr)
			}
			total += int64(n)
		}
		if err != nil && !errors.Is(err, board.ErrReadTimeout) {
			return total, fmt.Errorf("read error: %w", err)
		}
	}
	return total, nil
}
