/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	board "github.com/allbin/go-board"
	"github.com/allbin/go-board/internal/tui/styles"
)

var (
	cfgFile string
	logger  = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "boardctl",
		ReportTimestamp: true,
	})
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boardctl",
	Short: "Inspect board profiles and talk to serial ports",
	Long: `boardctl inspects the capability tables of microcontroller boards and
exercises serial ports through the same board layer that firmware uses.

Board profiles are built in (uno, mega2560, leonardo, due, zero, mkrzero)
or loaded from YAML files with --profile-dir.

Settings are read from flags, BOARDCTL_* environment variables and
$HOME/.boardctl.yaml, in that order of precedence:

  board: leonardo
  profile_dir: ~/boards
  baud: 115200
  format: 8N1`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.boardctl.yaml)")
	flags.StringP("board", "B", "uno", "Board profile name")
	flags.String("profile-dir", "", "Directory of additional *.yaml board profiles")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")

	cobra.CheckErr(viper.BindPFlag("board", flags.Lookup("board")))
	cobra.CheckErr(viper.BindPFlag("profile_dir", flags.Lookup("profile-dir")))
	cobra.CheckErr(viper.BindPFlag("verbose", flags.Lookup("verbose")))

	viper.SetDefault("baud", board.DefaultConfig().BaudRate)
	viper.SetDefault("format", board.DefaultConfig().Format.String())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".boardctl")
	}

	viper.SetEnvPrefix("boardctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// exitOnError prints err in the error style and exits.
func exitOnError(context string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", styles.ErrorStyle.Render("✗"), context, err)
	os.Exit(1)
}

// loadedProfiles returns the profiles in the configured profile directory.
func loadedProfiles() ([]board.Profile, error) {
	dir := viper.GetString("profile_dir")
	if dir == "" {
		return nil, nil
	}
	return board.LoadProfileDir(dir)
}

// selectedProfile resolves the configured board name, preferring loaded
// profiles over built-in ones.
func selectedProfile() (board.Profile, error) {
	name := viper.GetString("board")
	loaded, err := loadedProfiles()
	if err != nil {
		return board.Profile{}, err
	}
	for _, p := range loaded {
		if strings.EqualFold(p.Name(), name) {
			logger.Debug("using loaded profile", "board", p.Name())
			return p, nil
		}
	}
	return board.LookupProfile(strings.ToLower(name))
}

// serialSettings returns the baud rate and frame format from the command's
// flags, falling back to the configuration.
func serialSettings(cmd *cobra.Command) (uint32, board.SerialConfig, error) {
	baud, err := serialBaud(cmd)
	if err != nil {
		return 0, 0, err
	}
	format, err := serialFormat(cmd)
	if err != nil {
		return 0, 0, err
	}
	return baud, format, nil
}

func serialBaud(cmd *cobra.Command) (uint32, error) {
	baud := viper.GetUint32("baud")
	if cmd.Flags().Changed("baud") {
		baud, _ = cmd.Flags().GetUint32("baud")
	}
	if baud == 0 {
		return 0, board.ErrInvalidBaudRate
	}
	return baud, nil
}

func serialFormat(cmd *cobra.Command) (board.SerialConfig, error) {
	format := viper.GetString("format")
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	return board.ParseSerialConfig(format)
}

// addSerialFlags registers --baud and --format on cmd.
func addSerialFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32P("baud", "b", board.DefaultConfig().BaudRate, "Baud rate")
	cmd.Flags().StringP("format", "f", board.DefaultConfig().Format.String(), "Frame format, e.g. 8N1 or 7E2")
}
