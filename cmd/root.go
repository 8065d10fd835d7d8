/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portwatch",
	Short: "Watch USB serial ports come and go",
	Long: `portwatch lists the serial ports attached to this machine and watches
for USB serial adapters being plugged in and out.

Ports are read from sysfs when possible, with device names, vendor and
product IDs. When sysfs has nothing to offer the plain /dev listing is used
instead, so the list never goes blank.

Examples:
  portwatch list
  portwatch info /dev/ttyUSB0
  portwatch monitor --interval 2s
  portwatch watch`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.portwatch.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-output", "", "Log output: stderr, stdout, file, none (default: stderr, file for watch)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path when --log-output=file (default: $TMPDIR/portwatch.log)")
	rootCmd.PersistentFlags().String("dev-dir", "/dev", "Directory scanned for serial device nodes")
	rootCmd.PersistentFlags().String("sysfs-root", "/sys", "Sysfs mount point used for device metadata")
	rootCmd.PersistentFlags().Duration("rich-timeout", defaultRichTimeout, "Deadline for the sysfs scan before falling back to /dev (0 = none)")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "Include non-USB serial ports")

	for _, name := range []string{"log-level", "log-output", "log-file", "dev-dir", "sysfs-root", "rich-timeout", "all"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".portwatch" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".portwatch")
	}

	viper.SetEnvPrefix("PORTWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
