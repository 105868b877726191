package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Manu343726/micro8/cmd/cpu"
	"github.com/Manu343726/micro8/cmd/settings"
	"github.com/Manu343726/micro8/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var logCloser io.Closer

// rootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "micro8",
	Short: "An emulator for a tiny 8-bit computer",
	Long: `Micro8 emulates a small 8-bit computer: 256 bytes of memory, eight
general purpose registers and a CPU that runs either text assembly or packed
binary machine code.

This CLI is the entry point for the emulator, the assembler and the machine's interactive shell`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load(viper.GetViper())
		if err != nil {
			return err
		}

		logger, closer, err := settings.NewLogger(s.Log, os.Stderr)
		if err != nil {
			return err
		}

		settings.SetCurrent(s)
		settings.SetLogger(logger)
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	settings.SetDefaults(viper.GetViper())

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.micro8.yaml)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.BoolP("verbose", "v", false, "Start with the CPU verbose flag set")
	flags.Int("max-steps", settings.Current().CPU.MaxSteps, "Instruction budget of binary runs, 0 means unlimited")
	flags.Int("slot-size", 0, "Fixed instruction slot size in bytes, 0 packs instructions (use 4 for binaries laid out in 4 byte slots)")

	cobra.CheckErr(viper.BindPFlag(settings.KeyLogLevel, flags.Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag(settings.KeyLogFile, flags.Lookup("log-file")))
	cobra.CheckErr(viper.BindPFlag(settings.KeyCPUVerbose, flags.Lookup("verbose")))
	cobra.CheckErr(viper.BindPFlag(settings.KeyCPUMaxSteps, flags.Lookup("max-steps")))
	cobra.CheckErr(viper.BindPFlag(settings.KeyCPUSlotSize, flags.Lookup("slot-size")))

	RootCmd.AddCommand(cpu.CpuCmd, cpu.BootCmd, tools.ToolsCmd)
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

		// Search config in home directory with name ".micro8" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".micro8")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
