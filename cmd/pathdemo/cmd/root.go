package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	width        int
	height       int
	moveRate     int
	movesLeft    int
	mode         string
	jsonOut      bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:          "pathdemo",
	Short:        "pathdemo drives the pathcore engine over a toy grid",
	SilenceUsage: true,
	Long: `pathdemo builds a small rectangular grid world and runs the
pathcore engine's finders against it.

Examples:
  pathdemo route 0,0 5,5            Plan a route between two tiles
  pathdemo reachable 0,0            Show every tile reachable from a tile
  pathdemo bench --width 64 --height 64   Time a full lattice settle

Global Flags:
  --config string    scenario config file (default is $HOME/.pathdemo.yaml)
  --mode string       normal, danger, or fuel (default "normal")
  --json              output machine-readable JSON
  --verbose           print engine debug traces`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "scenario config file (default is $HOME/.pathdemo.yaml)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 10, "grid width")
	rootCmd.PersistentFlags().IntVar(&height, "height", 10, "grid height")
	rootCmd.PersistentFlags().IntVar(&moveRate, "move-rate", 3, "moves per turn")
	rootCmd.PersistentFlags().IntVar(&movesLeft, "moves-left", 3, "moves remaining at the start of the query")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "normal", "finder mode: normal, danger, or fuel")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print engine debug traces")

	viper.BindPFlag("width", rootCmd.PersistentFlags().Lookup("width"))
	viper.BindPFlag("height", rootCmd.PersistentFlags().Lookup("height"))
	viper.BindPFlag("move-rate", rootCmd.PersistentFlags().Lookup("move-rate"))
	viper.BindPFlag("moves-left", rootCmd.PersistentFlags().Lookup("moves-left"))
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pathdemo")
	}

	viper.SetEnvPrefix("PATHDEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && isVerbose() {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func isJSONOutput() bool { return viper.GetBool("json") }
func isVerbose() bool    { return viper.GetBool("verbose") }
