package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "ndictl",
	Short: "Discover, send, and receive NDI streams",
	Long: `ndictl works with NDI streams on the local network: it discovers
advertised sources, transmits synthesized test patterns, and inspects the
frames a source delivers.

The NDI runtime must be installed; set NDILIB_REDIST_FOLDER when it lives
outside the default library search path.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("groups", "", "Comma-separated NDI groups")
	rootCmd.PersistentFlags().String("extra-ips", "", "Comma-separated extra IPs to query directly")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("groups", rootCmd.PersistentFlags().Lookup("groups"))
	viper.BindPFlag("extra_ips", rootCmd.PersistentFlags().Lookup("extra-ips"))

	rootCmd.AddCommand(NewFindCommand())
	rootCmd.AddCommand(NewSendCommand())
	rootCmd.AddCommand(NewRecvCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// initConfig loads ~/.config/ndictl/config.yaml and NDICTL_* environment
// variables. Both are optional; flags win.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "ndictl"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("ndictl")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}
