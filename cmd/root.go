package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/brk3/mindtrack/internal/apiclient"
	"github.com/brk3/mindtrack/internal/config"
	"github.com/brk3/mindtrack/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mindtrack",
	Short: "Log daily habits and keep your streak going",
	Long: `
	MindTrack records which habits you completed each day and derives your current
	streak, your most consistent habit and a few gentle suggestions from that log.
	Run "mindtrack server" to start the backend; the other commands talk to it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(viper.GetString("config"))
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if v := viper.GetString("log-level"); v != "" {
			c.LogLevel = v
		}
		if v := viper.GetString("api-base"); v != "" {
			c.APIBaseURL = v
		}
		if v := viper.GetString("token"); v != "" {
			c.AuthToken = v
		}
		if err := logger.Setup(c.LogLevel, c.LogFormat); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML config file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("api-base", "", "base URL of the MindTrack server")
	pf.String("token", "", "bearer token for the MindTrack server")

	for _, name := range []string{"config", "log-level", "api-base", "token"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
	viper.SetEnvPrefix("MINDTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newClient() *apiclient.Client {
	return apiclient.New(cfg.APIBaseURL, cfg.AuthToken)
}
