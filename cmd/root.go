package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dorkx-sec/dorkx-cli/internal/application"
	"github.com/dorkx-sec/dorkx-cli/internal/search"
)

var cfgFile string
var logger *zap.SugaredLogger
var operator string
var dataDir string
var reportDir string
var app *application.Container

var rootCmd = &cobra.Command{
	Use:   "dorkx",
	Short: "Search-engine reconnaissance for authorized security assessments",
	Long: `dorkx runs curated search-engine queries against a target domain you are
authorized to assess, classifies what it finds by risk, and produces
reports. It performs passive reconnaissance only: no packets are sent to
the target itself.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".dorkx-cli")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("DORKX")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()
		dataDir = viper.GetString("data_dir")
		if dataDir == "" {
			dataDir = "./data"
		}
		reportDir = viper.GetString("report_dir")
		if reportDir == "" {
			reportDir = "./reports"
		}

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		// ensure operator is set (via flag or env default)
		if operator == "" {
			if env := os.Getenv("USER"); env != "" {
				operator = env
			} else if env := os.Getenv("LOGNAME"); env != "" {
				operator = env
			}
		}
		if operator == "" {
			return fmt.Errorf("operator identity is required (use --operator or set USER env)")
		}

		if abs, err := filepath.Abs(dataDir); err == nil {
			dataDir = abs
		}
		if abs, err := filepath.Abs(reportDir); err == nil {
			reportDir = abs
		}

		container, err := application.NewContainer(application.Config{
			DataDir:        dataDir,
			ReportDir:      reportDir,
			Credentials:    credentialsFromConfig(),
			MaxResults:     viper.GetInt("max_results"),
			BlockedTLDs:    viper.GetStringSlice("blocked_tlds"),
			BlockedDomains: viper.GetStringSlice("blocked_domains"),
			Logger:         logger,
		})
		if err != nil {
			return err
		}
		app = container

		logger.Infof("operator=%s data_dir=%s", operator, dataDir)
		return nil
	},
}

// credentialsFromConfig reads the primary and secondary Custom Search
// credential pairs. Missing or placeholder values leave the provider
// unconfigured; scans then produce synthetic findings.
func credentialsFromConfig() []search.Credential {
	creds := []search.Credential{
		{
			APIKey: viper.GetString("google_api_key"),
			CSEID:  viper.GetString("google_cse_id"),
		},
		{
			APIKey: viper.GetString("google_api_key_secondary"),
			CSEID:  viper.GetString("google_cse_id_secondary"),
		},
	}
	out := make([]search.Credential, 0, len(creds))
	for _, c := range creds {
		if c.APIKey != "" || c.CSEID != "" {
			out = append(out, c)
		}
	}
	return out
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dorkx-cli.yaml)")

	// operator persistent flag (default from USER env)
	defaultOperator := os.Getenv("USER")
	rootCmd.PersistentFlags().StringVarP(&operator, "operator", "o", defaultOperator, "operator name (or set via USER env)")

	// add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}
