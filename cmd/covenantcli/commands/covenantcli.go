package commands

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/tokenizando/covenant/config"
	"github.com/tokenizando/covenant/consensus"
	"github.com/tokenizando/covenant/util"
)

const logModule = "cli"

var config = cfg.DefaultConfig()

// CovenantcliCmd is covenantcli's root command.
// Every other command attached to CovenantcliCmd is a child command to it.
var CovenantcliCmd = &cobra.Command{
	Use:   "covenantcli",
	Short: "Covenantcli validates and inspects covenant token spends",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if err := consensus.InitActiveNetParams(config.ChainID); err != nil {
			return err
		}
		setLogLevel(config.LogLevel)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			cmd.Usage()
		}
	},
}

func init() {
	CovenantcliCmd.PersistentFlags().String("home", cfg.DefaultDataDir(), "root directory for config and data")
	CovenantcliCmd.PersistentFlags().String("chain_id", config.ChainID, "select network type")
	CovenantcliCmd.PersistentFlags().String("log_level", config.LogLevel, "select log level(debug, info, warn, error or fatal)")
	viper.BindPFlag("home", CovenantcliCmd.PersistentFlags().Lookup("home"))
	viper.BindPFlag("chain_id", CovenantcliCmd.PersistentFlags().Lookup("chain_id"))
	viper.BindPFlag("log_level", CovenantcliCmd.PersistentFlags().Lookup("log_level"))
}

// loadConfig merges the config file under the home directory, when one
// exists, with the flag and default values already in viper.
func loadConfig() error {
	home := viper.GetString("home")
	pathParts := strings.SplitN(home, "/", 2)
	if len(pathParts) == 2 && (pathParts[0] == "~" || pathParts[0] == "$HOME") {
		usr, err := user.Current()
		if err != nil {
			return err
		}
		pathParts[0] = usr.HomeDir
		home = strings.Join(pathParts, "/")
	}

	configFile := filepath.Join(home, "config.toml")
	if _, err := os.Stat(configFile); err == nil {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return err
	}
	config.SetRoot(home)
	return nil
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// Execute adds all child commands to the root command CovenantcliCmd
// and sets flags appropriately.
func Execute() {
	AddCommands()

	if _, err := CovenantcliCmd.ExecuteC(); err != nil {
		os.Exit(util.ErrLocalExe)
	}
}

// AddCommands adds child commands to the root command CovenantcliCmd.
func AddCommands() {
	CovenantcliCmd.AddCommand(initFilesCmd)

	CovenantcliCmd.AddCommand(validateCmd)
	CovenantcliCmd.AddCommand(validateBatchCmd)

	CovenantcliCmd.AddCommand(reconstructTransferCmd)
	CovenantcliCmd.AddCommand(reconstructFreezeCmd)
	CovenantcliCmd.AddCommand(reconstructSweepCmd)
	CovenantcliCmd.AddCommand(reconstructRevokeCmd)
	CovenantcliCmd.AddCommand(decodeOutputCmd)
	CovenantcliCmd.AddCommand(decodeRecordCmd)
	CovenantcliCmd.AddCommand(resolveLockCmd)

	CovenantcliCmd.AddCommand(fingerprintCmd)

	CovenantcliCmd.AddCommand(registerRuleCmd)
	CovenantcliCmd.AddCommand(listRulesCmd)
	CovenantcliCmd.AddCommand(updateRuleAliasCmd)

	CovenantcliCmd.AddCommand(listJournalCmd)
	CovenantcliCmd.AddCommand(deleteJournalCmd)

	CovenantcliCmd.AddCommand(versionCmd)
}
