package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/tokenizando/covenant/config"
)

var initFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the config directory for a network",
	Run:   initFiles,
}

func initFiles(cmd *cobra.Command, args []string) {
	chainID := viper.GetString("chain_id")
	cfg.EnsureRoot(config.RootDir, chainID)
	log.WithFields(log.Fields{
		"module":   logModule,
		"home":     config.RootDir,
		"chain_id": chainID,
	}).Info("initialized covenant validator")
}
