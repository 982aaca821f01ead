package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Covenantcli",
	Run: func(cmd *cobra.Command, args []string) {
		jww.FEEDBACK.Printf("Covenantcli v%s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
	},
}
