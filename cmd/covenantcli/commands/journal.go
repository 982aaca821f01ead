package commands

import (
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/database/journal"
	dbm "github.com/tokenizando/covenant/database/leveldb"
	"github.com/tokenizando/covenant/log"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/util"
)

var listJournalCmd = &cobra.Command{
	Use:   "list-journal",
	Short: "List the recorded validation verdicts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		j := openJournal()
		defer j.DB.Close()

		entries, err := j.List()
		if err != nil {
			jww.ERROR.Println("list-journal:", err)
			os.Exit(util.ErrLocalExe)
		}
		printJSON(entries)
	},
}

var deleteJournalCmd = &cobra.Command{
	Use:   "delete-journal <digest>",
	Short: "Delete the recorded verdict for a spend digest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var digest bc.Hash
		if err := digest.UnmarshalText([]byte(args[0])); err != nil {
			jww.ERROR.Println("delete-journal:", err)
			os.Exit(util.ErrLocalParse)
		}

		j := openJournal()
		defer j.DB.Close()

		if err := j.Delete(digest); err != nil {
			jww.ERROR.Println("delete-journal:", err)
			os.Exit(util.ErrLocalExe)
		}
		jww.FEEDBACK.Println("Successfully deleted journal entry")
	},
}

// openJournal opens the verdict journal under the configured data
// directory, routing logs to the home log directory on the way.
func openJournal() *journal.Journal {
	if err := log.InitLogFile(config); err != nil {
		jww.ERROR.Println("init log file:", err)
		os.Exit(util.ErrLocalExe)
	}

	db := dbm.NewDB("journal", config.DBBackend, config.DBDir())
	j, err := journal.NewJournal(db)
	if err != nil {
		jww.ERROR.Println("open journal:", err)
		os.Exit(util.ErrLocalExe)
	}
	return j
}
