package commands

import (
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/contract"
	dbm "github.com/tokenizando/covenant/database/leveldb"
	chainjson "github.com/tokenizando/covenant/encoding/json"
	"github.com/tokenizando/covenant/protocol/covenant"
	"github.com/tokenizando/covenant/protocol/script"
	"github.com/tokenizando/covenant/util"
)

var registerRuleCmd = &cobra.Command{
	Use:   "register-rule <alias> <suffix>",
	Short: "Register a covenant rule suffix under an alias",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		rule := &contract.Rule{
			Alias:  args[0],
			Suffix: mustDecodeHex("suffix", args[1]),
		}

		reg, db := openRegistry()
		defer db.Close()

		if err := reg.SaveRule(rule); err != nil {
			jww.ERROR.Println("register-rule:", err)
			os.Exit(util.ErrLocalExe)
		}
		printJSON(rule)
	},
}

var listRulesCmd = &cobra.Command{
	Use:   "list-rules",
	Short: "List the registered covenant rule suffixes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reg, db := openRegistry()
		defer db.Close()

		rules, err := reg.ListRules()
		if err != nil {
			jww.ERROR.Println("list-rules:", err)
			os.Exit(util.ErrLocalExe)
		}
		printJSON(rules)
	},
}

var updateRuleAliasCmd = &cobra.Command{
	Use:   "update-rule-alias <id> <alias>",
	Short: "Update the alias of a registered rule",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := mustDecodeHex("rule id", args[0])

		reg, db := openRegistry()
		defer db.Close()

		if err := reg.UpdateRuleAlias(id, args[1]); err != nil {
			jww.ERROR.Println("update-rule-alias:", err)
			os.Exit(util.ErrLocalExe)
		}
		jww.FEEDBACK.Println("Successfully updated rule alias")
	},
}

var resolveLockCmd = &cobra.Command{
	Use:   "resolve-lock <lock>",
	Short: "Decode a lock program into its recognized shape and state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		lock := mustDecodeHex("lock", args[0])

		if fp, err := script.ParseFingerprint(lock); err == nil {
			printJSON(struct {
				Kind        string             `json:"kind"`
				Fingerprint chainjson.HexBytes `json:"fingerprint"`
			}{"pay-to-fingerprint", fp})
			return
		}
		if ch, err := script.ParseConditionHash(lock); err == nil {
			printJSON(struct {
				Kind          string             `json:"kind"`
				ConditionHash chainjson.HexBytes `json:"condition_hash"`
			}{"pay-to-condition-hash", ch})
			return
		}
		if script.IsUnspendable(lock) {
			printJSON(struct {
				Kind string             `json:"kind"`
				Body chainjson.HexBytes `json:"body"`
			}{"data-carrier", lock})
			return
		}
		if state, suffix, err := covenant.ResolveTokenLock(lock); err == nil {
			printJSON(struct {
				Kind      string             `json:"kind"`
				Frozen    bool               `json:"frozen"`
				Balance   uint64             `json:"balance"`
				OwnerHash chainjson.HexBytes `json:"owner_hash"`
				Suffix    chainjson.HexBytes `json:"suffix"`
				RuleAlias string             `json:"rule_alias,omitempty"`
			}{"token-coin", state.Frozen, state.Balance, state.OwnerHash, suffix, ruleAliasFor(suffix)})
			return
		}
		if ownerHash, suffix, err := covenant.ResolveVaultLock(lock); err == nil {
			printJSON(struct {
				Kind      string             `json:"kind"`
				OwnerHash chainjson.HexBytes `json:"owner_hash"`
				Suffix    chainjson.HexBytes `json:"suffix"`
				RuleAlias string             `json:"rule_alias,omitempty"`
			}{"vault-coin", ownerHash, suffix, ruleAliasFor(suffix)})
			return
		}

		jww.ERROR.Println("resolve-lock: unrecognized lock shape")
		os.Exit(util.ErrLocalParse)
	},
}

// openRegistry opens the rule registry under the configured data
// directory.
func openRegistry() (*contract.Registry, dbm.DB) {
	db := dbm.NewDB("registry", config.DBBackend, config.DBDir())
	return contract.NewRegistry(db), db
}

// ruleAliasFor looks the suffix up in the registry, best effort.
func ruleAliasFor(suffix []byte) string {
	reg, db := openRegistry()
	defer db.Close()

	rule, err := reg.GetRuleBySuffix(suffix)
	if err != nil {
		return ""
	}
	return rule.Alias
}
