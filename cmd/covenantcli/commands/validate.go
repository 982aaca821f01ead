package commands

import (
	stdjson "encoding/json"
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/tokenizando/covenant/errors"
	"github.com/tokenizando/covenant/protocol/bc"
	"github.com/tokenizando/covenant/protocol/validation"
	"github.com/tokenizando/covenant/util"
)

var validateJournal bool

var validateCmd = &cobra.Command{
	Use:   "validate <request file>",
	Short: "Validate a proposed covenant spend from a JSON request file",
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJournal, "journal", false, "Record the verdict in the journal database")
}

// verdictOut is the printed outcome of one validation. Classification
// names the rejection root; Detail carries the annotations attached
// along the rejection path.
type verdictOut struct {
	Accepted       bool    `json:"accepted"`
	Classification string  `json:"classification,omitempty"`
	Error          string  `json:"error,omitempty"`
	Detail         string  `json:"detail,omitempty"`
	Digest         bc.Hash `json:"digest"`
}

func runValidate(cmd *cobra.Command, args []string) {
	rawData, err := ioutil.ReadFile(args[0])
	if err != nil {
		jww.ERROR.Println("validate:", err)
		os.Exit(util.ErrLocalExe)
	}

	ins := &spendIns{}
	if err := stdjson.Unmarshal(rawData, ins); err != nil {
		jww.ERROR.Println("parsing request file:", err)
		os.Exit(util.ErrLocalParse)
	}
	ctx, req := ins.toSpend()

	issuerKey, err := config.IssuerPubKey()
	if err != nil {
		jww.ERROR.Println("validate:", err)
		os.Exit(util.ErrLocalExe)
	}
	validator, err := validation.NewValidator(issuerKey, activeNetParams())
	if err != nil {
		jww.ERROR.Println("validate:", err)
		os.Exit(util.ErrLocalExe)
	}

	verdict := validator.Validate(ctx, req)
	digest, err := bc.SpendDigest(ctx, req)
	if err != nil {
		jww.ERROR.Println("computing spend digest:", err)
		os.Exit(util.ErrLocalExe)
	}

	if validateJournal && !config.Journal.Disable {
		saveVerdict(ctx, req, verdict)
	}

	out := &verdictOut{Accepted: verdict == nil, Digest: digest}
	if verdict != nil {
		out.Classification = classify(verdict)
		out.Error = verdict.Error()
		out.Detail = errors.Detail(verdict)
	}
	printJSON(out)

	if verdict != nil {
		os.Exit(util.ErrRejected)
	}
}

var validateBatchCmd = &cobra.Command{
	Use:   "validate-batch <request file>",
	Short: "Validate a JSON array of proposed spends concurrently",
	Args:  cobra.ExactArgs(1),
	Run:   runValidateBatch,
}

func runValidateBatch(cmd *cobra.Command, args []string) {
	rawData, err := ioutil.ReadFile(args[0])
	if err != nil {
		jww.ERROR.Println("validate-batch:", err)
		os.Exit(util.ErrLocalExe)
	}

	var ins []*spendIns
	if err := stdjson.Unmarshal(rawData, &ins); err != nil {
		jww.ERROR.Println("parsing request file:", err)
		os.Exit(util.ErrLocalParse)
	}

	issuerKey, err := config.IssuerPubKey()
	if err != nil {
		jww.ERROR.Println("validate-batch:", err)
		os.Exit(util.ErrLocalExe)
	}
	validator, err := validation.NewValidator(issuerKey, activeNetParams())
	if err != nil {
		jww.ERROR.Println("validate-batch:", err)
		os.Exit(util.ErrLocalExe)
	}
	caching := validation.NewCachingValidator(validator, config.Validator.CacheSize)

	spends := make([]*validation.Spend, 0, len(ins))
	for _, in := range ins {
		ctx, req := in.toSpend()
		spends = append(spends, &validation.Spend{Ctx: ctx, Req: req})
	}

	rejected := false
	outs := make([]*verdictOut, len(spends))
	for i, result := range caching.ValidateBatch(spends) {
		digest, err := bc.SpendDigest(spends[i].Ctx, spends[i].Req)
		if err != nil {
			jww.ERROR.Println("computing spend digest:", err)
			os.Exit(util.ErrLocalExe)
		}

		out := &verdictOut{Accepted: result.GetError() == nil, Digest: digest}
		if verdict := result.GetError(); verdict != nil {
			rejected = true
			out.Classification = classify(verdict)
			out.Error = verdict.Error()
			out.Detail = errors.Detail(verdict)
		}
		outs[i] = out
	}
	printJSON(outs)

	if rejected {
		os.Exit(util.ErrRejected)
	}
}

func saveVerdict(ctx *bc.SpendContext, req *bc.SpendRequest, verdict error) {
	j := openJournal()
	defer j.DB.Close()

	entry, err := j.Save(ctx, req, verdict)
	if err != nil {
		jww.ERROR.Println("recording verdict:", err)
		os.Exit(util.ErrLocalExe)
	}
	log.WithFields(log.Fields{
		"module":   logModule,
		"digest":   entry.Digest.String(),
		"accepted": entry.Accepted,
	}).Info("verdict recorded")
}
