package contract

import (
	"encoding/json"
	"sync"

	"github.com/tokenizando/covenant/crypto"
	dbm "github.com/tokenizando/covenant/database/leveldb"
	chainjson "github.com/tokenizando/covenant/encoding/json"
	"github.com/tokenizando/covenant/errors"
)

var ruleSuffixPrefix = []byte("RS:")

// pre-define errors for supporting covenant errorFormatter
var (
	ErrRuleDuplicated = errors.New("rule is duplicated")
	ErrRuleNotFound   = errors.New("rule not found")
)

// ruleKey return rule suffix key
func ruleKey(id chainjson.HexBytes) []byte {
	return append(ruleSuffixPrefix, id[:]...)
}

// RuleID is the identity of an immutable rule suffix, its short digest.
func RuleID(suffix []byte) chainjson.HexBytes {
	return crypto.Hash160(suffix)
}

// Registry tracks and stores known covenant rule suffixes.
type Registry struct {
	db     dbm.DB
	ruleMu sync.Mutex
}

//NewRegistry create new registry
func NewRegistry(db dbm.DB) *Registry {
	return &Registry{
		db: db,
	}
}

//Rule describe a registered covenant rule suffix
type Rule struct {
	ID     chainjson.HexBytes `json:"id"`
	Alias  string             `json:"alias"`
	Suffix chainjson.HexBytes `json:"suffix"`
}

// SaveRule save a rule suffix under its short digest
func (reg *Registry) SaveRule(rule *Rule) error {
	reg.ruleMu.Lock()
	defer reg.ruleMu.Unlock()

	if len(rule.ID) == 0 {
		rule.ID = RuleID(rule.Suffix)
	}

	key := ruleKey(rule.ID)
	if existRule := reg.db.Get(key); existRule != nil {
		return ErrRuleDuplicated
	}

	rawRule, err := json.Marshal(rule)
	if err != nil {
		return err
	}

	reg.db.Set(key, rawRule)
	return nil
}

//UpdateRuleAlias updates the alias of a registered rule
func (reg *Registry) UpdateRuleAlias(id chainjson.HexBytes, alias string) error {
	reg.ruleMu.Lock()
	defer reg.ruleMu.Unlock()

	rule, err := reg.GetRule(id)
	if err != nil {
		return err
	}

	rule.Alias = alias
	rawRule, err := json.Marshal(rule)
	if err != nil {
		return err
	}

	reg.db.Set(ruleKey(id), rawRule)
	return nil
}

// GetRule get a registered rule by id
func (reg *Registry) GetRule(id chainjson.HexBytes) (*Rule, error) {
	rule := &Rule{}
	if rawRule := reg.db.Get(ruleKey(id)); rawRule != nil {
		return rule, json.Unmarshal(rawRule, rule)
	}
	return nil, ErrRuleNotFound
}

// GetRuleBySuffix get a registered rule by its suffix bytes
func (reg *Registry) GetRuleBySuffix(suffix []byte) (*Rule, error) {
	return reg.GetRule(RuleID(suffix))
}

// ListRules returns all registered rules
func (reg *Registry) ListRules() ([]*Rule, error) {
	rules := []*Rule{}
	ruleIter := reg.db.IteratorPrefix(ruleSuffixPrefix)
	defer ruleIter.Release()

	for ruleIter.Next() {
		rule := &Rule{}
		if err := json.Unmarshal(ruleIter.Value(), rule); err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}
	return rules, nil
}
