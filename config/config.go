package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/tokenizando/covenant/errors"
)

// ErrBadIssuerKey is returned when the configured issuer key does not
// decode to an ed25519 public key.
var ErrBadIssuerKey = errors.New("bad issuer key in config")

type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`
	// Options for services
	Validator *ValidatorConfig `mapstructure:"validator"`
	Journal   *JournalConfig   `mapstructure:"journal"`
}

// Default configurable parameters.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig: DefaultBaseConfig(),
		Validator:  DefaultValidatorConfig(),
		Journal:    DefaultJournalConfig(),
	}
}

// Set the RootDir for all Config structs
func (cfg *Config) SetRoot(root string) *Config {
	cfg.BaseConfig.RootDir = root
	return cfg
}

// IssuerPubKey decodes the configured issuer key into the ed25519
// public key freeze actions verify against.
func (cfg *Config) IssuerPubKey() (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(cfg.Validator.IssuerKey)
	if err != nil {
		return nil, errors.Sub(ErrBadIssuerKey, err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, errors.WithDetailf(ErrBadIssuerKey, "got %d bytes, want %d", len(key), ed25519.PublicKeySize)
	}
	return key, nil
}

//-----------------------------------------------------------------------------
// BaseConfig
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	//The ID of the network to json
	ChainID string `mapstructure:"chain_id"`

	//log level to set
	LogLevel string `mapstructure:"log_level"`

	// Database backend: leveldb | memdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_dir"`

	// log file name
	LogFile string `mapstructure:"log_file"`
}

// Default configurable base parameters.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		ChainID:   "mainnet",
		LogLevel:  "info",
		DBBackend: "leveldb",
		DBPath:    "data",
		LogFile:   "log",
	}
}

func (b BaseConfig) DBDir() string {
	return rootify(b.DBPath, b.RootDir)
}

func (b BaseConfig) LogDir() string {
	return rootify(b.LogFile, b.RootDir)
}

// ValidatorConfig holds the token-class parameters the validator is
// constructed with.
type ValidatorConfig struct {
	// IssuerKey is the hex form of the token class's issuer public key.
	IssuerKey string `mapstructure:"issuer_key"`

	// CacheSize bounds the verdict cache entry count.
	CacheSize int `mapstructure:"cache_size"`
}

// Default configurable validator parameters.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		CacheSize: 4096,
	}
}

// JournalConfig controls verdict persistence.
type JournalConfig struct {
	Disable bool `mapstructure:"disable"`
}

// Default configurable journal parameters.
func DefaultJournalConfig() *JournalConfig {
	return &JournalConfig{
		Disable: false,
	}
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// DefaultDataDir is the default data directory to use for the databases and other
// persistence requirements.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := homeDir()
	if home == "" {
		return "./.covenant"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Covenant")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Covenant")
	default:
		return filepath.Join(home, ".covenant")
	}
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
