package config

import (
	"io/ioutil"
	"os"
	"path"
)

/****** these are for production settings ***********/
func EnsureRoot(rootDir string, network string) {
	ensureDir(rootDir)
	ensureDir(path.Join(rootDir, "data"))
	ensureDir(path.Join(rootDir, "log"))

	configFilePath := path.Join(rootDir, "config.toml")

	// Write default config file if missing.
	if !fileExists(configFilePath) {
		mustWriteFile(configFilePath, []byte(selectNetwork(network)), 0644)
	}
}

var defaultConfigTmpl = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml
db_backend = "leveldb"
log_level = "info"
`

var mainNetConfigTmpl = `chain_id = "mainnet"
[validator]
issuer_key = ""
cache_size = 4096
`

var testNetConfigTmpl = `chain_id = "testnet"
[validator]
issuer_key = ""
cache_size = 4096
`

var soloNetConfigTmpl = `chain_id = "solonet"
[validator]
issuer_key = ""
cache_size = 256
`

// Select network parameters to merge a new string.
func selectNetwork(network string) string {
	switch network {
	case "mainnet":
		return defaultConfigTmpl + mainNetConfigTmpl
	case "testnet":
		return defaultConfigTmpl + testNetConfigTmpl
	default:
		return defaultConfigTmpl + soloNetConfigTmpl
	}
}

func ensureDir(dir string) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		panic(err)
	}
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

func mustWriteFile(filePath string, contents []byte, mode os.FileMode) {
	if err := ioutil.WriteFile(filePath, contents, mode); err != nil {
		panic(err)
	}
}
