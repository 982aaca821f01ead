package version

import (
	gover "github.com/hashicorp/go-version"
)

var (
	// The full version string
	Version = "1.0.0"
	// GitCommit is set with --ldflags "-X main.gitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	if GitCommit != "" {
		Version += "-" + GitCommit[:8]
	}
}

// CompatibleWith checks whether data written by a binary at otherVerStr
// can be read by this one. Releases sharing a major version are
// compatible.
func CompatibleWith(otherVerStr string) (bool, error) {
	localVersion, err := gover.NewVersion(Version)
	if err != nil {
		return false, err
	}
	otherVersion, err := gover.NewVersion(otherVerStr)
	if err != nil {
		return false, err
	}
	return (localVersion.Segments()[0] == otherVersion.Segments()[0]), nil
}
