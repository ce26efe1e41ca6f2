// Package version holds the release marker written to and checked against
// the "# comet_version" line of every parameter file.
package version

import "strings"

// Release is the version string of this build.
const Release = "2023.01 rev. 2"

// GitSHA is injected at link time:
//
//	go build -ldflags "-X github.com/vk/cometgo/internal/version.GitSHA=$(git rev-parse HEAD)"
var GitSHA = ""

// compatible lists earlier release tokens whose parameter files are still
// accepted by this build.
var compatible = []string{
	"2023.01",
}

// String returns the release with the short commit hash appended when known.
func String() string {
	if GitSHA == "" {
		return Release
	}
	sha := GitSHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return Release + " (" + sha + ")"
}

// ReleaseToken returns the leading token of Release, e.g. "2023.01".
func ReleaseToken() string {
	fields := strings.Fields(Release)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsCompatible reports whether a parameter file stamped with ver can be read.
func IsCompatible(ver string) bool {
	if ver == "" {
		return false
	}
	if ver == ReleaseToken() {
		return true
	}
	for _, c := range compatible {
		if ver == c {
			return true
		}
	}
	return false
}
