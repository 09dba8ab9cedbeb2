package versioning

import "fmt"

// Embedded by --ldflags on build time.
// Version should follow the SemVer guidelines (https://semver.org/)
var (
	Version   = "v0.1.0-dev"
	Branch    string
	Commit    string
	BuildTime string
)

// String returns the version with the commit it was built from, when known
func String() string {
	if Commit == "" {
		return Version
	}

	return fmt.Sprintf("%s (%s)", Version, Commit)
}
