package version

// version is overridden at build time with -ldflags "-X wstore/pkg/version.version=...".
var version = "dev"

// Version reports the build version printed by the -version flag.
func Version() string {
	return version
}
