package version

// These variables are stamped at build time using -ldflags; the relay's
// version endpoint and the healthcheck read them. Defaults cover local
// development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
