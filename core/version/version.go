package version

// Version is overridden at build time with -ldflags "-X .../core/version.Version=...".
var Version = "dev"
