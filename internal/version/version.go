// Package version holds the application version, set at build time with
// -ldflags "-X github.com/ndewijer/Investment-Tracker-Backend/internal/version.Version=...".
package version

// Version is the running application version.
var Version = "dev"
