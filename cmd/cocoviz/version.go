package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags. Whatever is left blank is filled from
// the binary's embedded build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildDetails is the resolved version metadata printed by the version
// command.
type buildDetails struct {
	version string
	commit  string
	date    string
}

// resolveBuildDetails merges ldflags values with debug.ReadBuildInfo,
// ldflags winning per field.
func resolveBuildDetails() buildDetails {
	d := buildDetails{version: version, commit: commit, date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if d.version == "" {
			d.version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if d.commit == "" {
					d.commit = shortHash(s.Value)
				}
			case "vcs.time":
				if d.date == "" {
					d.date = s.Value
				}
			}
		}
	}

	if d.version == "" {
		d.version = "(devel)"
	}
	if d.commit == "" {
		d.commit = "unknown"
	}
	if d.date == "" {
		d.date = "unknown"
	}
	return d
}

// shortHash abbreviates a VCS revision to seven characters.
func shortHash(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string used for cobra's --version flag.
func getVersion() string {
	return resolveBuildDetails().version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of cocoviz.`,
		Run: func(cmd *cobra.Command, _ []string) {
			d := resolveBuildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "cocoviz version %s\n  commit: %s\n  built:  %s\n", d.version, d.commit, d.date)
		},
	}
}
