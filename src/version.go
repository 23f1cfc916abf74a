package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Report module version and VCS revision (PrintVersion).
 *		Neither cmd/ binary calls it.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'github.com/kb9vic/framesync/src.Version=X'"`.
var Version string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return defaultValue
}

// PrintVersion writes a one-line version banner to stdout, plus the full
// build info when verbose is set.
func PrintVersion(verbose bool) {
	buildInfo, _ := debug.ReadBuildInfo()

	buildTimeStr := getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")

	var (
		buildCommit               = getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
		buildDirtyStr             = getBuildSettingOrDefault(buildInfo, "vcs.modified", "INVALID")
		buildDirty, buildDirtyErr = strconv.ParseBool(buildDirtyStr)
	)

	if buildDirty {
		buildCommit += "-DIRTY"
	} else if buildDirtyErr != nil {
		fmt.Printf("Error parsing vcs.modified, got %s, %s\n", buildDirtyStr, buildDirtyErr)
		buildCommit += "-UNKNOWNDIRTY"
	}

	version := Version
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("framesync - Version %s (revision %s, built at %s)\n", version, buildCommit, buildTimeStr)

	if verbose {
		fmt.Printf("\nBuildInfo: %+v\n", buildInfo)
	}
}
