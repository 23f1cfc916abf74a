package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Package-wide structured logger, shared by every component
 *		that would otherwise reach for the teacher's text_color_set/
 *		dw_printf pair.
 *
 *---------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-level structured logger. Components log frame
// detection, debug trace writes, relay events and front-end/rig/GPIO
// warnings through it (FEC correction outcomes are not logged),
// the same way the teacher's modules call into its global text-color
// functions.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "framesync",
})

func init() {
	log.SetDefault(Logger)
}

// SetLogLevel adjusts the package logger's verbosity. levelName is one of
// "debug", "info", "warn", "error" (case-insensitive); an unrecognized
// name leaves the level unchanged and returns an error.
func SetLogLevel(levelName string) error {
	lvl, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}
