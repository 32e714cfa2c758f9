package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/lehigh-university-libraries/labelgrid/cmd"
)

// version is stamped by release builds with -ldflags "-X main.version=v1.2.3".
var version string

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(buildVersion(version, debug.ReadBuildInfo)),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// buildVersion prefers the stamped version, then the module version recorded
// by `go install module@version`, then "dev".
func buildVersion(stamped string, readInfo func() (*debug.BuildInfo, bool)) string {
	if stamped != "" {
		return stamped
	}
	if info, ok := readInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
