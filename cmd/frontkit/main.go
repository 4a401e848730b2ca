// Command frontkit runs the dev server, production build, preview server and
// test runner of a web frontend project.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/frontkit/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if err := newRootCmd(info).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
