package cli

import (
	"fmt"
	"os"

	"github.com/revlog-project/revlog/internal/repo"
	"github.com/revlog-project/revlog/pkg/color"
	"github.com/revlog-project/revlog/pkg/config"
	"github.com/revlog-project/revlog/pkg/logging"
	"github.com/revlog-project/revlog/pkg/revlog"
)

// requireClient discovers the data root from CWD, configures logging from
// its config, and opens a client. Exits with an error message on failure.
func requireClient() *revlog.Client {
	cwd, err := os.Getwd()
	if err != nil {
		fmtErr("cannot get current directory: %v", err)
		os.Exit(1)
	}

	r, err := repo.Discover(cwd)
	if err != nil {
		fmtErr("not a revlog data root: %v (run 'revlog init' first)", err)
		os.Exit(1)
	}

	cfg, err := config.Load(r.Root)
	if err != nil {
		fmtErr("load config: %v", err)
		os.Exit(1)
	}
	logging.SetGlobal(logging.New(
		logging.Level(cfg.Logging.Level),
		logging.Format(cfg.Logging.Format),
	))

	client, err := revlog.Open(cwd, revlog.Options{})
	if err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
	return client
}

func fmtErr(format string, args ...any) {
	prefix := "revlog: "
	if color.Enabled() {
		prefix = color.Error("revlog:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
