package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/log"
	"github.com/urfave/cli"
)

var logger = log.New("renderfarm")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// Name of the log file kept next to the outputs of a shard run.
func runLogName(sub, total int, started time.Time) string {
	return fmt.Sprintf("log.render.sub%02d.tot%d.%s.txt", sub, total, started.Format("06-01-02_15-04-05"))
}

// Tee all log output to a run log below the target root. The caller must
// close the returned file once the run completes.
func openRunLog(cfg *config.Config, started time.Time) (*os.File, error) {
	if err := os.MkdirAll(cfg.TargetRoot, 0o755); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(cfg.TargetRoot, runLogName(cfg.Sub, cfg.Total, started)))
	if err != nil {
		return nil, err
	}

	log.SetSinks(log.Stream(os.Stdout), log.File(f))
	return f, nil
}

// Detach the run log and restore the default sink.
func closeRunLog(f *os.File) {
	log.SetSink(os.Stdout)
	f.Close()
}

// Name of the logger used for scene progress of a run.
func runLoggerName(cfg *config.Config) string {
	return "render_" + filepath.Base(filepath.Clean(cfg.TargetRoot))
}
