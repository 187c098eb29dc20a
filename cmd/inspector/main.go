// Inspector - the showcase scene inside an ImGui window with the debug panel.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/scrollscene/internal/config"
	"github.com/Faultbox/scrollscene/internal/logger"
)

var captureDir = flag.String("captures", ".", "Directory for captured frames")

func main() {
	// OpenGL and ImGui calls must stay on the main thread.
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	insp, err := NewInspector(cfg, *captureDir)
	if err != nil {
		logger.Error("inspector failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer insp.Close()

	insp.Run()
}
