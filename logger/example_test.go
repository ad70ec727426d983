package logger_test

import (
	"fmt"

	"github.com/coronaengine/corona-log/logger"
)

// Initialise the process-wide logger, log through the package-level
// functions and shut down on exit.
func Example() {
	cfg := logger.DefaultConfig()
	cfg.Pattern = "[%n][%l] %v"
	cfg.Color = "never"

	if err := logger.Init(cfg); err != nil {
		fmt.Println(err)
		return
	}
	defer logger.Shutdown()

	logger.Tracef("not shown at the default level")
	logger.Debugf("loading %s", "scene.bin")
	logger.Warnf("frame took %dms", 48)

	// Output:
	// [Corona][debug] loading scene.bin
	// [Corona][warning] frame took 48ms
}

// Change the threshold at runtime.
func ExampleSetLevel() {
	cfg := logger.DefaultConfig()
	cfg.Pattern = "%L %v"
	cfg.Color = "never"
	if err := logger.Init(cfg); err != nil {
		fmt.Println(err)
		return
	}
	defer logger.Shutdown()

	logger.SetLevel(logger.ErrorLevel)
	logger.Infof("hidden")
	logger.Errorf("shader %q failed to compile", "bloom")
	fmt.Println(logger.GetLevel())

	// Output:
	// E shader "bloom" failed to compile
	// error
}

// Use log/slog on top of a Logger.
func ExampleLogger_Slog() {
	cfg := logger.DefaultConfig()
	cfg.Pattern = "%l %v"
	cfg.Color = "never"
	l, err := logger.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer l.Shutdown()

	l.Slog().Info("player joined", "id", 7, "name", "ada")

	// Output:
	// info player joined id=7 name=ada
}
