package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jroosing/gordap/internal/config"
	"github.com/jroosing/gordap/internal/logging"
	"github.com/jroosing/gordap/internal/server"
)

func main() {
	var (
		host        = flag.String("host", "", "Override API bind host")
		port        = flag.Int("port", 0, "Override API bind port")
		historyPath = flag.String("history", "", "Override lookup history database path (empty keeps config value)")
		jsonLogs    = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	loader := config.DefaultLoader()
	cfg, err := loader.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *historyPath != "" {
		cfg.API.HistoryPath = *historyPath
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       true,
	})

	runner := server.NewRunner(logger)
	if err := runner.Run(loader, server.StackOptions{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "rdapd exited with error: %v\n", err)
		os.Exit(1)
	}
}
