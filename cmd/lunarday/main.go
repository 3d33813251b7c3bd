package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/lunarday/internal/app"
	"github.com/chrissnell/lunarday/internal/log"
	"github.com/chrissnell/lunarday/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "lunarday.yaml", "Path to the YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("lunarday %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), *cfgFile); err != nil {
		os.Exit(1)
	}
}

// run loads the configuration and serves until shutdown. The logger is
// flushed and the provider closed before it returns.
func run(ctx context.Context, cfgFile string) error {
	defer log.Sync()

	provider, err := loadConfig(cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		return err
	}
	defer provider.Close()

	// Create and run the application
	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(ctx); err != nil {
		log.Errorf("Application error: %v", err)
		return err
	}
	return nil
}

// loadConfig opens the YAML provider and reads it once so that a broken file
// is reported before anything starts
func loadConfig(cfgFile string) (config.ConfigProvider, error) {
	filename, _ := filepath.Abs(cfgFile)

	provider := config.NewYAMLProvider(filename)
	if _, err := provider.LoadConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return provider, nil
}
