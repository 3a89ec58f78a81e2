package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/saarthak-dev/medtimer/internal/api"
	"github.com/saarthak-dev/medtimer/internal/cli"
	"github.com/saarthak-dev/medtimer/internal/config"
	"github.com/saarthak-dev/medtimer/internal/medicine"
	"github.com/saarthak-dev/medtimer/internal/storage"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	dataDir    = flag.String("data", "", "Path to data directory")
	version    = "dev"
)

func main() {
	// Handle subcommands before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list", "ls", "add", "edit", "take", "delete", "rm", "stats", "export":
			runCommand(os.Args[1], os.Args[2:])
			return
		case "help", "--help", "-h":
			cli.PrintHelp()
			return
		case "version", "--version", "-v":
			fmt.Printf("MedTimer version %s\n", version)
			return
		}
	}

	flag.Parse()
	runServer()
}

func runServer() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, st := setup(logger, *configPath, *dataDir)

	logger.Info("Starting MedTimer",
		zap.String("version", version),
		zap.String("data_file", cfg.Storage.DataFile),
	)

	server := api.New(cfg, st, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down")
	if err := server.Shutdown(); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}

func runCommand(cmd string, args []string) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, st := setup(logger, "", "")

	switch cmd {
	case "list", "ls":
		cli.HandleList(st)
	case "add":
		cli.HandleAdd(st, args)
	case "edit":
		cli.HandleEdit(st, args)
	case "take":
		cli.HandleTake(st, args)
	case "delete", "rm":
		cli.HandleDelete(st, args)
	case "stats":
		cli.HandleStats(st)
	case "export":
		cli.HandleExport(st, cfg, args)
	}
}

func setup(logger *zap.Logger, configPath, dataDir string) (*config.Config, *medicine.Store) {
	cfg, err := config.Load(configPath, dataDir)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	gateway := storage.NewFileGateway(cfg.Storage.DataFile)

	// A corrupt data file falls back to an empty store; the warning is
	// already logged inside NewStore.
	st, _ := medicine.NewStore(gateway, logger)
	return cfg, st
}
