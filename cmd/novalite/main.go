package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuannm99/novalite/internal"
	"github.com/tuannm99/novalite/internal/heap"
	"github.com/tuannm99/novalite/internal/inspect"
	"github.com/tuannm99/novalite/internal/repl"
)

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `usage:
  novalite [flags] [db-file]          interactive prompt
  novalite [flags] inspect <db-file>  print the page layout and exit

flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := internal.NewLogger(cfg.Log.Level, os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) > 0 && args[0] == "inspect" {
		if len(args) != 2 {
			flag.Usage()
			os.Exit(2)
		}
		if err := runInspect(args[1]); err != nil {
			log.Fatalf("inspect: %v", err)
		}
		return
	}

	path := cfg.Storage.Path
	if len(args) > 0 {
		path = args[0]
	}

	tbl, err := heap.OpenWithOptions(path, heap.Options{SyncOnClose: cfg.Storage.SyncOnClose})
	if err != nil {
		log.Fatalf("open table: %v", err)
	}

	rl, err := repl.NewReadline(cfg.REPL.Prompt, cfg.REPL.HistoryFile)
	if err != nil {
		_ = tbl.Close()
		log.Fatalf("%v", err)
	}

	// SIGTERM closes the input; the loop then flushes the table itself.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		_ = rl.Close()
	}()

	if err := repl.New(tbl, rl, rl.Stdout(), logger).Run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func runInspect(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	tbl, err := heap.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := tbl.Close(); err != nil {
			slog.Warn("inspect: close table", "err", err)
		}
	}()

	return inspect.Render(os.Stdout, tbl.Stats())
}
