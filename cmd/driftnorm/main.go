package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/field-logger/driftnorm/internal/api"
	"github.com/field-logger/driftnorm/internal/config"
	"github.com/field-logger/driftnorm/internal/emit"
	"github.com/field-logger/driftnorm/internal/logging"
	"github.com/field-logger/driftnorm/internal/pipeline"
	"github.com/field-logger/driftnorm/internal/store"
)

// Version info (set during build)
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		offset     = flag.Int("offset", 0, "timezone offset hours (overrides config)")
		output     = flag.String("o", "", "write CSV to file instead of stdout")
		dbPath     = flag.String("db", "", "also write readings into a DuckDB file")
		cacheDir   = flag.String("cache", "", "directory for the parse cache")
		serveAddr  = flag.String("serve", "", "serve the result over HTTP on this address")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 1
	}
	dir := flag.Arg(0)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		usage()
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "driftnorm: %v\n", err)
		return 1
	}

	// Flags beat config file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "offset":
			cfg.OffsetHours = *offset
		case "db":
			cfg.DuckDBPath = *dbPath
		case "cache":
			cfg.CacheDir = *cacheDir
		case "serve":
			cfg.ServeAddr = *serveAddr
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "driftnorm: building logger: %v\n", err)
		return 1
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.New().String()))

	p, err := pipeline.New(cfg, log)
	if err != nil {
		log.Error("initializing pipeline", zap.Error(err))
		return 1
	}

	result, err := p.Run(dir)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return 1
	}

	if err := writeCSV(result, *output); err != nil {
		log.Error("writing CSV", zap.Error(err))
		return 1
	}

	if cfg.DuckDBPath != "" {
		if err := writeDuckDB(result, cfg.DuckDBPath, log); err != nil {
			log.Error("writing DuckDB", zap.Error(err))
			return 1
		}
	}

	if cfg.ServeAddr != "" {
		h := api.NewHandler(result, Version)
		e := api.NewServer(h)
		log.Info("serving result", zap.String("addr", cfg.ServeAddr))
		if err := e.Start(cfg.ServeAddr); err != nil {
			log.Error("server stopped", zap.Error(err))
			return 1
		}
	}

	return 0
}

func writeCSV(result *pipeline.Result, output string) error {
	if output == "" {
		return emit.WriteCSV(os.Stdout, result.Timeline)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := emit.WriteCSV(f, result.Timeline); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDuckDB(result *pipeline.Result, dbPath string, log *zap.Logger) error {
	db, err := store.NewDuckStore(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.WriteTimeline(result.Timeline)
	if err != nil {
		return err
	}
	log.Info("readings stored", zap.String("db", dbPath), zap.Int("rows", n))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "USAGE: %s [flags] FOLDER\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Normalizes the logger files in FOLDER and writes CSV to stdout.\n\n")
	flag.PrintDefaults()
}
