package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"loanrisk/applicant"
	lhttp "loanrisk/http"
	"loanrisk/logger"
	"loanrisk/ml"
	"loanrisk/risk"
)

type Config struct {
	Http struct {
		lhttp.ServerConfig `yaml:",inline"`
		ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	ML struct {
		ModelPath string `yaml:"model_path"`
	} `yaml:"ml"`
	Log logger.Config `yaml:"log"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	zlog, err := logger.New(config.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 3. Model, loaded once before anything is served
	model, err := ml.LoadModel(config.ML.ModelPath)
	if err != nil {
		zlog.Fatal("failed to load model", zap.String("path", config.ML.ModelPath), zap.Error(err))
	}
	if err := model.Schema().Check(applicant.ColumnNames()); err != nil {
		zlog.Warn("model schema does not match the applicant record", zap.Error(err))
	}
	zlog.Info("model loaded",
		zap.String("path", config.ML.ModelPath),
		zap.String("type", model.Type()),
		zap.Int("columns", len(model.Schema())),
	)

	predictor, err := risk.NewPredictor(model)
	if err != nil {
		zlog.Fatal("failed to build predictor", zap.Error(err))
	}

	// 4. HTTP server
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	server := lhttp.NewServer(config.Http.ServerConfig, lhttp.Deps{
		Predictor: predictor,
		Logger:    zlog,
		Metrics:   lhttp.NewMetrics(registry),
		Gatherer:  registry,
	})

	// 5. Run until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Http.ShutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Error("server exited with error", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	zlog.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	config.Http.ServerConfig = lhttp.DefaultServerConfig()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Http.ShutdownTimeout <= 0 {
		config.Http.ShutdownTimeout = 5 * time.Second
	}
	if config.ML.ModelPath == "" {
		config.ML.ModelPath = "models/loandefault.json"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}
