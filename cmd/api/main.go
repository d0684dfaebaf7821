package main

import (
    "context"
    "errors"
    "flag"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "go.uber.org/zap"
    "golang.org/x/sync/errgroup"

    "churnpredictor/internal/api"
    "churnpredictor/internal/artifacts"
    "churnpredictor/internal/churn"
    "churnpredictor/internal/config"
    "churnpredictor/internal/metrics"
    "churnpredictor/pkg/utils"
)

func main() {
    configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "YAML or TOML config file")
    var override artifacts.Paths
    flag.StringVar(&override.Classifier, "classifier", "", "classifier artifact (overrides config)")
    flag.StringVar(&override.GenderEncoder, "gender-encoder", "", "Gender label encoder artifact (overrides config)")
    flag.StringVar(&override.GeographyEncoder, "geography-encoder", "", "Geography one-hot encoder artifact (overrides config)")
    flag.StringVar(&override.Scaler, "scaler", "", "scaler artifact (overrides config)")
    flag.Parse()

    cfg, err := config.Load(*configPath)
    if err != nil {
        fallback, _ := zap.NewProduction()
        fallback.Fatal("load config", zap.Error(err))
    }
    cfg.OverridePaths(override)

    logger, err := installLogger(cfg.Log)
    if err != nil {
        fallback, _ := zap.NewProduction()
        fallback.Fatal("build logger", zap.Error(err), zap.String("file", cfg.Log.File))
    }
    defer logger.Sync()

    bundle, err := artifacts.Load(cfg.ArtifactPaths())
    if err != nil { logger.Fatal("load artifacts", zap.Error(err)) }
    logArtifacts(logger, bundle)

    reg := prometheus.NewRegistry()
    reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    rec := metrics.New(reg)

    svc := churn.NewService(bundle, rec, logger)
    gin.SetMode(cfg.Server.Mode)
    router := api.NewRouter(svc, api.Options{
        APIKey:         cfg.Server.APIKey,
        Logger:         logger,
        Metrics:        rec,
        MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
    })

    srv := &http.Server{
        Addr:              cfg.Address(),
        Handler:           router,
        ReadHeaderTimeout: 10 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        logger.Info("listening", zap.String("addr", srv.Addr), zap.Bool("api_key", cfg.Server.APIKey != ""))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) { return err }
        return nil
    })
    g.Go(func() error {
        <-gctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        logger.Info("shutting down")
        return srv.Shutdown(shutdownCtx)
    })
    if err := g.Wait(); err != nil { logger.Fatal("server", zap.Error(err)) }
}

// installLogger builds the only process logger from the loaded config, so
// LOG_FILE is opened once.
func installLogger(lc config.LogConfig) (*zap.Logger, error) {
    logger, err := utils.NewLogger(lc.Level, lc.File)
    if err != nil { return nil, err }
    utils.SetLogger(logger)
    return logger, nil
}

func logArtifacts(logger *zap.Logger, b *artifacts.Bundle) {
    p := b.Paths()
    logger.Info("artifact loaded", zap.String("artifact", "classifier"), zap.String("path", p.Classifier),
        zap.String("model", b.Classifier().Name()), zap.Int("input_dim", b.Classifier().InputDim()))
    logger.Info("artifact loaded", zap.String("artifact", "gender_encoder"), zap.String("path", p.GenderEncoder),
        zap.Strings("classes", b.GenderEncoder().Classes()))
    logger.Info("artifact loaded", zap.String("artifact", "geography_encoder"), zap.String("path", p.GeographyEncoder),
        zap.Strings("categories", b.GeographyEncoder().Categories()))
    logger.Info("artifact loaded", zap.String("artifact", "scaler"), zap.String("path", p.Scaler),
        zap.Int("width", b.Scaler().Width()))
}
