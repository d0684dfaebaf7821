package main

import (
    "flag"
    "os"
    "path/filepath"
    "strings"

    "go.uber.org/zap"

    "churnpredictor/internal/artifacts"
    "churnpredictor/internal/config"
    "churnpredictor/pkg/utils"
)

func main() {
    logger := utils.Logger()
    defer logger.Sync()

    configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "YAML or TOML config file with the source artifact paths")
    outDir := flag.String("out", "models", "output directory")
    format := flag.String("format", "gob", "output format: gob|json|yaml")
    flag.Parse()

    ext := "." + strings.TrimPrefix(strings.ToLower(*format), ".")
    switch ext {
    case ".gob", ".json", ".yaml", ".yml":
    default:
        logger.Fatal("unsupported format", zap.String("format", *format))
    }

    cfg, err := config.Load(*configPath)
    if err != nil { logger.Fatal("load config", zap.Error(err)) }
    src := cfg.ArtifactPaths()

    set, err := artifacts.LoadSet(src)
    if err != nil { logger.Fatal("read artifacts", zap.Error(err)) }
    if _, err := set.Build(); err != nil { logger.Fatal("artifacts rejected", zap.Error(err)) }
    logger.Info("artifacts validated",
        zap.String("model", set.Classifier.Name),
        zap.String("kind", string(set.Classifier.Kind)),
        zap.Int("columns", len(set.Scaler.FeatureNames)))

    if err := os.MkdirAll(*outDir, 0o755); err != nil { logger.Fatal("create output dir", zap.Error(err)) }
    dst := artifacts.Paths{
        Classifier:       rename(*outDir, src.Classifier, ext),
        GenderEncoder:    rename(*outDir, src.GenderEncoder, ext),
        GeographyEncoder: rename(*outDir, src.GeographyEncoder, ext),
        Scaler:           rename(*outDir, src.Scaler, ext),
    }
    if err := artifacts.Save(dst, set); err != nil { logger.Fatal("write artifacts", zap.Error(err)) }

    // Read the new files back through the same path the server uses.
    if _, err := artifacts.Load(dst); err != nil { logger.Fatal("written artifacts do not load", zap.Error(err)) }
    logger.Info("artifacts written",
        zap.String("classifier", dst.Classifier),
        zap.String("gender_encoder", dst.GenderEncoder),
        zap.String("geography_encoder", dst.GeographyEncoder),
        zap.String("scaler", dst.Scaler))
}

func rename(dir, path, ext string) string {
    base := filepath.Base(path)
    return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}
