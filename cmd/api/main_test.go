package main

import (
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "churnpredictor/internal/config"
    "churnpredictor/pkg/utils"
)

func TestInstallLogger_SingleFileLogger(t *testing.T) {
    file := filepath.Join(t.TempDir(), "logs", "api.log")

    logger, err := installLogger(config.LogConfig{Level: "info", File: file})
    require.NoError(t, err)
    assert.Same(t, logger, utils.Logger())

    logger.Info("started")
    _ = logger.Sync()

    b, err := os.ReadFile(file)
    require.NoError(t, err)
    assert.Equal(t, 1, strings.Count(string(b), `"msg":"started"`))
}

func TestInstallLogger_BadLevel(t *testing.T) {
    _, err := installLogger(config.LogConfig{Level: "loud"})
    assert.Error(t, err)
}
