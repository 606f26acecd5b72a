package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-register/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":              "",
		"REPORT_DIR":        "",
		"REORDER_THRESHOLD": "",
	})
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "reports", cfg.ReportDir)
	require.Equal(t, 10, cfg.ReorderThreshold)
	require.Equal(t, "tokoregister", cfg.MetricsNamespace)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":                 "9090",
		"REPORT_DIR":           "/tmp/reports",
		"REORDER_THRESHOLD":    "5",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test",
		"OBS_LOG_FORMAT":       "console",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "/tmp/reports", cfg.ReportDir)
	require.Equal(t, 5, cfg.ReorderThreshold)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsNonPositiveThreshold(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"REORDER_THRESHOLD": "0",
	})
	require.Error(t, err)
}
