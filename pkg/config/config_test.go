package config_test

import (
	"testing"
	"time"

	"github.com/limbo/cherries/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("CHERRIES_ENV_FILE", t.TempDir()+"/missing.env")
	t.Setenv("CHERRIES_API_URL", "http://localhost:8000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_COMPRESS", "true")
	t.Setenv("TOKEN_REFRESH_THRESHOLD", "20m")
	t.Setenv("BROKEN_INT", "three")

	cfg := config.New()
	assert.Equal(t, "http://localhost:8000", cfg.GetString("CHERRIES_API_URL"))
	assert.Equal(t, "file", cfg.GetStringOr("CHERRIES_SESSION_STORE", "file"))
	assert.Equal(t, 3, cfg.GetInt("REDIS_DB", 0))
	assert.Equal(t, 7, cfg.GetInt("BROKEN_INT", 7))
	assert.True(t, cfg.GetBool("LOG_COMPRESS", false))
	assert.Equal(t, 20*time.Minute, cfg.GetDuration("TOKEN_REFRESH_THRESHOLD", 15*time.Minute))
	assert.Equal(t, 15*time.Minute, cfg.GetDuration("UNSET_DURATION", 15*time.Minute))
}
