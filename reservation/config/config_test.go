package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/hotel-reservation/reservation/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", config.WithLogLevel(zapcore.DebugLevel), config.WithWriteTimeout(time.Minute))
	require.NoError(t, err)
	require.Equal(t, config.StoragePostgres, cfg.Storage)
	require.Equal(t, "8070", cfg.Server.Port)
	require.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	require.Equal(t, zapcore.DebugLevel, cfg.Log.LogLevel)
	require.Equal(t, "reservation", cfg.Kafka.Topic)
	require.False(t, cfg.Kafka.Enabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	const file = `
storage: sqlite
server:
  port: "9000"
sqlite:
  path: ${HOTEL_TEST_DIR}/hotel.db
kafka:
  addrs: ["kafka:9092"]
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(file), 0o600))
	t.Setenv("HOTEL_TEST_DIR", "/var/lib")
	t.Setenv("RESERVATION_HTTP_PORT", "9100")
	t.Setenv("REDIS_TTL", "30s")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.StorageSQLite, cfg.Storage)
	require.Equal(t, "/var/lib/hotel.db", cfg.SQLite.Path)
	require.Equal(t, "9100", cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Redis.TTL)
	require.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Addrs)
	require.Equal(t, zapcore.WarnLevel, cfg.Log.LogLevel)
}

func TestLoad_UnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "mongo")
	_, err := config.Load("")
	require.EqualError(t, err, `unknown storage "mongo"`)
}
