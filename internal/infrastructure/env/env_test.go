package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvService_Defaults(t *testing.T) {
	t.Setenv(KeyMaxDepth, "")
	t.Setenv(KeyHeadless, "not-a-bool")
	t.Setenv(KeyTimeout, "soon")

	e := &EnvService{}

	assert.Equal(t, 10, e.GetInt(KeyMaxDepth, 10))
	assert.True(t, e.GetBool(KeyHeadless, true))
	assert.Equal(t, 5*time.Second, e.GetDuration(KeyTimeout, 5*time.Second))
	assert.Equal(t, "text", e.GetString(KeyReportFormat, "text"))
}

func TestEnvService_Values(t *testing.T) {
	t.Setenv(KeyMaxDepth, "4")
	t.Setenv(KeyHeadless, "false")
	t.Setenv(KeyTimeout, "250ms")
	t.Setenv(KeyReportFormat, "html")

	e := &EnvService{}

	assert.Equal(t, 4, e.GetInt(KeyMaxDepth, 10))
	assert.False(t, e.GetBool(KeyHeadless, true))
	assert.Equal(t, 250*time.Millisecond, e.GetDuration(KeyTimeout, time.Second))
	assert.Equal(t, "html", e.GetString(KeyReportFormat, "text"))
	assert.Equal(t, "html", e.Get(KeyReportFormat))
}

func TestNewEnvService_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INSPECT_URL=http://localhost:9000\nLOG_LEVEL=info\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("LOG_LEVEL=debug\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("APP_ENV", "test")
	// t.Setenv восстановит значения после теста; godotenv.Load не перезаписывает заданные.
	t.Setenv(KeyURL, "")
	t.Setenv(KeyLogLevel, "")
	require.NoError(t, os.Unsetenv(KeyURL))
	require.NoError(t, os.Unsetenv(KeyLogLevel))

	e := NewEnvService()

	assert.Equal(t, "http://localhost:9000", e.Get(KeyURL))
	assert.Equal(t, "debug", e.Get(KeyLogLevel), ".env.<APP_ENV> overrides .env")
}
