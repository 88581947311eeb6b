package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("DATABASE_DSN", "postgres://localhost/shifts")
	t.Setenv("INITIAL_ADMIN_PASSWORD", "secret")
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SEED_EMPLOYEE_PASSWORD", "secret")
	t.Setenv("EMAIL_SMTP_USERNAME", "mailer")
	t.Setenv("EMAIL_SMTP_PASSWORD", "secret")
	t.Setenv("EMAIL_SMTP_HOST", "smtp.example.com")
	t.Setenv("RABBITMQ_DSN", "amqp://localhost")
	t.Setenv("REDIS_PASSWORD", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, int32(0), cfg.InitialSite.WeekStartDay)
	assert.Equal(t, 60, cfg.Generation.CompareTimeout)
	assert.Equal(t, 120, cfg.Generation.LockTTL)
}

func TestLoadConfig_WeekStartDayRange(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("INITIAL_SITE_WEEK_START_DAY", "6")
	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, int32(6), cfg.InitialSite.WeekStartDay)

	// 7 would make the week normalization loop spin forever downstream
	t.Setenv("INITIAL_SITE_WEEK_START_DAY", "7")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("INITIAL_SITE_WEEK_START_DAY", "-1")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MissingRequiredValue(t *testing.T) {
	setRequiredEnv(t)

	// t.Setenv records the original value for cleanup, the unset makes
	// the variable genuinely absent for the parse
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := LoadConfig()
	assert.Error(t, err)
}
