package providers

import (
	"comicbot/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Discord: structures.DiscordConfig{
			Token:              "token",
			BroadcastChannelID: "123",
			CommandPrefix:      "!",
		},
		Catalog: structures.CatalogConfig{
			BaseURL:   "https://comicvine.gamespot.com/api",
			APIKey:    "key",
			UserAgent: "MyComicBot/1.0",
			Timeout:   10 * time.Second,
		},
		Selector: structures.SelectorConfig{
			PageSize: 5,
			Timeout:  60 * time.Second,
		},
		Scheduler: structures.SchedulerConfig{
			Interval: time.Minute,
			NotifyAt: "08:00",
			Timezone: "Local",
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath: "/tmp/follows.json",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingToken(t *testing.T) {
	c := validConfig()
	c.Discord.Token = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingAPIKey(t *testing.T) {
	c := validConfig()
	c.Catalog.APIKey = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_BadNotifyAt(t *testing.T) {
	for _, value := range []string{"8am", "25:00", "08-00"} {
		c := validConfig()
		c.Scheduler.NotifyAt = value
		v := NewCnfValidator(c)
		assert.Error(t, v.Validate(), value)
	}
}

func TestConfigValidator_NotifyAtIsZeroPadded(t *testing.T) {
	c := validConfig()
	c.Scheduler.NotifyAt = "8:00"
	require.NoError(t, NewCnfValidator(c).Validate())
	assert.Equal(t, "08:00", c.Scheduler.NotifyAt)
}

func TestConfigValidator_RelativePaths(t *testing.T) {
	c := validConfig()
	c.Persistence.FilePath = "data/follows.json"
	c.Logger.Dir = "logs"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestNormalizeNotifyAt(t *testing.T) {
	for in, want := range map[string]string{"8:00": "08:00", "08:00": "08:00", " 23:05 ": "23:05"} {
		got, err := NormalizeNotifyAt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := NormalizeNotifyAt("noon")
	assert.Error(t, err)
}

func TestConfigValidator_UnknownTimezone(t *testing.T) {
	c := validConfig()
	c.Scheduler.Timezone = "Mars/Olympus_Mons"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
