package providers

import (
	"comicbot/internal/structures"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// Secrets usually live in a .env file next to the binary; it is optional.
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("discord.commandPrefix", "!")
	v.SetDefault("discord.welcomeMessage", "Welcome to the server %s")
	v.SetDefault("discord.forbiddenWords", []string{"shit"})
	v.SetDefault("catalog.baseUrl", "https://comicvine.gamespot.com/api")
	v.SetDefault("catalog.userAgent", "MyComicBot/1.0")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("selector.pageSize", 5)
	v.SetDefault("selector.timeout", 60*time.Second)
	v.SetDefault("scheduler.interval", time.Minute)
	v.SetDefault("scheduler.notifyAt", "08:00")
	v.SetDefault("scheduler.timezone", "Local")
	v.SetDefault("persistence.filePath", "data/follows.json")
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.BindEnv("discord.token", "DISCORD_TOKEN")
	v.BindEnv("discord.broadcastChannelId", "DISCORD_CHANNEL_ID")
	v.BindEnv("catalog.apiKey", "COMICVINE_API_KEY")
	v.BindEnv("logger.level", "COMICBOT_LOG_LEVEL")
	v.BindEnv("scheduler.notifyAt", "COMICBOT_NOTIFY_AT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ComicBot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
