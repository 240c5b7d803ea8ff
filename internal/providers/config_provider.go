package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"agendad/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "AGD_LOG_LEVEL")
	viper.BindEnv("feed.urlTemplate", "AGD_FEED_URL_TEMPLATE")
	viper.BindEnv("schedule.timezone", "AGD_TIMEZONE")
	viper.BindEnv("persistence.saveInterval", "AGD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "AGD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "AGD_CACHE_SIZE")

	viper.SetDefault("feed.timeout", "10s")
	viper.SetDefault("schedule.timezone", "Europe/Moscow")
	viper.SetDefault("schedule.breakSubjects", []string{"Обед", "Перерыв"})
	viper.SetDefault("schedule.recurring.subject", "Иностранный язык")
	viper.SetDefault("schedule.recurring.morningStart", "09:00")
	viper.SetDefault("schedule.recurring.morningEnd", "10:30")
	viper.SetDefault("schedule.recurring.afternoonStart", "14:00")
	viper.SetDefault("schedule.recurring.afternoonEnd", "15:30")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "AgendaDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
