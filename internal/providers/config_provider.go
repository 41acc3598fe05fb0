package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cjd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CJD_LOG_LEVEL")
	viper.BindEnv("persistence.saveInterval", "CJD_SAVE_INTERVAL")
	viper.BindEnv("media.dir", "CJD_MEDIA_DIR")
	viper.BindEnv("serviceLock.recheckInterval", "CJD_LOCK_RECHECK_INTERVAL")
	viper.BindEnv("cache.enabled", "CJD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CJD_CACHE_SIZE")

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

	applyLockDefaults(&conf.ServiceLock)

	conf.AppName = "CorperJournalDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyLockDefaults(lc *structures.ServiceLockConfig) {
	if lc.SourceTimeout <= 0 {
		lc.SourceTimeout = 5 * time.Second
	}
	if lc.RecheckInterval <= 0 {
		lc.RecheckInterval = 15 * time.Minute
	}
	if lc.GraceDays <= 0 {
		lc.GraceDays = 30
	}
	if lc.Timezone == "" {
		lc.Timezone = "Africa/Lagos"
	}
}
