package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cjd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8817,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/cjd.dat",
			SaveInterval: 30 * time.Second,
		},
		Media: structures.MediaConfig{
			Dir: "/tmp/cjd-media",
		},
		ServiceLock: structures.ServiceLockConfig{
			Timezone: "Africa/Lagos",
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

func TestConfigValidator_EmptyMediaDir(t *testing.T) {
	c := validConfig()
	c.Media.Dir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyTimezone(t *testing.T) {
	c := validConfig()
	c.ServiceLock.Timezone = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
