package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envConfig       = "AIRPAINT_CONFIG"
	envSource       = "AIRPAINT_SOURCE"
	envCamera       = "AIRPAINT_CAMERA"
	envVideo        = "AIRPAINT_VIDEO"
	envDisplay      = "AIRPAINT_DISPLAY"
	envSearchPolicy = "AIRPAINT_SEARCH_POLICY"
	envHSVBackend   = "AIRPAINT_HSV_BACKEND"
	envRender       = "AIRPAINT_RENDER_BACKEND"
	envDebug        = "AIRPAINT_DEBUG"
)

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Existing variables are not overwritten. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := files[:0:0]
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overrides selected fields from environment variables and
// re-validates the result.
func (c *Config) ApplyEnv() {
	c.Source = getEnv(envSource, c.Source)
	c.CameraIndex = getEnvAsInt(envCamera, c.CameraIndex)
	if v := getEnv(envVideo, ""); v != "" {
		c.VideoPath = v
		if os.Getenv(envSource) == "" {
			c.Source = "video"
		}
	}
	c.Display = getEnv(envDisplay, c.Display)
	c.SearchPolicy = getEnv(envSearchPolicy, c.SearchPolicy)
	c.HSVBackend = getEnv(envHSVBackend, c.HSVBackend)
	c.RenderBackend = getEnv(envRender, c.RenderBackend)
	c.Debug = getEnvAsBool(envDebug, c.Debug)
	_ = c.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
