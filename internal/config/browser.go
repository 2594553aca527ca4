package config

import (
	"fmt"
	"strconv"
	"time"
)

// Supported browser engines
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// DefaultTimeout bounds every locator wait and assertion poll
const DefaultTimeout = 5 * time.Second

// BrowserConfig holds browser launch configuration
type BrowserConfig struct {
	Engine   string
	Headless bool
	Timeout  time.Duration
	SlowMo   time.Duration
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Engine:   getenv("E2E_BROWSER"),
		Headless: true,
		Timeout:  DefaultTimeout,
	}

	if config.Engine == "" {
		config.Engine = EngineChromium // Default to Chromium
	}
	switch config.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return nil, fmt.Errorf("E2E_BROWSER is invalid: unknown engine %q", config.Engine)
	}

	if raw := getenv("E2E_HEADLESS"); raw != "" {
		headless, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("E2E_HEADLESS is invalid: %w", err)
		}
		config.Headless = headless
	}

	if raw := getenv("E2E_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("E2E_TIMEOUT is invalid: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("E2E_TIMEOUT is invalid: must be positive, got %s", timeout)
		}
		config.Timeout = timeout
	}

	if raw := getenv("E2E_SLOW_MO"); raw != "" {
		slowMo, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("E2E_SLOW_MO is invalid: %w", err)
		}
		if slowMo < 0 {
			return nil, fmt.Errorf("E2E_SLOW_MO is invalid: must not be negative, got %s", slowMo)
		}
		config.SlowMo = slowMo
	}

	return config, nil
}

// TimeoutMillis returns the timeout in the float milliseconds playwright expects
func (c *BrowserConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}
