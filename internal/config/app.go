package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Default origins of the blog application under test
const (
	DefaultUIBaseURL  = "http://localhost:5173"
	DefaultAPIBaseURL = "http://localhost:3003"
)

// AppConfig holds the origins of the blog application under test
type AppConfig struct {
	UIBaseURL  string
	APIBaseURL string
}

// LoadAppConfig loads the application origins from environment variables
func LoadAppConfig(getenv func(string) string) (*AppConfig, error) {
	config := &AppConfig{
		UIBaseURL:  getenv("BLOG_UI_URL"),
		APIBaseURL: getenv("BLOG_API_URL"),
	}

	if config.UIBaseURL == "" {
		config.UIBaseURL = DefaultUIBaseURL
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultAPIBaseURL
	}

	uiURL, err := normalizeBaseURL(config.UIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("BLOG_UI_URL is invalid: %w", err)
	}
	apiURL, err := normalizeBaseURL(config.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("BLOG_API_URL is invalid: %w", err)
	}
	config.UIBaseURL = uiURL
	config.APIBaseURL = apiURL

	return config, nil
}

// normalizeBaseURL checks that raw is an absolute http(s) URL and strips any trailing slash
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("host is missing in %q", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
