package browser

import (
	"errors"
	"fmt"

	"github.com/blogapp/e2e/internal/config"
	"github.com/blogapp/e2e/internal/scenario"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

var _ scenario.Browser = (*Browser)(nil)

// Browser opens isolated pages on a running Playwright browser
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	logger  *zap.Logger
}

// Launch starts Playwright and launches the configured browser engine.
// Browsers must already be installed (see Install).
func Launch(cfg config.BrowserConfig, logger *zap.Logger) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := BrowserType(pw, cfg.Engine)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(LaunchOptions(cfg))
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s (headless=%v): %w", cfg.Engine, cfg.Headless, err)
	}

	b := Wrap(browser, cfg, logger)
	b.pw = pw
	return b, nil
}

// Wrap adapts a browser launched elsewhere, e.g. in a TestMain. Close then only
// closes the browser, not the Playwright driver.
func Wrap(browser playwright.Browser, cfg config.BrowserConfig, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		browser: browser,
		cfg:     cfg,
		logger:  logger.Named("browser"),
	}
}

// NewPage opens a page in a fresh browser context, so cookies and storage
// never leak between scenarios
func (b *Browser) NewPage() (scenario.Page, error) {
	bctx, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(b.cfg.TimeoutMillis())

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return newPage(bctx, page, b.cfg.TimeoutMillis(), b.logger), nil
}

// Close closes the browser and stops Playwright if Launch started it
func (b *Browser) Close() error {
	var errs []error
	if err := b.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Install downloads the Playwright driver and the given engine
func Install(engineName string) error {
	if err := validateEngine(engineName); err != nil {
		return err
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{engineName}}); err != nil {
		return fmt.Errorf("failed to install playwright %s: %w", engineName, err)
	}
	return nil
}

// LaunchOptions converts the browser configuration into Playwright launch options
func LaunchOptions(cfg config.BrowserConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.SlowMo > 0 {
		opts.SlowMo = playwright.Float(float64(cfg.SlowMo.Milliseconds()))
	}
	return opts
}

// BrowserType returns the Playwright browser type for the engine name
func BrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	if err := validateEngine(name); err != nil {
		return nil, err
	}
	switch name {
	case config.EngineFirefox:
		return pw.Firefox, nil
	case config.EngineWebKit:
		return pw.WebKit, nil
	default:
		return pw.Chromium, nil
	}
}

func validateEngine(name string) error {
	switch name {
	case config.EngineChromium, config.EngineFirefox, config.EngineWebKit:
		return nil
	default:
		return fmt.Errorf("unknown browser engine %q", name)
	}
}
