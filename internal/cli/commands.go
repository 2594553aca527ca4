package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/blogapp/e2e/internal/browser"
	"github.com/blogapp/e2e/internal/catalog"
	"github.com/blogapp/e2e/internal/config"
	"github.com/blogapp/e2e/internal/fixtures"
	"github.com/blogapp/e2e/internal/models"
	"github.com/blogapp/e2e/internal/observability"
	"github.com/blogapp/e2e/internal/scenario"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// envFlags maps configuration environment variables to the flags overriding them
var envFlags = map[string]string{
	"BLOG_UI_URL":  "ui-url",
	"BLOG_API_URL": "api-url",
	"E2E_BROWSER":  "browser",
	"E2E_TIMEOUT":  "timeout",
	"E2E_SLOW_MO":  "slow-mo",
	"LOG_LEVEL":    "log-level",
	"LOG_FORMAT":   "log-format",
	"LOG_FILE":     "log-file",
}

// BrowserLauncher starts a browser; replaced in tests
type BrowserLauncher func(cfg config.BrowserConfig, logger *zap.Logger) (ClosableBrowser, error)

// ClosableBrowser is a scenario.Browser owning external resources
type ClosableBrowser interface {
	scenario.Browser
	Close() error
}

// Options customize the application
type Options struct {
	Version  string
	Out      io.Writer
	Getenv   func(string) string
	Launch   BrowserLauncher
	Catalog  func() []scenario.Scenario
	Shutdown chan os.Signal
}

// app carries state shared by every command of one invocation
type app struct {
	opts   Options
	logger *zap.Logger
}

// NewApp builds the blogcheck command line application
func NewApp(opts Options) *cli.App {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Launch == nil {
		opts.Launch = func(cfg config.BrowserConfig, logger *zap.Logger) (ClosableBrowser, error) {
			return browser.Launch(cfg, logger)
		}
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Scenarios
	}

	a := &app{opts: opts, logger: zap.NewNop()}

	return &cli.App{
		Name:      "blogcheck",
		Usage:     "End-to-end checks for the blog application",
		Version:   opts.Version,
		Writer:    opts.Out,
		ErrWriter: opts.Out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (env LOG_LEVEL)"},
			&cli.StringFlag{Name: "log-format", Usage: "console or json (env LOG_FORMAT)"},
			&cli.StringFlag{Name: "log-file", Usage: "also write JSON logs to this rotating file (env LOG_FILE)"},
		},
		Before: a.setupLogger,
		After: func(c *cli.Context) error {
			_ = a.logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			a.runCommand(),
			a.listCommand(),
			a.resetCommand(),
			a.createUserCommand(),
			a.installCommand(),
		},
	}
}

// lookup resolves configuration keys, preferring explicitly set flags over the environment
func (a *app) lookup(c *cli.Context) func(string) string {
	return func(key string) string {
		if key == "E2E_HEADLESS" && c.IsSet("headed") {
			return strconv.FormatBool(!c.Bool("headed"))
		}
		if flag, ok := envFlags[key]; ok && c.IsSet(flag) {
			return c.String(flag)
		}
		return a.opts.Getenv(key)
	}
}

func (a *app) setupLogger(c *cli.Context) error {
	logger, err := observability.NewLogger(config.LoadLoggerConfig(a.lookup(c)))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "ui-url", Usage: "blog UI origin (env BLOG_UI_URL)"},
		&cli.StringFlag{Name: "api-url", Usage: "blog API origin (env BLOG_API_URL)"},
	}
}

func (a *app) runCommand() *cli.Command {
	flags := append(appFlags(),
		&cli.StringFlag{Name: "run", Usage: "only run scenarios whose Group/Name matches this regexp"},
		&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit (env E2E_BROWSER)"},
		&cli.BoolFlag{Name: "headed", Usage: "show the browser window (env E2E_HEADLESS=false)"},
		&cli.StringFlag{Name: "timeout", Usage: "wait limit for every locator and assertion, e.g. 5s (env E2E_TIMEOUT)"},
		&cli.StringFlag{Name: "slow-mo", Usage: "delay between browser operations, e.g. 250ms (env E2E_SLOW_MO)"},
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run the end-to-end scenarios against a running blog application",
		Flags: flags,
		Action: func(c *cli.Context) error {
			getenv := a.lookup(c)
			appConfig, err := config.LoadAppConfig(getenv)
			if err != nil {
				return err
			}
			browserConfig, err := config.LoadBrowserConfig(getenv)
			if err != nil {
				return err
			}

			scenarios, err := scenario.Filter(a.opts.Catalog(), c.String("run"))
			if err != nil {
				return err
			}

			b, err := a.opts.Launch(*browserConfig, a.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := b.Close(); err != nil {
					a.logger.Warn("failed to close browser", zap.Error(err))
				}
			}()

			ctx, cancel := WithShutdownSignals(c.Context, a.opts.Shutdown, a.logger)
			defer cancel()

			_, err = RunSuite(ctx, RunDependencies{
				App:       appConfig,
				Browser:   b,
				Fixtures:  fixtures.NewHTTPClient(appConfig.APIBaseURL, browserConfig.Timeout, a.logger),
				Scenarios: scenarios,
				Logger:    a.logger,
				Out:       a.opts.Out,
			})
			return err
		},
	}
}

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the scenarios",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "run", Usage: "only list scenarios whose Group/Name matches this regexp"},
		},
		Action: func(c *cli.Context) error {
			scenarios, err := scenario.Filter(a.opts.Catalog(), c.String("run"))
			if err != nil {
				return err
			}
			for _, sc := range scenarios {
				fmt.Fprintln(a.opts.Out, sc.ID())
			}
			return nil
		},
	}
}

// fixtureClient builds a fixture client from the command's configuration
func (a *app) fixtureClient(c *cli.Context) (*fixtures.HTTPClient, error) {
	appConfig, err := config.LoadAppConfig(a.lookup(c))
	if err != nil {
		return nil, err
	}
	return fixtures.NewHTTPClient(appConfig.APIBaseURL, config.DefaultTimeout, a.logger), nil
}

func (a *app) resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear all users and blogs through the testing API",
		Flags: appFlags(),
		Action: func(c *cli.Context) error {
			client, err := a.fixtureClient(c)
			if err != nil {
				return err
			}
			if err := client.Reset(c.Context); err != nil {
				return fmt.Errorf("failed to reset application state: %w", err)
			}
			fmt.Fprintln(a.opts.Out, "application state reset")
			return nil
		},
	}
}

func (a *app) createUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-user",
		Usage: "Create a user through the users API",
		Flags: append(appFlags(),
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		),
		Action: func(c *cli.Context) error {
			user, err := models.NewUser(c.String("name"), c.String("username"), c.String("password"))
			if err != nil {
				return err
			}
			client, err := a.fixtureClient(c)
			if err != nil {
				return err
			}
			if err := client.CreateUser(c.Context, *user); err != nil {
				return fmt.Errorf("failed to create user %s: %w", user.Username, err)
			}
			fmt.Fprintf(a.opts.Out, "created user %s\n", user)
			return nil
		},
	}
}

func (a *app) installCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the Playwright driver and browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit (env E2E_BROWSER)"},
		},
		Action: func(c *cli.Context) error {
			browserConfig, err := config.LoadBrowserConfig(a.lookup(c))
			if err != nil {
				return err
			}
			return browser.Install(browserConfig.Engine)
		},
	}
}
