package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/blogapp/e2e/internal/config"
	"github.com/blogapp/e2e/internal/models"
	"github.com/blogapp/e2e/internal/scenario"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func init() {
	color.NoColor = true
}

// stubPage succeeds at everything except the expectations listed in missing
type stubPage struct {
	missing map[string]bool
}

func (p *stubPage) Goto(url string) error                         { return nil }
func (p *stubPage) Click(loc scenario.Locator) error              { return nil }
func (p *stubPage) Fill(loc scenario.Locator, value string) error { return nil }
func (p *stubPage) HandleNextDialog(accept bool)                  {}
func (p *stubPage) ExpectHidden(loc scenario.Locator) error       { return nil }
func (p *stubPage) ExpectCount(loc scenario.Locator, n int) error { return nil }
func (p *stubPage) Close() error                                  { return nil }

func (p *stubPage) ExpectVisible(loc scenario.Locator) error {
	if p.missing[loc.Value] {
		return errors.New("Timeout 5000ms exceeded")
	}
	return nil
}

func (p *stubPage) ExpectText(loc scenario.Locator, text string) error {
	return p.ExpectVisible(scenario.Text(text))
}

// stubBrowser hands out stub pages and records whether it was closed
type stubBrowser struct {
	mu      sync.Mutex
	missing map[string]bool
	pages   int
	closed  bool
}

func (b *stubBrowser) NewPage() (scenario.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pages++
	return &stubPage{missing: b.missing}, nil
}

func (b *stubBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// fixtureBackend is a fake blog API counting fixture calls
type fixtureBackend struct {
	mu     sync.Mutex
	resets int
	users  []string
	status int
}

func newFixtureBackend(t *testing.T, status int) (*fixtureBackend, string) {
	t.Helper()
	backend := &fixtureBackend{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		backend.mu.Lock()
		switch r.URL.Path {
		case "/api/testing/reset":
			backend.resets++
		case "/api/users":
			backend.users = append(backend.users, string(body))
		}
		backend.mu.Unlock()
		w.WriteHeader(backend.status)
	}))
	t.Cleanup(server.Close)
	return backend, server.URL
}

func (b *fixtureBackend) counts() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resets, len(b.users)
}

var testUser = models.User{Name: "prueba", Username: "Prueba", Password: "prueba"}

func testScenarios() []scenario.Scenario {
	user := testUser
	return []scenario.Scenario{
		{
			Group: "Login",
			Name:  "succeeds with correct credentials",
			Users: []models.User{testUser},
			Steps: []scenario.Step{scenario.LogIn(testUser), scenario.ExpectVisible(scenario.Text("Prueba logged-in"))},
		},
		{
			Group:   "When logged in",
			Name:    "a new blog can be created",
			Users:   []models.User{testUser},
			LoginAs: &user,
			Steps:   []scenario.Step{scenario.ExpectVisible(scenario.Text("A new blog was created!"))},
		},
	}
}

type memoryFixtures struct{ resets int }

func (f *memoryFixtures) Reset(ctx context.Context) error { f.resets++; return nil }

func (f *memoryFixtures) CreateUser(ctx context.Context, user models.User) error { return nil }

func TestRunSuite_AllPass(t *testing.T) {
	// GIVEN
	var out bytes.Buffer
	fx := &memoryFixtures{}
	deps := RunDependencies{
		App:       &config.AppConfig{UIBaseURL: "http://localhost:5173"},
		Browser:   &stubBrowser{},
		Fixtures:  fx,
		Scenarios: testScenarios(),
		Logger:    zaptest.NewLogger(t),
		Out:       &out,
	}

	// WHEN
	report, err := RunSuite(context.Background(), deps)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 2, report.Passed())
	assert.Equal(t, 2, fx.resets)
	assert.Contains(t, out.String(), "2 passed, 0 failed, 0 skipped")
}

func TestRunSuite_ReportsFailures(t *testing.T) {
	// GIVEN
	var out bytes.Buffer
	deps := RunDependencies{
		App:       &config.AppConfig{UIBaseURL: "http://localhost:5173"},
		Browser:   &stubBrowser{missing: map[string]bool{"A new blog was created!": true}},
		Fixtures:  &memoryFixtures{},
		Scenarios: testScenarios(),
		Logger:    zaptest.NewLogger(t),
		Out:       &out,
	}

	// WHEN
	report, err := RunSuite(context.Background(), deps)

	// THEN
	var failed *FailedError
	require.True(t, errors.As(err, &failed), "expected *FailedError, got %v", err)
	assert.Equal(t, 1, failed.Failed)
	assert.Equal(t, 2, failed.Total)
	assert.Equal(t, "1 of 2 scenarios failed", failed.Error())
	assert.Equal(t, 1, report.Passed())
	assert.Contains(t, out.String(), "FAIL  When logged in/a new blog can be created")
}

func TestRunSuite_NoScenarios(t *testing.T) {
	_, err := RunSuite(context.Background(), RunDependencies{Logger: zap.NewNop(), Out: io.Discard})
	assert.EqualError(t, err, "no scenarios selected")
}

func TestFailedError_WithSkipped(t *testing.T) {
	err := &FailedError{Failed: 1, Skipped: 2, Total: 8}
	assert.Equal(t, "1 of 8 scenarios failed, 2 skipped", err.Error())
}

func TestWithShutdownSignals_SIGTERM(t *testing.T) {
	// GIVEN
	shutdown := make(chan os.Signal, 1)
	ctx, cancel := WithShutdownSignals(context.Background(), shutdown, zaptest.NewLogger(t))
	defer cancel()

	// WHEN
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled after SIGTERM")
	}
}

func TestWithShutdownSignals_ParentCancelled(t *testing.T) {
	// GIVEN
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithShutdownSignals(parent, make(chan os.Signal, 1), zaptest.NewLogger(t))
	defer cancel()

	// WHEN
	cancelParent()

	// THEN
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled with its parent")
	}
}

func newTestApp(t *testing.T, env map[string]string, b *stubBrowser) (*bytes.Buffer, func(args ...string) error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(Options{
		Version: "test",
		Out:     &out,
		Getenv:  func(key string) string { return env[key] },
		Launch: func(cfg config.BrowserConfig, logger *zap.Logger) (ClosableBrowser, error) {
			return b, nil
		},
		Catalog:  testScenarios,
		Shutdown: make(chan os.Signal, 1),
	})
	return &out, func(args ...string) error {
		return app.Run(append([]string{"blogcheck"}, args...))
	}
}

func TestApp_List(t *testing.T) {
	out, run := newTestApp(t, nil, &stubBrowser{})

	require.NoError(t, run("list", "--run", "^When"))

	assert.Equal(t, "When logged in/a new blog can be created\n", out.String())
}

func TestApp_Run(t *testing.T) {
	// GIVEN
	backend, apiURL := newFixtureBackend(t, http.StatusCreated)
	b := &stubBrowser{}
	out, run := newTestApp(t, map[string]string{"BLOG_API_URL": "http://unused.invalid"}, b)

	// WHEN
	err := run("--log-level", "error", "run", "--api-url", apiURL, "--timeout", "2s")

	// THEN
	require.NoError(t, err)
	resets, users := backend.counts()
	assert.Equal(t, 2, resets, "flag must override BLOG_API_URL")
	assert.Equal(t, 2, users)
	assert.Equal(t, 2, b.pages)
	assert.True(t, b.closed)
	assert.Contains(t, out.String(), "2 passed")
}

func TestApp_RunRejectsInvalidConfig(t *testing.T) {
	b := &stubBrowser{}
	_, run := newTestApp(t, map[string]string{"E2E_TIMEOUT": "-1s"}, b)

	err := run("run")

	assert.ErrorContains(t, err, "E2E_TIMEOUT is invalid")
	assert.Equal(t, 0, b.pages, "the browser must not be used with invalid config")
}

func TestApp_RunFailsOnFixtureErrors(t *testing.T) {
	// GIVEN
	_, apiURL := newFixtureBackend(t, http.StatusNotFound)
	out, run := newTestApp(t, map[string]string{"BLOG_API_URL": apiURL}, &stubBrowser{})

	// WHEN
	err := run("run")

	// THEN
	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 2, failed.Failed)
	assert.Contains(t, out.String(), "setup: setup failed at reset")
}

func TestApp_Reset(t *testing.T) {
	backend, apiURL := newFixtureBackend(t, http.StatusNoContent)
	out, run := newTestApp(t, map[string]string{"BLOG_API_URL": apiURL}, &stubBrowser{})

	require.NoError(t, run("reset"))

	resets, _ := backend.counts()
	assert.Equal(t, 1, resets)
	assert.Equal(t, "application state reset\n", out.String())
}

func TestApp_CreateUser(t *testing.T) {
	backend, apiURL := newFixtureBackend(t, http.StatusCreated)
	out, run := newTestApp(t, nil, &stubBrowser{})

	require.NoError(t, run("create-user", "--api-url", apiURL, "--name", "facu", "--username", "Facu", "--password", "facu"))

	_, users := backend.counts()
	assert.Equal(t, 1, users)
	assert.True(t, strings.HasPrefix(out.String(), "created user Facu"))
	assert.NotContains(t, out.String(), "facu\n", "password must not be printed")
}

func TestApp_CreateUserPropagatesStatus(t *testing.T) {
	_, apiURL := newFixtureBackend(t, http.StatusBadRequest)
	_, run := newTestApp(t, map[string]string{"BLOG_API_URL": apiURL}, &stubBrowser{})

	err := run("create-user", "--name", "facu", "--username", "Facu", "--password", "facu")

	assert.ErrorContains(t, err, "failed to create user Facu")
	assert.ErrorContains(t, err, "returned status 400")
}
