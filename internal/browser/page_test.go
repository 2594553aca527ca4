package browser

import (
	"sync"
	"testing"
	"time"

	"github.com/blogapp/e2e/internal/config"
	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogArm_UnarmedDismisses(t *testing.T) {
	var arm dialogArm
	assert.False(t, arm.Take())
}

func TestDialogArm_OneShot(t *testing.T) {
	var arm dialogArm

	arm.Arm(true)
	assert.True(t, arm.Take(), "armed dialog must be accepted")
	assert.False(t, arm.Take(), "second dialog must be dismissed")
}

func TestDialogArm_RearmToDismiss(t *testing.T) {
	var arm dialogArm

	arm.Arm(true)
	arm.Arm(false)
	assert.False(t, arm.Take())
}

func TestDialogArm_ConcurrentTakeAcceptsOnce(t *testing.T) {
	var arm dialogArm
	arm.Arm(true)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if arm.Take() {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
}

func TestValidateEngine(t *testing.T) {
	for _, name := range []string{"chromium", "firefox", "webkit"} {
		assert.NoError(t, validateEngine(name), name)
	}
	assert.ErrorContains(t, validateEngine("opera"), `unknown browser engine "opera"`)
}

func TestInstall_RejectsUnknownEngine(t *testing.T) {
	assert.Error(t, Install("lynx"))
}

func TestLaunchOptions(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.BrowserConfig
		wantSlowMo *float64
	}{
		{
			name: "headless without slow motion",
			cfg:  config.BrowserConfig{Engine: config.EngineChromium, Headless: true},
		},
		{
			name:       "headed with slow motion",
			cfg:        config.BrowserConfig{Engine: config.EngineFirefox, SlowMo: 250 * time.Millisecond},
			wantSlowMo: playwright.Float(250),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := LaunchOptions(tt.cfg)

			require.NotNil(t, opts.Headless)
			assert.Equal(t, tt.cfg.Headless, *opts.Headless)
			assert.Equal(t, tt.wantSlowMo, opts.SlowMo)
		})
	}
}

func TestBrowserType_RejectsUnknownEngine(t *testing.T) {
	_, err := BrowserType(nil, "opera")
	assert.ErrorContains(t, err, `unknown browser engine "opera"`)
}
