package browser

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/blogapp/e2e/internal/scenario"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Dialog handling modes
const (
	dialogDismiss int32 = iota
	dialogAccept
)

// dialogArm holds the decision for the next native dialog. Unarmed dialogs are dismissed.
type dialogArm struct {
	mode atomic.Int32
}

// Arm sets how the next dialog is resolved
func (a *dialogArm) Arm(accept bool) {
	if accept {
		a.mode.Store(dialogAccept)
		return
	}
	a.mode.Store(dialogDismiss)
}

// Take returns whether the current dialog must be accepted and disarms
func (a *dialogArm) Take() bool {
	return a.mode.Swap(dialogDismiss) == dialogAccept
}

var _ scenario.Page = (*Page)(nil)

// Page implements scenario.Page on a Playwright page
type Page struct {
	bctx   playwright.BrowserContext
	page   playwright.Page
	expect playwright.PlaywrightAssertions
	dialog dialogArm
	logger *zap.Logger
}

func newPage(bctx playwright.BrowserContext, page playwright.Page, timeoutMillis float64, logger *zap.Logger) *Page {
	p := &Page{
		bctx:   bctx,
		page:   page,
		expect: playwright.NewPlaywrightAssertions(timeoutMillis),
		logger: logger,
	}
	page.OnDialog(p.onDialog)
	return p
}

// onDialog runs on the Playwright event goroutine
func (p *Page) onDialog(dialog playwright.Dialog) {
	accept := p.dialog.Take()
	var err error
	if accept {
		err = dialog.Accept()
	} else {
		err = dialog.Dismiss()
	}
	p.logger.Debug("dialog handled",
		zap.String("type", dialog.Type()),
		zap.String("message", dialog.Message()),
		zap.Bool("accepted", accept),
		zap.Error(err),
	)
}

// HandleNextDialog arms the one-shot dialog handler
func (p *Page) HandleNextDialog(accept bool) {
	p.dialog.Arm(accept)
}

// Goto navigates the page to url
func (p *Page) Goto(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Click clicks the element once it is visible, enabled and stable
func (p *Page) Click(loc scenario.Locator) error {
	return p.resolve(loc).Click()
}

// Fill replaces the value of an input
func (p *Page) Fill(loc scenario.Locator, value string) error {
	return p.resolve(loc).Fill(value)
}

// ExpectVisible polls until the element is visible
func (p *Page) ExpectVisible(loc scenario.Locator) error {
	l := p.resolve(loc)
	if err := p.expect.Locator(l).ToBeVisible(); err != nil {
		actual := "not visible"
		if n, countErr := l.Count(); countErr == nil && n == 0 {
			actual = "absent"
		}
		return &scenario.Mismatch{Actual: actual, Err: err}
	}
	return nil
}

// ExpectHidden polls until the element is hidden or detached
func (p *Page) ExpectHidden(loc scenario.Locator) error {
	if err := p.expect.Locator(p.resolve(loc)).Not().ToBeVisible(); err != nil {
		return &scenario.Mismatch{Actual: "visible", Err: err}
	}
	return nil
}

// ExpectText polls until the element contains text
func (p *Page) ExpectText(loc scenario.Locator, text string) error {
	l := p.resolve(loc)
	if err := p.expect.Locator(l).ToContainText(text); err != nil {
		content, contentErr := l.TextContent(playwright.LocatorTextContentOptions{Timeout: playwright.Float(250)})
		if contentErr != nil {
			return &scenario.Mismatch{Actual: "no text", Err: err}
		}
		return &scenario.Mismatch{Actual: fmt.Sprintf("%q", content), Err: err}
	}
	return nil
}

// ExpectCount polls until exactly n elements match
func (p *Page) ExpectCount(loc scenario.Locator, n int) error {
	l := p.resolve(loc)
	if err := p.expect.Locator(l).ToHaveCount(n); err != nil {
		if got, countErr := l.Count(); countErr == nil {
			return &scenario.Mismatch{Actual: fmt.Sprintf("%d matches", got), Err: err}
		}
		return err
	}
	return nil
}

// Close closes the page and its browser context
func (p *Page) Close() error {
	return errors.Join(p.page.Close(), p.bctx.Close())
}

// resolve turns a locator description into a Playwright locator
func (p *Page) resolve(loc scenario.Locator) playwright.Locator {
	var l playwright.Locator
	if loc.Parent != nil {
		l = within(p.resolve(*loc.Parent), loc)
	} else {
		l = onPage(p.page, loc)
	}

	if loc.HasText != "" {
		l = l.Filter(playwright.LocatorFilterOptions{HasText: loc.HasText})
	}
	if loc.Indexed {
		l = l.Nth(loc.Index)
	}
	return l
}

func onPage(page playwright.Page, loc scenario.Locator) playwright.Locator {
	switch loc.Kind {
	case scenario.ByText:
		return page.GetByText(loc.Value, playwright.PageGetByTextOptions{Exact: playwright.Bool(loc.Exact)})
	case scenario.ByRole:
		return page.GetByRole(playwright.AriaRole(loc.Role), playwright.PageGetByRoleOptions{
			Name:  loc.Value,
			Exact: playwright.Bool(loc.Exact),
		})
	case scenario.ByTestID:
		return page.GetByTestId(loc.Value)
	default:
		return page.Locator(loc.Value)
	}
}

func within(parent playwright.Locator, loc scenario.Locator) playwright.Locator {
	switch loc.Kind {
	case scenario.ByText:
		return parent.GetByText(loc.Value, playwright.LocatorGetByTextOptions{Exact: playwright.Bool(loc.Exact)})
	case scenario.ByRole:
		return parent.GetByRole(playwright.AriaRole(loc.Role), playwright.LocatorGetByRoleOptions{
			Name:  loc.Value,
			Exact: playwright.Bool(loc.Exact),
		})
	case scenario.ByTestID:
		return parent.GetByTestId(loc.Value)
	default:
		return parent.Locator(loc.Value)
	}
}
