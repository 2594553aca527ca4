package scenario

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blogapp/e2e/internal/models"
)

// fakePage records every call and fails the ones listed in failures
type fakePage struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]error
	dialogs  []bool
	closed   bool
}

func newFakePage() *fakePage {
	return &fakePage{failures: map[string]error{}}
}

// failOn makes the call rendered as call return err
func (p *fakePage) failOn(call string, err error) *fakePage {
	p.failures[call] = err
	return p
}

func (p *fakePage) record(call string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
	return p.failures[call]
}

func (p *fakePage) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePage) Goto(url string) error { return p.record("goto " + url) }

func (p *fakePage) Click(loc Locator) error { return p.record("click " + loc.String()) }

func (p *fakePage) Fill(loc Locator, value string) error {
	return p.record(fmt.Sprintf("fill %s=%s", loc, value))
}

func (p *fakePage) ExpectVisible(loc Locator) error { return p.record("visible " + loc.String()) }

func (p *fakePage) ExpectHidden(loc Locator) error { return p.record("hidden " + loc.String()) }

func (p *fakePage) ExpectText(loc Locator, text string) error {
	return p.record(fmt.Sprintf("text %s=%s", loc, text))
}

func (p *fakePage) ExpectCount(loc Locator, n int) error {
	return p.record(fmt.Sprintf("count %s=%d", loc, n))
}

func (p *fakePage) HandleNextDialog(accept bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogs = append(p.dialogs, accept)
	p.calls = append(p.calls, fmt.Sprintf("dialog accept=%t", accept))
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// fakeBrowser hands out pages in order
type fakeBrowser struct {
	pages []*fakePage
	err   error
	next  int
}

func (b *fakeBrowser) NewPage() (Page, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.next >= len(b.pages) {
		b.pages = append(b.pages, newFakePage())
	}
	page := b.pages[b.next]
	b.next++
	return page, nil
}

// fakeFixtures records fixture calls
type fakeFixtures struct {
	calls     []string
	resetErr  error
	createErr error
	onReset   func()
}

func (f *fakeFixtures) Reset(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	if f.onReset != nil {
		f.onReset()
	}
	return f.resetErr
}

func (f *fakeFixtures) CreateUser(ctx context.Context, user models.User) error {
	f.calls = append(f.calls, "create "+user.Username)
	return f.createErr
}

var errTimeout = errors.New("Timeout 5000ms exceeded")
