package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogapp/e2e/internal/models"
)

// Session is the explicit per-scenario context handed to every step
type Session struct {
	Page    Page
	BaseURL string
	// User is the logged-in user, nil while unauthenticated.
	User *models.User
}

// Step is one scripted interaction or assertion
type Step interface {
	Run(ctx context.Context, s *Session) error
	String() string
}

type clickStep struct{ loc Locator }

// Click clicks the element matching loc
func Click(loc Locator) Step { return clickStep{loc: loc} }

func (c clickStep) Run(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Page.Click(c.loc); err != nil {
		return &LocatorError{Locator: c.loc, Action: "click", Err: err}
	}
	return nil
}

func (c clickStep) String() string { return "click " + c.loc.String() }

type fillStep struct {
	loc   Locator
	value string
}

// Fill types value into the input matching loc
func Fill(loc Locator, value string) Step { return fillStep{loc: loc, value: value} }

func (f fillStep) Run(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Page.Fill(f.loc, f.value); err != nil {
		return &LocatorError{Locator: f.loc, Action: "fill", Err: err}
	}
	return nil
}

func (f fillStep) String() string { return fmt.Sprintf("fill %s with %q", f.loc, f.value) }

type dialogStep struct{ accept bool }

// AcceptDialog accepts the next native dialog the page opens
func AcceptDialog() Step { return dialogStep{accept: true} }

// DismissDialog dismisses the next native dialog the page opens
func DismissDialog() Step { return dialogStep{accept: false} }

func (d dialogStep) Run(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Page.HandleNextDialog(d.accept)
	return nil
}

func (d dialogStep) String() string {
	if d.accept {
		return "accept next dialog"
	}
	return "dismiss next dialog"
}

type gotoStep struct{ path string }

// Goto navigates to path relative to the application root
func Goto(path string) Step { return gotoStep{path: path} }

func (g gotoStep) Run(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := s.BaseURL + "/" + strings.TrimLeft(g.path, "/")
	if err := s.Page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (g gotoStep) String() string { return "goto /" + strings.TrimLeft(g.path, "/") }

type expectStep struct {
	loc      Locator
	expected string
	check    func(Page) error
}

// ExpectVisible asserts that loc becomes visible
func ExpectVisible(loc Locator) Step {
	return expectStep{loc: loc, expected: "visible", check: func(p Page) error { return p.ExpectVisible(loc) }}
}

// ExpectHidden asserts that loc is hidden or absent
func ExpectHidden(loc Locator) Step {
	return expectStep{loc: loc, expected: "hidden", check: func(p Page) error { return p.ExpectHidden(loc) }}
}

// ExpectText asserts that loc contains text
func ExpectText(loc Locator, text string) Step {
	return expectStep{
		loc:      loc,
		expected: fmt.Sprintf("containing %q", text),
		check:    func(p Page) error { return p.ExpectText(loc, text) },
	}
}

// ExpectCount asserts that loc matches exactly n elements
func ExpectCount(loc Locator, n int) Step {
	return expectStep{
		loc:      loc,
		expected: fmt.Sprintf("matched %d times", n),
		check:    func(p Page) error { return p.ExpectCount(loc, n) },
	}
}

func (e expectStep) Run(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.check(s.Page)
	if err == nil {
		return nil
	}
	assertErr := &AssertionError{Locator: e.loc, Expected: e.expected, Err: err}
	var mismatch *Mismatch
	if errors.As(err, &mismatch) {
		assertErr.Actual = mismatch.Actual
		assertErr.Err = mismatch.Err
	}
	return assertErr
}

func (e expectStep) String() string { return fmt.Sprintf("expect %s %s", e.loc, e.expected) }

type groupStep struct {
	name  string
	steps []Step
}

// Group runs steps in order under a single name
func Group(name string, steps ...Step) Step { return groupStep{name: name, steps: steps} }

func (g groupStep) Run(ctx context.Context, s *Session) error {
	for _, step := range g.steps {
		if err := step.Run(ctx, s); err != nil {
			return fmt.Errorf("%s: %w", g.name, err)
		}
	}
	return nil
}

func (g groupStep) String() string { return g.name }

type loginStep struct{ user models.User }

// LogIn submits user's credentials in the login form and records the session user
func LogIn(user models.User) Step { return loginStep{user: user} }

func (l loginStep) Run(ctx context.Context, s *Session) error {
	if err := SubmitCredentials(l.user.Username, l.user.Password).Run(ctx, s); err != nil {
		return err
	}
	u := l.user
	s.User = &u
	return nil
}

func (l loginStep) String() string { return "log in as " + l.user.Username }

type logoutStep struct{}

// LogOut clicks the log out button and clears the session user
func LogOut() Step { return logoutStep{} }

func (logoutStep) Run(ctx context.Context, s *Session) error {
	if err := Click(Button("Log Out")).Run(ctx, s); err != nil {
		return err
	}
	s.User = nil
	return nil
}

func (logoutStep) String() string { return "log out" }

// SubmitCredentials fills the login form and submits it without touching the session
func SubmitCredentials(username, password string) Step {
	return Group("submit credentials for "+username,
		Fill(TestID("username"), username),
		Fill(TestID("password"), password),
		Click(Button("login")),
	)
}
