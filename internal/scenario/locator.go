package scenario

import (
	"fmt"
	"strings"
)

// LocatorKind selects how an element is identified
type LocatorKind int

// Locator kinds
const (
	ByText LocatorKind = iota
	ByRole
	ByTestID
	ByCSS
)

// Locator is a predicate identifying a UI element. Locators are values: every
// refinement returns a copy.
type Locator struct {
	Kind LocatorKind
	// Value is the visible text, the accessible name, the test id or the CSS selector.
	Value   string
	Role    string
	Exact   bool
	HasText string
	Index   int
	Indexed bool
	Parent  *Locator
}

// Text locates an element by its visible text
func Text(text string) Locator {
	return Locator{Kind: ByText, Value: text}
}

// Role locates an element by ARIA role and accessible name
func Role(role, name string) Locator {
	return Locator{Kind: ByRole, Role: role, Value: name}
}

// Button locates a button by its accessible name
func Button(name string) Locator {
	return Role("button", name)
}

// TestID locates an element by its data-testid attribute
func TestID(id string) Locator {
	return Locator{Kind: ByTestID, Value: id}
}

// CSS locates elements matching a CSS selector
func CSS(selector string) Locator {
	return Locator{Kind: ByCSS, Value: selector}
}

// WithExact requires a full, case-sensitive match of the text or name
func (l Locator) WithExact() Locator {
	l.Exact = true
	return l
}

// WithText keeps only elements containing text somewhere inside them
func (l Locator) WithText(text string) Locator {
	l.HasText = text
	return l
}

// First selects the first match
func (l Locator) First() Locator {
	return l.Nth(0)
}

// Nth selects the zero-based i-th match
func (l Locator) Nth(i int) Locator {
	l.Index = i
	l.Indexed = true
	return l
}

// Within scopes the locator to descendants of parent
func (l Locator) Within(parent Locator) Locator {
	p := parent
	l.Parent = &p
	return l
}

// String renders the locator in a selector-like form used in failure messages
func (l Locator) String() string {
	var b strings.Builder
	if l.Parent != nil {
		b.WriteString(l.Parent.String())
		b.WriteString(" >> ")
	}

	switch l.Kind {
	case ByText:
		fmt.Fprintf(&b, "text=%q", l.Value)
	case ByRole:
		fmt.Fprintf(&b, "role=%s[name=%q]", l.Role, l.Value)
	case ByTestID:
		fmt.Fprintf(&b, "testid=%s", l.Value)
	case ByCSS:
		fmt.Fprintf(&b, "css=%s", l.Value)
	default:
		fmt.Fprintf(&b, "unknown=%q", l.Value)
	}
	if l.Exact {
		b.WriteString("[exact]")
	}
	if l.HasText != "" {
		fmt.Fprintf(&b, " >> has-text=%q", l.HasText)
	}
	if l.Indexed {
		fmt.Fprintf(&b, " >> nth=%d", l.Index)
	}
	return b.String()
}
