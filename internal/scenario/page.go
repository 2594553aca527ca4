package scenario

// Page is a single browser tab. Every method blocks until the element is found
// and the action or expectation succeeds, or the page's timeout elapses.
type Page interface {
	Goto(url string) error
	Click(loc Locator) error
	Fill(loc Locator, value string) error
	// HandleNextDialog arms a one-shot handler for the next native dialog.
	HandleNextDialog(accept bool)
	ExpectVisible(loc Locator) error
	ExpectHidden(loc Locator) error
	ExpectText(loc Locator, text string) error
	ExpectCount(loc Locator, n int) error
	Close() error
}

// Browser opens isolated pages
type Browser interface {
	NewPage() (Page, error)
}
