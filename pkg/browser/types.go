package browser

import (
	"errors"

	"github.com/playwright-community/playwright-go"
)

// Defaults for session creation and actions.
const (
	// DefaultTimeout is the default per-action timeout in milliseconds.
	DefaultTimeout = 30000.0

	// MaxTextLength is the number of characters of page text returned by Text.
	MaxTextLength = 1000
)

// ErrClosed is returned by actions after Shutdown.
var ErrClosed = errors.New("browser: session manager is shut down")

// Config configures the managed browser session.
type Config struct {
	// Headless controls whether Chromium runs without a visible window.
	Headless bool

	// Timeout is the default timeout for page operations, in milliseconds.
	// Zero means DefaultTimeout.
	Timeout float64

	// Install runs the Playwright driver/browser installation before the
	// first launch. Needed on hosts that have never run Playwright.
	Install bool
}

// DefaultConfig returns a Config for a headless session with default timeouts.
func DefaultConfig() Config {
	return Config{
		Headless: true,
		Timeout:  DefaultTimeout,
		Install:  false,
	}
}

// OpenURLResult is the result of an open_url action.
type OpenURLResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ClickResult is the result of a click action.
type ClickResult struct {
	Status   string `json:"status"`
	Selector string `json:"selector"`
}

// FillResult is the result of a fill_form action.
type FillResult struct {
	Status   string `json:"status"`
	Selector string `json:"selector"`
	Text     string `json:"text"`
}

// TextResult is the result of a get_text action.
type TextResult struct {
	Text string `json:"text"`
}

// page is the subset of playwright.Page the actions use. It exists so the
// lazy-init and action logic can be tested without a real browser.
type page interface {
	Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error)
	Title() (string, error)
	URL() string
	Click(selector string, options ...playwright.PageClickOptions) error
	Fill(selector string, value string, options ...playwright.PageFillOptions) error
	InnerText(selector string, options ...playwright.PageInnerTextOptions) (string, error)
}
