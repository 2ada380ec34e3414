package browser

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/browsd/browsd/pkg/logging"
)

// Manager owns the lazily-created browser session: one Playwright instance,
// one Chromium process, one page.
type Manager struct {
	config Config
	log    *slog.Logger

	mu     sync.Mutex
	page   page
	closer func() error
	closed bool

	// launch creates the session. Overridable in tests.
	launch func() (page, func() error, error)
}

// NewManager creates a session manager. No browser is launched until the
// first action needs the page.
func NewManager(cfg Config) *Manager {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	m := &Manager{
		config: cfg,
		log:    logging.Nop(),
	}
	m.launch = m.launchChromium
	return m
}

// SetLogger sets the operational logger for the manager.
func (m *Manager) SetLogger(log *slog.Logger) {
	if log != nil {
		m.log = log
	}
}

// acquire returns the cached page, launching the browser on first use.
// The mutex covers the whole launch so concurrent first calls create at most
// one session. A failed launch leaves no cached state behind; the next call
// retries.
func (m *Manager) acquire() (page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.page != nil {
		return m.page, nil
	}

	p, closer, err := m.launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch: %w", err)
	}

	m.page = p
	m.closer = closer
	m.log.Info("browser session launched", "headless", m.config.Headless)
	return m.page, nil
}

// launchChromium starts Playwright, launches headless Chromium, and opens the
// single page.
func (m *Manager) launchChromium() (page, func() error, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if m.config.Install {
		if err := playwright.Install(opts); err != nil {
			return nil, nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	pg, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("failed to create page: %w", err)
	}
	pg.SetDefaultTimeout(m.config.Timeout)

	closer := func() error {
		var errs []error
		if err := pg.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := browser.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := pw.Stop(); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("errors closing session: %v", errs)
		}
		return nil
	}

	return pg, closer, nil
}

// Launched reports whether the browser session currently exists.
func (m *Manager) Launched() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page != nil
}

// Shutdown closes the browser session if one exists and clears the cached
// handles. Idempotent: calling it with no session is a no-op. After Shutdown
// all actions fail with ErrClosed.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.page == nil {
		return nil
	}

	closer := m.closer
	m.page = nil
	m.closer = nil

	m.log.Info("closing browser session")
	if closer != nil {
		return closer()
	}
	return nil
}
