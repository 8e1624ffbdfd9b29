package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/Awaveform/insider-one-assessment/internal/common"
)

// evalFunc runs a JavaScript expression in the active tab and decodes the
// result into out. Tests swap it for a fake so wait loops can run without a
// browser.
type evalFunc func(ctx context.Context, js string, out any) error

// Session owns one browser instance and the chromedp context of the active
// tab. Sessions are not safe for concurrent use; one test drives one session.
type Session struct {
	cfg    *common.Config
	logger arbor.ILogger

	browserCtx context.Context
	tabCtx     context.Context
	eval       evalFunc
	cleanup    []func()
}

// NewSession starts a browser according to the configuration and attaches to
// its first tab.
func NewSession(cfg *common.Config) (*Session, error) {
	execPath, err := resolveExecPath(cfg.Browser)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(cfg.Browser.WindowWidth, cfg.Browser.WindowHeight),
	)
	if cfg.Browser.Headless {
		opts = append(opts,
			chromedp.Flag("headless", "new"),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		cfg:        cfg,
		logger:     common.GetLogger(),
		browserCtx: browserCtx,
		tabCtx:     browserCtx,
	}
	s.eval = func(ctx context.Context, js string, out any) error {
		return chromedp.Run(ctx, chromedp.Evaluate(js, out))
	}
	s.cleanup = append(s.cleanup, cancelAlloc, cancelBrowser, func() {
		if err := chromedp.Cancel(browserCtx); err != nil {
			s.logger.Warn().Err(err).Msg("Browser cancel returned an error")
		}
	})

	// Start the browser now so a missing binary fails fast, not on the
	// first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Browser.Name, err)
	}

	s.logger.Info().
		Str("browser", cfg.Browser.Name).
		Bool("headless", cfg.Browser.Headless).
		Msg("Browser session started")

	return s, nil
}

// resolveExecPath maps the configured browser name to a binary. An explicit
// exec_path always wins. Every supported browser speaks the DevTools
// protocol chromedp drives.
func resolveExecPath(cfg common.BrowserConfig) (string, error) {
	if cfg.ExecPath != "" {
		return cfg.ExecPath, nil
	}
	switch cfg.Name {
	case "", "chrome":
		return "", nil // chromedp's default lookup
	case "chromium":
		return "chromium", nil
	case "edge":
		return "microsoft-edge", nil
	default:
		return "", fmt.Errorf("unsupported browser %q (chrome, chromium or edge)", cfg.Name)
	}
}

// Ctx returns the chromedp context of the active tab.
func (s *Session) Ctx() context.Context {
	return s.tabCtx
}

// Close tears the browser down. Safe to call after a failed start.
func (s *Session) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

// Navigate opens the given URL in the active tab.
func (s *Session) Navigate(url string) error {
	s.logger.Info().Str("url", url).Msg("Navigating")
	if err := chromedp.Run(s.tabCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL returns the URL of the active tab.
func (s *Session) CurrentURL() (string, error) {
	var url string
	if err := chromedp.Run(s.tabCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("failed to read current URL: %w", err)
	}
	return url, nil
}

// Title returns the document title of the active tab.
func (s *Session) Title() (string, error) {
	var title string
	if err := chromedp.Run(s.tabCtx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

// WatchNewTab registers interest in the next page target the browser opens.
// Call it before the click that spawns the tab, then pass the channel to
// SwitchToNewTab.
func (s *Session) WatchNewTab() <-chan target.ID {
	return chromedp.WaitNewTarget(s.tabCtx, func(info *target.Info) bool {
		return info.Type == "page" && info.URL != ""
	})
}

// SwitchToNewTab attaches the session to the tab announced on ch, making it
// the active tab for all subsequent operations.
func (s *Session) SwitchToNewTab(ch <-chan target.ID, timeout time.Duration) error {
	select {
	case id := <-ch:
		tabCtx, cancelTab := chromedp.NewContext(s.browserCtx, chromedp.WithTargetID(id))
		s.cleanup = append(s.cleanup, cancelTab)
		s.tabCtx = tabCtx
		s.logger.Info().Str("target_id", string(id)).Msg("Switched to new tab")
		return nil
	case <-time.After(timeout):
		return &TimeoutError{Condition: "new tab to open", Timeout: timeout}
	}
}

// Screenshot captures the full page into the given file.
func (s *Session) Screenshot(path string) error {
	var buf []byte
	if err := chromedp.Run(s.tabCtx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot %s: %w", path, err)
	}
	s.logger.Info().Str("path", path).Msg("Screenshot saved")
	return nil
}

// DefaultTimeout exposes the standard wait bound for callers composing their
// own polls.
func (s *Session) DefaultTimeout() time.Duration { return s.cfg.DefaultTimeout() }

// ShortTimeout exposes the probe wait bound.
func (s *Session) ShortTimeout() time.Duration { return s.cfg.ShortTimeout() }

// LongTimeout exposes the slow-transition wait bound.
func (s *Session) LongTimeout() time.Duration { return s.cfg.LongTimeout() }
