package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// pollInterval is the re-check cadence of the Evaluate-based polls.
const pollInterval = 250 * time.Millisecond

// runBounded runs chromedp actions under a timeout, converting a deadline
// hit into a TimeoutError that names the locator and condition.
func (s *Session) runBounded(timeout time.Duration, loc Locator, condition string, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()

	err := chromedp.Run(ctx, actions...)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && s.tabCtx.Err() == nil {
		return &TimeoutError{Locator: loc, Condition: condition, Timeout: timeout}
	}
	return fmt.Errorf("%s on %s failed: %w", condition, loc, err)
}

// Find waits for the element to be present in the DOM.
func (s *Session) Find(loc Locator) error {
	s.logger.Debug().Str("locator", loc.String()).Msg("Finding element")
	return s.runBounded(s.cfg.DefaultTimeout(), loc, "presence",
		chromedp.WaitReady(loc.Selector, loc.queryOption()))
}

// FindVisible waits for the element to be visible.
func (s *Session) FindVisible(loc Locator) error {
	return s.runBounded(s.cfg.DefaultTimeout(), loc, "visibility",
		chromedp.WaitVisible(loc.Selector, loc.queryOption()))
}

// Click waits for the element to be visible and enabled, then clicks it.
func (s *Session) Click(loc Locator) error {
	s.logger.Debug().Str("locator", loc.String()).Msg("Clicking element")
	return s.runBounded(s.cfg.DefaultTimeout(), loc, "clickability",
		chromedp.WaitVisible(loc.Selector, loc.queryOption()),
		chromedp.WaitEnabled(loc.Selector, loc.queryOption()),
		chromedp.Click(loc.Selector, loc.queryOption()),
	)
}

// Type clears the field and types the text into it.
func (s *Session) Type(loc Locator, text string) error {
	return s.runBounded(s.cfg.DefaultTimeout(), loc, "typeability",
		chromedp.WaitVisible(loc.Selector, loc.queryOption()),
		chromedp.Clear(loc.Selector, loc.queryOption()),
		chromedp.SendKeys(loc.Selector, text, loc.queryOption()),
	)
}

// Text waits for visibility and returns the element's text.
func (s *Session) Text(loc Locator) (string, error) {
	var text string
	err := s.runBounded(s.cfg.DefaultTimeout(), loc, "text",
		chromedp.WaitVisible(loc.Selector, loc.queryOption()),
		chromedp.Text(loc.Selector, &text, loc.queryOption()),
	)
	return strings.TrimSpace(text), err
}

// Texts waits for at least one match, then returns the trimmed text of every
// matched element.
func (s *Session) Texts(loc Locator) ([]string, error) {
	if err := s.Find(loc); err != nil {
		return nil, err
	}
	var texts []string
	err := s.runBounded(s.cfg.DefaultTimeout(), loc, "texts",
		chromedp.Evaluate(loc.JSTexts(), &texts))
	return texts, err
}

// Count returns the number of elements currently matching the locator
// without waiting.
func (s *Session) Count(loc Locator) (int, error) {
	var count int
	err := s.runBounded(s.cfg.ShortTimeout(), loc, "count",
		chromedp.Evaluate(loc.JSCount(), &count))
	return count, err
}

// IsDisplayed reports whether the element becomes visible within the short
// timeout. A timeout is a negative answer, not an error.
func (s *Session) IsDisplayed(loc Locator) bool {
	err := s.runBounded(s.cfg.ShortTimeout(), loc, "visibility",
		chromedp.WaitVisible(loc.Selector, loc.queryOption()))
	if err == nil {
		return true
	}
	if !IsTimeout(err) {
		s.logger.Warn().Err(err).Str("locator", loc.String()).Msg("Visibility probe failed")
	}
	return false
}

// ScrollIntoView waits for the element and scrolls it to the viewport
// center.
func (s *Session) ScrollIntoView(loc Locator) error {
	if err := s.Find(loc); err != nil {
		return err
	}
	js := fmt.Sprintf(`(() => {
		const els = %s;
		if (els.length === 0) return false;
		els[0].scrollIntoView({behavior: 'smooth', block: 'center'});
		return true;
	})()`, loc.JSNodes())
	var ok bool
	if err := s.runBounded(s.cfg.ShortTimeout(), loc, "scroll", chromedp.Evaluate(js, &ok)); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no element to scroll to for %s", loc)
	}
	return nil
}

// WaitURLContains polls until the current URL contains the substring.
func (s *Session) WaitURLContains(partial string, timeout time.Duration) error {
	return s.PollUntil(timeout, fmt.Sprintf("URL to contain %q", partial), func(ctx context.Context) (bool, error) {
		var url string
		if err := chromedp.Run(ctx, chromedp.Location(&url)); err != nil {
			return false, err
		}
		return strings.Contains(url, partial), nil
	})
}

// PollUntil re-checks a condition at a fixed cadence until it holds or the
// timeout elapses. The condition receives a context bounded by the overall
// deadline.
func (s *Session) PollUntil(timeout time.Duration, condition string, check func(ctx context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := check(ctx)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("polling for %s failed: %w", condition, err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return &TimeoutError{Condition: condition, Timeout: timeout}
		case <-ticker.C:
		}
	}
}
