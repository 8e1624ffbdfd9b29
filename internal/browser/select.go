package browser

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SelectByText selects the option of a <select> element whose visible text
// matches the requested value, then re-polls until the element reports that
// option as selected. Filter widgets re-render their select boxes after
// applying, so the first selection can silently revert; the confirmation
// poll re-applies it until it sticks. Returns ErrSelectionNotConverged when
// the selected text never matches within the default timeout.
func (s *Session) SelectByText(loc Locator, option string) error {
	if err := s.FindVisible(loc); err != nil {
		return err
	}

	s.logger.Debug().
		Str("locator", loc.String()).
		Str("option", option).
		Msg("Selecting dropdown option")

	return s.selectConverge(loc, option, s.cfg.DefaultTimeout())
}

// selectConverge re-applies the selection on every poll tick until the
// element reports the requested option as selected.
func (s *Session) selectConverge(loc Locator, option string, timeout time.Duration) error {
	err := s.PollUntil(timeout, fmt.Sprintf("option %q to be selected", option), func(ctx context.Context) (bool, error) {
		applied, err := s.applySelection(ctx, loc, option)
		if err != nil {
			return false, err
		}
		if !applied {
			// Option not rendered yet; keep polling.
			return false, nil
		}
		selected, err := s.selectedOptionText(ctx, loc)
		if err != nil {
			return false, err
		}
		return selected == option, nil
	})
	if err == nil {
		return nil
	}
	if IsTimeout(err) {
		return fmt.Errorf("%w: option %q on %s not selected within %v",
			ErrSelectionNotConverged, option, loc, timeout)
	}
	return err
}

// SelectedOptionText returns the visible text of the currently selected
// option.
func (s *Session) SelectedOptionText(loc Locator) (string, error) {
	ctx, cancel := context.WithTimeout(s.tabCtx, s.cfg.DefaultTimeout())
	defer cancel()
	return s.selectedOptionText(ctx, loc)
}

// applySelection picks the option by visible text and fires the input and
// change events the page's filter scripts listen for. Returns false when no
// option with that text exists yet.
func (s *Session) applySelection(ctx context.Context, loc Locator, option string) (bool, error) {
	js := fmt.Sprintf(`(() => {
		const els = %s;
		if (els.length === 0) return false;
		const select = els[0];
		const want = %q;
		for (const opt of select.options) {
			if (opt.text.trim() === want) {
				if (select.value !== opt.value) {
					select.value = opt.value;
					select.dispatchEvent(new Event('input', {bubbles: true}));
					select.dispatchEvent(new Event('change', {bubbles: true}));
				}
				return true;
			}
		}
		return false;
	})()`, loc.JSNodes(), option)

	var applied bool
	if err := s.eval(ctx, js, &applied); err != nil {
		return false, err
	}
	return applied, nil
}

func (s *Session) selectedOptionText(ctx context.Context, loc Locator) (string, error) {
	js := fmt.Sprintf(`(() => {
		const els = %s;
		if (els.length === 0) return "";
		const select = els[0];
		if (select.selectedIndex < 0) return "";
		return select.options[select.selectedIndex].text.trim();
	})()`, loc.JSNodes())

	var text string
	if err := s.eval(ctx, js, &text); err != nil {
		return "", fmt.Errorf("failed to read selected option of %s: %w", loc, err)
	}
	return strings.TrimSpace(text), nil
}
