// Package browser wraps chromedp primitives with bounded explicit waits so
// page objects act only after a condition holds, or fail with a timeout
// error carrying the locator context.
package browser

import (
	"fmt"

	"github.com/chromedp/chromedp"
)

// Strategy identifies how a selector string is interpreted.
type Strategy string

const (
	// ByCSS matches elements with a CSS selector.
	ByCSS Strategy = "css"
	// ByXPath matches elements with an XPath expression.
	ByXPath Strategy = "xpath"
)

// Locator is an immutable (strategy, selector) pair identifying zero or more
// elements. Page objects declare locators as package constants.
type Locator struct {
	Strategy Strategy
	Selector string
}

// CSS returns a CSS locator.
func CSS(selector string) Locator {
	return Locator{Strategy: ByCSS, Selector: selector}
}

// XPath returns an XPath locator.
func XPath(selector string) Locator {
	return Locator{Strategy: ByXPath, Selector: selector}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.Strategy, l.Selector)
}

// queryOption maps the locator to the chromedp query option for native
// element actions.
func (l Locator) queryOption() chromedp.QueryOption {
	if l.Strategy == ByXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// JSNodes returns a JavaScript expression evaluating to an array of the
// matched elements, used by the Evaluate-based helpers.
func (l Locator) JSNodes() string {
	if l.Strategy == ByXPath {
		return fmt.Sprintf(`(() => {
			const out = [];
			const it = document.evaluate(%q, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
			for (let i = 0; i < it.snapshotLength; i++) out.push(it.snapshotItem(i));
			return out;
		})()`, l.Selector)
	}
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%q))`, l.Selector)
}

// JSTexts returns a JavaScript expression evaluating to the trimmed text of
// every matched element.
func (l Locator) JSTexts() string {
	return fmt.Sprintf(`%s.map(el => el.textContent.trim())`, l.JSNodes())
}

// JSCount returns a JavaScript expression evaluating to the match count.
func (l Locator) JSCount() string {
	return fmt.Sprintf(`%s.length`, l.JSNodes())
}
