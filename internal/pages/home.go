package pages

import (
	"fmt"

	"github.com/Awaveform/insider-one-assessment/internal/browser"
	"github.com/Awaveform/insider-one-assessment/internal/common"
)

// Home page locators.
var (
	homeNavBar       = browser.CSS("nav.navbar")
	homeHeroSection  = browser.CSS("#hero-section, .hero-section, [data-bg-animation]")
	homeClients      = browser.XPath("//*[contains(@class, 'elementor')]//img[@alt]/..")
	homeFooter       = browser.CSS("footer")
	homeCookieAccept = browser.CSS("#wt-cli-accept-all-btn")
)

// HomePage drives the Insider One homepage.
type HomePage struct {
	session *browser.Session
	cfg     *common.Config
}

// NewHomePage returns a HomePage backed by the active browser session.
func NewHomePage(session *browser.Session, cfg *common.Config) *HomePage {
	return &HomePage{session: session, cfg: cfg}
}

// Open navigates to the homepage.
func (p *HomePage) Open() error {
	return p.session.Navigate(p.cfg.UI.HomeURL)
}

// CurrentURL returns the URL the browser is on.
func (p *HomePage) CurrentURL() (string, error) {
	return p.session.CurrentURL()
}

// IsCookieBannerDisplayed reports whether the cookie consent banner shows
// within the short timeout.
func (p *HomePage) IsCookieBannerDisplayed() bool {
	return p.session.IsDisplayed(homeCookieAccept)
}

// AcceptCookies clicks the consent button.
func (p *HomePage) AcceptCookies() error {
	if err := p.session.Click(homeCookieAccept); err != nil {
		return fmt.Errorf("failed to accept cookie banner: %w", err)
	}
	common.GetLogger().Info().Msg("Cookie consent accepted")
	return nil
}

// AcceptCookiesIfPresent dismisses the cookie banner when it appears,
// silently continuing when it does not.
func (p *HomePage) AcceptCookiesIfPresent() error {
	if !p.IsCookieBannerDisplayed() {
		return nil
	}
	return p.AcceptCookies()
}

// IsNavbarDisplayed reports whether the navigation bar is visible.
func (p *HomePage) IsNavbarDisplayed() bool {
	return p.session.IsDisplayed(homeNavBar)
}

// IsHeroDisplayed reports whether the hero/banner section is visible.
func (p *HomePage) IsHeroDisplayed() bool {
	return p.session.IsDisplayed(homeHeroSection)
}

// IsClientsDisplayed reports whether the clients/partners section is visible.
func (p *HomePage) IsClientsDisplayed() bool {
	return p.session.IsDisplayed(homeClients)
}

// IsFooterDisplayed reports whether the page footer is visible.
func (p *HomePage) IsFooterDisplayed() bool {
	return p.session.IsDisplayed(homeFooter)
}

// CheckMainBlocks surveys every main block of the homepage in one pass and
// returns the aggregated result, so a single assertion surfaces all missing
// blocks.
func (p *HomePage) CheckMainBlocks() BlockReport {
	blocks := []struct {
		name    string
		locator browser.Locator
	}{
		{"navbar", homeNavBar},
		{"hero section", homeHeroSection},
		{"clients section", homeClients},
		{"footer", homeFooter},
	}

	var missing, problems []string
	for _, block := range blocks {
		if p.session.IsDisplayed(block.locator) {
			continue
		}
		missing = append(missing, block.name)
		problems = append(problems, fmt.Sprintf("%s not visible within %v (%s)",
			block.name, p.cfg.ShortTimeout(), block.locator))
	}
	return NewBlockReport(missing, problems)
}
