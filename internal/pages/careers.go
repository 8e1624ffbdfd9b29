package pages

import (
	"fmt"

	"github.com/Awaveform/insider-one-assessment/internal/browser"
	"github.com/Awaveform/insider-one-assessment/internal/common"
)

// Careers page locators.
var (
	careersPageTitle     = browser.CSS("h1, .big-title")
	careersSeeAllQAJobs  = browser.XPath("//a[contains(text(), 'See all QA jobs')]")
	careersTeamsSection  = browser.CSS(".job-team, [data-id='jobs'], .career-position-list")
	careersLocations     = browser.CSS(".location-slider, [class*='location']")
	careersLifeAtInsider = browser.XPath("//*[contains(text(), 'Life at Insider')]")
)

// CareersPage drives the Insider One Quality Assurance careers page.
type CareersPage struct {
	session *browser.Session
	cfg     *common.Config
}

// NewCareersPage returns a CareersPage backed by the active browser session.
func NewCareersPage(session *browser.Session, cfg *common.Config) *CareersPage {
	return &CareersPage{session: session, cfg: cfg}
}

// Open navigates to the QA careers page.
func (p *CareersPage) Open() error {
	return p.session.Navigate(p.cfg.UI.CareersQAURL)
}

// ClickSeeAllQAJobs scrolls to and clicks "See all QA jobs", then waits for
// the open-positions page to pre-select the Quality Assurance department.
// The pre-selection is applied by the page's own scripts well after load, so
// the wait uses the long bound.
func (p *CareersPage) ClickSeeAllQAJobs() error {
	if err := p.session.ScrollIntoView(careersSeeAllQAJobs); err != nil {
		return err
	}
	if err := p.session.Click(careersSeeAllQAJobs); err != nil {
		return err
	}
	if err := waitDepartmentSelected(p.session, QualityAssurance, p.session.LongTimeout()); err != nil {
		return fmt.Errorf("open positions page did not pre-select %q: %w", QualityAssurance, err)
	}
	common.GetLogger().Info().Msg("Clicked 'See all QA jobs'")
	return nil
}

// IsPageTitleDisplayed reports whether the page title is visible.
func (p *CareersPage) IsPageTitleDisplayed() bool {
	return p.session.IsDisplayed(careersPageTitle)
}

// IsTeamsSectionDisplayed reports whether the teams/jobs section is visible.
func (p *CareersPage) IsTeamsSectionDisplayed() bool {
	return p.session.IsDisplayed(careersTeamsSection)
}

// IsLocationsSectionDisplayed reports whether the locations section is
// visible.
func (p *CareersPage) IsLocationsSectionDisplayed() bool {
	return p.session.IsDisplayed(careersLocations)
}

// IsLifeAtInsiderDisplayed reports whether the "Life at Insider" section is
// visible.
func (p *CareersPage) IsLifeAtInsiderDisplayed() bool {
	return p.session.IsDisplayed(careersLifeAtInsider)
}
