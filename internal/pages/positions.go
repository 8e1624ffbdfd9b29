package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Awaveform/insider-one-assessment/internal/browser"
	"github.com/Awaveform/insider-one-assessment/internal/common"
)

// Filter option constants.
const (
	QualityAssurance = "Quality Assurance"
	IstanbulTurkiye  = "Istanbul, Turkiye"
)

// Open positions page locators.
var (
	positionsLocationFilter   = browser.CSS("#filter-by-location")
	positionsDepartmentFilter = browser.CSS("#filter-by-department")
	positionsJobList          = browser.CSS("#jobs-list")
	positionsJobItems         = browser.CSS(".position-list-item")
	positionsJobTitles        = browser.CSS(".position-list-item .position-title")
	positionsJobDepartments   = browser.CSS(".position-list-item .position-department")
	positionsJobLocations     = browser.CSS(".position-list-item .position-location")
	positionsViewRoleButtons  = browser.CSS(".position-list-item a.btn")
)

// OpenPositionsPage drives the Insider One job listings page.
type OpenPositionsPage struct {
	session *browser.Session
	cfg     *common.Config
}

// NewOpenPositionsPage returns an OpenPositionsPage backed by the active
// browser session.
func NewOpenPositionsPage(session *browser.Session, cfg *common.Config) *OpenPositionsPage {
	return &OpenPositionsPage{session: session, cfg: cfg}
}

// Open navigates directly to the open-positions page.
func (p *OpenPositionsPage) Open() error {
	return p.session.Navigate(p.cfg.UI.OpenPositionsURL)
}

// FilterByLocation selects a location in the location filter. The selection
// is confirmed by re-polling until the dropdown reports the requested option.
func (p *OpenPositionsPage) FilterByLocation(location string) error {
	if err := p.session.ScrollIntoView(positionsLocationFilter); err != nil {
		return err
	}
	if err := p.session.SelectByText(positionsLocationFilter, location); err != nil {
		return err
	}
	common.GetLogger().Info().Str("location", location).Msg("Jobs filtered by location")
	return nil
}

// FilterByDepartment selects a department in the department filter.
func (p *OpenPositionsPage) FilterByDepartment(department string) error {
	if err := p.session.ScrollIntoView(positionsDepartmentFilter); err != nil {
		return err
	}
	if err := p.session.SelectByText(positionsDepartmentFilter, department); err != nil {
		return err
	}
	common.GetLogger().Info().Str("department", department).Msg("Jobs filtered by department")
	return nil
}

// SelectedDepartment returns the department filter's current selection.
func (p *OpenPositionsPage) SelectedDepartment() (string, error) {
	return p.session.SelectedOptionText(positionsDepartmentFilter)
}

// waitDepartmentSelected polls until the department filter reports the given
// selection. Shared with CareersPage, which lands here after "See all QA
// jobs".
func waitDepartmentSelected(session *browser.Session, department string, timeout time.Duration) error {
	return session.PollUntil(timeout, fmt.Sprintf("department filter to show %q", department),
		func(ctx context.Context) (bool, error) {
			selected, err := session.SelectedOptionText(positionsDepartmentFilter)
			if err != nil {
				return false, nil // page still loading
			}
			return selected == department, nil
		})
}

// WaitUntilFilteredByLocation polls until the job list is non-empty and
// every listed job shows the expected location. Returns a timeout error
// naming the condition otherwise.
func (p *OpenPositionsPage) WaitUntilFilteredByLocation(location string) error {
	return p.session.PollUntil(p.session.DefaultTimeout(),
		fmt.Sprintf("every job location to contain %q", location),
		func(ctx context.Context) (bool, error) {
			js := fmt.Sprintf(`(() => {
				const els = %s;
				if (els.length === 0) return false;
				return els.every(el => el.textContent.includes(%q));
			})()`, positionsJobLocations.JSNodes(), location)
			var ok bool
			if err := chromedp.Run(ctx, chromedp.Evaluate(js, &ok)); err != nil {
				return false, err
			}
			return ok, nil
		})
}

// ListedTitles returns the title text of every visible job card.
func (p *OpenPositionsPage) ListedTitles() ([]string, error) {
	return p.session.Texts(positionsJobTitles)
}

// ListedDepartments returns the department text of every visible job card.
func (p *OpenPositionsPage) ListedDepartments() ([]string, error) {
	return p.session.Texts(positionsJobDepartments)
}

// ListedLocations returns the location text of every visible job card.
func (p *OpenPositionsPage) ListedLocations() ([]string, error) {
	return p.session.Texts(positionsJobLocations)
}

// ClickViewRole clicks the "View Role" button on the index-th job card
// (0-indexed) and switches to the application tab it opens. The button is
// revealed by a hover animation, so the click waits briefly after scrolling.
func (p *OpenPositionsPage) ClickViewRole(index int) error {
	logger := common.GetLogger()
	logger.Info().Int("index", index).Msg("Clicking View Role")

	err := p.session.PollUntil(p.session.DefaultTimeout(),
		fmt.Sprintf("job card %d to render its View Role button", index),
		func(ctx context.Context) (bool, error) {
			var count int
			if err := chromedp.Run(ctx, chromedp.Evaluate(positionsViewRoleButtons.JSCount(), &count)); err != nil {
				return false, err
			}
			return count > index, nil
		})
	if err != nil {
		return err
	}

	tab := p.session.WatchNewTab()

	js := fmt.Sprintf(`(() => {
		const els = %s;
		if (els.length <= %d) return false;
		const btn = els[%d];
		btn.scrollIntoView({behavior: 'smooth', block: 'center'});
		return true;
	})()`, positionsViewRoleButtons.JSNodes(), index, index)
	var ok bool
	err = chromedp.Run(p.session.Ctx(), chromedp.Evaluate(js, &ok))
	if err := viewRoleButtonError("scroll to", index, ok, err); err != nil {
		return err
	}

	// Hover animation reveals the button.
	if err := chromedp.Run(p.session.Ctx(), chromedp.Sleep(500*time.Millisecond)); err != nil {
		return err
	}

	clickJS := fmt.Sprintf(`(() => {
		const els = %s;
		if (els.length <= %d) return false;
		els[%d].click();
		return true;
	})()`, positionsViewRoleButtons.JSNodes(), index, index)
	err = chromedp.Run(p.session.Ctx(), chromedp.Evaluate(clickJS, &ok))
	if err := viewRoleButtonError("click", index, ok, err); err != nil {
		return err
	}

	if err := p.session.SwitchToNewTab(tab, p.session.DefaultTimeout()); err != nil {
		return fmt.Errorf("View Role did not open a new tab: %w", err)
	}
	return nil
}

// viewRoleButtonError folds the two failure modes of a View Role button
// evaluation: the script failing, or the script running fine but not finding
// the nth button.
func viewRoleButtonError(action string, index int, found bool, err error) error {
	if err != nil {
		return fmt.Errorf("failed to %s View Role button %d: %w", action, index, err)
	}
	if !found {
		return fmt.Errorf("View Role button %d not present in the job list", index)
	}
	return nil
}

// WaitForApplicationForm waits until the new tab lands on the Lever
// application form.
func (p *OpenPositionsPage) WaitForApplicationForm() error {
	return p.session.WaitURLContains(p.cfg.UI.LeverDomain, p.session.DefaultTimeout())
}

// CurrentURL returns the URL of the active tab.
func (p *OpenPositionsPage) CurrentURL() (string, error) {
	return p.session.CurrentURL()
}

// IsJobListPresent reports whether the job list container is visible and
// holds at least one job card.
func (p *OpenPositionsPage) IsJobListPresent() bool {
	if !p.session.IsDisplayed(positionsJobList) {
		return false
	}
	count, err := p.session.Count(positionsJobItems)
	return err == nil && count > 0
}
