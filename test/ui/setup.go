// Package ui drives the insiderone.com careers flow through a real browser.
// The tests are opt-in: set UI_TESTS=1 to enable them (a Chrome-family
// browser must be installed; set TEST_BROWSER / TEST_BROWSER_PATH to pick a
// different one).
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Awaveform/insider-one-assessment/internal/browser"
	"github.com/Awaveform/insider-one-assessment/internal/common"
	"github.com/Awaveform/insider-one-assessment/internal/pages"
)

var cfg *common.Config

func TestMain(m *testing.M) {
	var err error
	cfg, err = common.LoadFromFiles(os.Getenv("SUITE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	common.SetupLogger(cfg)
	os.Exit(m.Run())
}

// requireLive skips the test unless live UI testing is enabled.
func requireLive(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if os.Getenv("UI_TESTS") != "1" {
		t.Skip("set UI_TESTS=1 to run browser tests")
	}
}

// uiTestContext bundles the browser session with the page objects and
// captures a screenshot when the test fails.
type uiTestContext struct {
	T         *testing.T
	Session   *browser.Session
	Home      *pages.HomePage
	Careers   *pages.CareersPage
	Positions *pages.OpenPositionsPage

	screenshotNum int
}

// newUITestContext starts a browser session for the test. The session is
// closed on cleanup, after a failure screenshot has been taken if needed.
func newUITestContext(t *testing.T) *uiTestContext {
	t.Helper()
	requireLive(t)

	session, err := browser.NewSession(cfg)
	if err != nil {
		t.Fatalf("failed to start browser session: %v", err)
	}

	utc := &uiTestContext{
		T:         t,
		Session:   session,
		Home:      pages.NewHomePage(session, cfg),
		Careers:   pages.NewCareersPage(session, cfg),
		Positions: pages.NewOpenPositionsPage(session, cfg),
	}

	t.Cleanup(func() {
		if t.Failed() {
			utc.Screenshot("failure")
		}
		session.Close()
	})
	return utc
}

// Screenshot captures the full page into the results directory under a
// sequential, test-scoped name. Capture errors are logged, never fatal.
func (utc *uiTestContext) Screenshot(name string) {
	utc.screenshotNum++
	dir := filepath.Join(cfg.Output.ResultsDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utc.T.Logf("failed to create screenshot dir: %v", err)
		return
	}

	file := fmt.Sprintf("%s_%02d_%s_%s.png",
		sanitizeName(utc.T.Name()), utc.screenshotNum, name,
		time.Now().Format("150405"))
	path := filepath.Join(dir, file)
	if err := utc.Session.Screenshot(path); err != nil {
		utc.T.Logf("failed to capture screenshot %s: %v", path, err)
		return
	}
	utc.T.Logf("screenshot saved: %s", path)
}

// openFilteredPositions walks the shared path of the careers flow: home page
// with cookies accepted, QA careers page, See all QA jobs, then both filters
// applied.
func (utc *uiTestContext) openFilteredPositions() {
	utc.T.Helper()

	if err := utc.Home.Open(); err != nil {
		utc.T.Fatalf("failed to open home page: %v", err)
	}
	if err := utc.Home.AcceptCookiesIfPresent(); err != nil {
		utc.T.Fatalf("failed to accept cookies: %v", err)
	}
	if err := utc.Careers.Open(); err != nil {
		utc.T.Fatalf("failed to open QA careers page: %v", err)
	}
	if err := utc.Careers.ClickSeeAllQAJobs(); err != nil {
		utc.T.Fatalf("failed to click 'See all QA jobs': %v", err)
	}
	if err := utc.Positions.FilterByLocation(pages.IstanbulTurkiye); err != nil {
		utc.T.Fatalf("failed to filter by location: %v", err)
	}
	if err := utc.Positions.FilterByDepartment(pages.QualityAssurance); err != nil {
		utc.T.Fatalf("failed to filter by department: %v", err)
	}
	if err := utc.Positions.WaitUntilFilteredByLocation(pages.IstanbulTurkiye); err != nil {
		utc.T.Fatalf("job list did not settle on location %q: %v", pages.IstanbulTurkiye, err)
	}
}

func sanitizeName(name string) string {
	return strings.NewReplacer("/", "_", " ", "_").Replace(name)
}
