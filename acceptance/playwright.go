//go:build acceptance
// +build acceptance

package acceptance

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/screenplay/config"
)

// PlaywrightFixture manages a Playwright browser for page object tests.
type PlaywrightFixture struct {
	PW      *playwright.Playwright
	Browser playwright.Browser
	cfg     *config.Config
}

// NewPlaywrightFixture launches the configured browser and closes it when the test finishes.
// Set HEADLESS=false to watch the tests in a visible browser.
func NewPlaywrightFixture(t *testing.T, cfg *config.Config) *PlaywrightFixture {
	t.Helper()

	pw, err := playwright.Run()
	require.NoError(t, err, "failed to start playwright")

	var browserType playwright.BrowserType
	switch cfg.Browser.Type {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Browser.Headless),
		SlowMo:   playwright.Float(float64(cfg.Browser.SlowMo.Milliseconds())),
	})
	require.NoError(t, err, "failed to launch browser")

	pf := &PlaywrightFixture{PW: pw, Browser: browser, cfg: cfg}
	t.Cleanup(pf.Close)
	return pf
}

// NewPage opens a page in a new browser context with isolated cookies and storage.
func (pf *PlaywrightFixture) NewPage(t *testing.T) playwright.Page {
	t.Helper()

	ctx, err := pf.Browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  pf.cfg.Browser.Viewport.Width,
			Height: pf.cfg.Browser.Viewport.Height,
		},
	})
	require.NoError(t, err, "failed to create browser context")
	t.Cleanup(func() { _ = ctx.Close() })

	page, err := ctx.NewPage()
	require.NoError(t, err, "failed to create page")
	return page
}

// Close releases all Playwright resources.
func (pf *PlaywrightFixture) Close() {
	_ = pf.Browser.Close()
	_ = pf.PW.Stop()
}
