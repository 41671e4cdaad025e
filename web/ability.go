package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/screenplay"
	"github.com/networkteam/screenplay/collector"
	"github.com/networkteam/screenplay/config"
)

// Options configures the browser of a BrowseTheWeb ability.
type Options struct {
	// BrowserType is one of chromium, firefox or webkit
	BrowserType string
	Headless    bool
	SlowMo      time.Duration
	// DefaultTimeout for page actions, 0 keeps the Playwright default
	DefaultTimeout time.Duration
	ViewportWidth  int
	ViewportHeight int
	BaseURL        string
	// StorageStatePath initializes the browser context from a saved session state
	StorageStatePath string
	// SessionStateDir resolves session state names to files
	SessionStateDir string
	// CaptureCapacity bounds captured network requests and console messages
	CaptureCapacity uint64
	// ScreenshotOnFailure attaches a screenshot to a failed step
	ScreenshotOnFailure bool
	Logger              *slog.Logger
}

// DefaultOptions returns options matching the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewDefaultConfig())
}

// OptionsFromConfig maps the configuration to ability options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BrowserType:         cfg.Browser.Type,
		Headless:            cfg.Browser.Headless,
		SlowMo:              cfg.Browser.SlowMo,
		DefaultTimeout:      cfg.Browser.DefaultTimeout,
		ViewportWidth:       cfg.Browser.Viewport.Width,
		ViewportHeight:      cfg.Browser.Viewport.Height,
		BaseURL:             cfg.Browser.BaseURL,
		SessionStateDir:     cfg.SessionState.Dir,
		CaptureCapacity:     cfg.Capture.Capacity,
		ScreenshotOnFailure: true,
		Logger:              slog.Default(),
	}
}

// BrowseTheWeb is the ability to drive a browser page with Playwright.
// Playwright, browser, context and page are created on first use and released by TearDown.
type BrowseTheWeb struct {
	options Options
	logger  *slog.Logger

	mu       sync.Mutex
	pw       *playwright.Playwright
	browser  playwright.Browser
	context  playwright.BrowserContext
	page     playwright.Page
	tornDown bool

	network          *collector.NetworkCollector
	console          *collector.ConsoleCollector
	capturingNetwork atomic.Bool
	capturingConsole atomic.Bool
	cancelLogging    context.CancelFunc

	requestsMu sync.Mutex
	requestIDs map[playwright.Request]uuid.UUID

	lastAPIResponse atomic.Pointer[APIResponse]
}

var (
	_ screenplay.HasTeardown      = &BrowseTheWeb{}
	_ screenplay.EvidenceProvider = &BrowseTheWeb{}
)

// UsingTheDefaultConfiguration creates the ability from screenplay.yaml and the environment.
func UsingTheDefaultConfiguration() (*BrowseTheWeb, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return WithOptions(OptionsFromConfig(cfg)), nil
}

// WithOptions creates the ability. No browser is started until a page is needed.
func WithOptions(options Options) *BrowseTheWeb {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.CaptureCapacity == 0 {
		options.CaptureCapacity = collector.DefaultNetworkCollectorOptions().Capacity
	}

	b := &BrowseTheWeb{
		options:    options,
		logger:     options.Logger.With(slog.String("browser", options.BrowserType)),
		network:    collector.NewNetworkCollector(options.CaptureCapacity),
		console:    collector.NewConsoleCollector(options.CaptureCapacity),
		requestIDs: make(map[playwright.Request]uuid.UUID),
	}
	b.logConsoleErrors()

	return b
}

// As returns the BrowseTheWeb ability of an actor.
func As(actor *screenplay.Actor) (*BrowseTheWeb, error) {
	return screenplay.AbilityOf[*BrowseTheWeb](actor)
}

// CurrentPageOf returns the current page of an actor that can browse the web.
func CurrentPageOf(actor *screenplay.Actor) (playwright.Page, error) {
	b, err := As(actor)
	if err != nil {
		return nil, err
	}
	return b.CurrentPage()
}

func (b *BrowseTheWeb) Options() Options {
	return b.options
}

// CurrentPage returns the page, launching the browser on first use.
func (b *BrowseTheWeb) CurrentPage() (playwright.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensurePage(); err != nil {
		return nil, err
	}
	return b.page, nil
}

// CurrentContext returns the browser context, launching the browser on first use.
func (b *BrowseTheWeb) CurrentContext() (playwright.BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensurePage(); err != nil {
		return nil, err
	}
	return b.context, nil
}

// NotifyScreenChange waits until the page settled after an action that changed the screen.
func (b *BrowseTheWeb) NotifyScreenChange() error {
	page, err := b.CurrentPage()
	if err != nil {
		return err
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("waiting for page to settle: %w", err)
	}
	return nil
}

// Network returns the captured network requests.
func (b *BrowseTheWeb) Network() *collector.NetworkCollector {
	return b.network
}

// Console returns the captured console messages.
func (b *BrowseTheWeb) Console() *collector.ConsoleCollector {
	return b.console
}

// StartCapturingNetwork records network requests of the page from now on.
func (b *BrowseTheWeb) StartCapturingNetwork() {
	b.capturingNetwork.Store(true)
}

// StartCapturingConsole records console messages of the page from now on.
func (b *BrowseTheWeb) StartCapturingConsole() {
	b.capturingConsole.Store(true)
}

// LastAPIResponse returns the response of the last API request.
func (b *BrowseTheWeb) LastAPIResponse() (*APIResponse, error) {
	resp := b.lastAPIResponse.Load()
	if resp == nil {
		return nil, ErrNoAPIResponse
	}
	return resp, nil
}

func (b *BrowseTheWeb) setLastAPIResponse(resp *APIResponse) {
	b.lastAPIResponse.Store(resp)
}

// TearDown closes page, context, browser and Playwright. It is safe to call it more than once.
func (b *BrowseTheWeb) TearDown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tornDown {
		return nil
	}
	b.tornDown = true

	if b.cancelLogging != nil {
		b.cancelLogging()
	}
	b.network.Close()
	b.console.Close()

	var errs []error
	if b.page != nil {
		if err := b.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing page: %w", err))
		}
	}
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser context: %w", err))
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stopping playwright: %w", err))
		}
		b.logger.Debug("Browser closed")
	}

	b.page, b.context, b.browser, b.pw = nil, nil, nil, nil
	return errors.Join(errs...)
}

// FailureEvidence returns a screenshot and the captured console and network records.
func (b *BrowseTheWeb) FailureEvidence() []screenplay.Evidence {
	var evidence []screenplay.Evidence

	b.mu.Lock()
	page := b.page
	b.mu.Unlock()

	if page != nil && b.options.ScreenshotOnFailure {
		if png, err := page.Screenshot(); err == nil {
			evidence = append(evidence, screenplay.Evidence{Title: "Screenshot", ContentType: "image/png", Content: png})
		} else {
			b.logger.Warn("Could not take failure screenshot", slog.Any("error", err))
		}
	}
	if messages := b.console.Messages(); len(messages) > 0 {
		evidence = append(evidence, ConsoleEvidence("Console messages", messages))
	}
	if requests := b.network.Requests(); len(requests) > 0 {
		evidence = append(evidence, NetworkEvidence("Network requests", requests))
	}

	return evidence
}

// ensurePage expects b.mu to be held
func (b *BrowseTheWeb) ensurePage() error {
	if b.tornDown {
		return errors.New("browser was already torn down")
	}
	if b.page != nil {
		return nil
	}
	if err := b.launch(); err != nil {
		return err
	}
	return b.openContext(b.options.StorageStatePath)
}

func (b *BrowseTheWeb) launch() error {
	if b.browser != nil {
		return nil
	}

	pw, err := playwright.Run(&playwright.RunOptions{Stdout: io.Discard})
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch strings.ToLower(b.options.BrowserType) {
	case "", "chromium":
		browserType = pw.Chromium
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		return fmt.Errorf("unknown browser type %q", b.options.BrowserType)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.options.Headless),
	}
	if b.options.SlowMo > 0 {
		launchOpts.SlowMo = playwright.Float(float64(b.options.SlowMo.Milliseconds()))
	}
	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	b.pw = pw
	b.browser = browser
	b.logger.Debug("Browser launched", slog.Bool("headless", b.options.Headless))
	return nil
}

// openContext replaces the current context and page, expects b.mu to be held.
// Captured records and capture flags are kept across a replaced context, requests still
// pending in the closed context are forgotten.
func (b *BrowseTheWeb) openContext(storageStatePath string) error {
	if b.context != nil {
		if err := b.context.Close(); err != nil {
			return fmt.Errorf("closing browser context: %w", err)
		}
		b.context, b.page = nil, nil
		b.forgetPendingRequests()
	}

	contextOpts := playwright.BrowserNewContextOptions{}
	if b.options.ViewportWidth > 0 && b.options.ViewportHeight > 0 {
		contextOpts.Viewport = &playwright.Size{
			Width:  b.options.ViewportWidth,
			Height: b.options.ViewportHeight,
		}
	}
	if b.options.BaseURL != "" {
		contextOpts.BaseURL = playwright.String(b.options.BaseURL)
	}
	if storageStatePath != "" {
		contextOpts.StorageStatePath = playwright.String(storageStatePath)
	}

	browserContext, err := b.browser.NewContext(contextOpts)
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		_ = browserContext.Close()
		return fmt.Errorf("failed to create page: %w", err)
	}
	if b.options.DefaultTimeout > 0 {
		page.SetDefaultTimeout(float64(b.options.DefaultTimeout.Milliseconds()))
	}

	b.listenTo(page)
	b.context = browserContext
	b.page = page
	return nil
}

// listenTo feeds page events into the collectors while capturing is enabled
func (b *BrowseTheWeb) listenTo(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		if !b.capturingConsole.Load() {
			return
		}
		b.console.Add(collector.ConsoleMessage{
			Level:     collector.ParseConsoleLevel(msg.Type()),
			Text:      msg.Text(),
			URL:       page.URL(),
			Timestamp: time.Now(),
		})
	})

	page.OnRequest(func(req playwright.Request) {
		if !b.capturingNetwork.Load() {
			return
		}
		id := uuid.Must(uuid.NewV7())
		b.requestsMu.Lock()
		b.requestIDs[req] = id
		b.requestsMu.Unlock()

		b.network.RequestStarted(id, req.Method(), req.URL(), req.ResourceType(), time.Now())
	})

	page.OnResponse(func(res playwright.Response) {
		if id, ok := b.requestID(res.Request(), false); ok {
			b.network.ResponseReceived(id, res.Status(), res.StatusText(), time.Now())
		}
	})

	page.OnRequestFinished(func(req playwright.Request) {
		if id, ok := b.requestID(req, true); ok {
			b.network.RequestFinished(id, time.Now())
		}
	})

	page.OnRequestFailed(func(req playwright.Request) {
		id, ok := b.requestID(req, true)
		if !ok {
			return
		}
		failure := "request failed"
		if err := req.Failure(); err != nil {
			failure = err.Error()
		}
		b.network.RequestFailed(id, failure, time.Now())
	})
}

// forgetPendingRequests drops the correlation of requests that did not finish yet
func (b *BrowseTheWeb) forgetPendingRequests() {
	b.requestsMu.Lock()
	defer b.requestsMu.Unlock()

	clear(b.requestIDs)
}

func (b *BrowseTheWeb) requestID(req playwright.Request, release bool) (uuid.UUID, bool) {
	b.requestsMu.Lock()
	defer b.requestsMu.Unlock()

	id, ok := b.requestIDs[req]
	if ok && release {
		delete(b.requestIDs, req)
	}
	return id, ok
}

// logConsoleErrors logs captured console errors until the ability is torn down
func (b *BrowseTheWeb) logConsoleErrors() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLogging = cancel

	messages := b.console.Subscribe(ctx)
	go func() {
		for msg := range messages {
			if msg.Level == collector.LevelError {
				b.logger.Warn("Console error", slog.String("text", msg.Text), slog.String("url", msg.URL))
			}
		}
	}()
}
