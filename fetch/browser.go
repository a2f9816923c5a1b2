package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/mindsgn-studio/mission-to-mars/internal/model"
	"go.uber.org/zap"
)

// Browser opens short-lived Chrome sessions. It holds no browser process
// between calls.
type Browser struct {
	cfg    model.BrowserConfig
	logger *zap.Logger
}

func NewBrowser(cfg model.BrowserConfig, logger *zap.Logger) *Browser {
	if cfg.ElementTimeout <= 0 {
		cfg.ElementTimeout = 10 * time.Second
	}
	return &Browser{cfg: cfg, logger: logger}
}

// Open starts (or connects to) Chrome and opens a blank page. The returned
// session owns the process and must be closed.
func (b *Browser) Open(ctx context.Context) (Session, error) {
	s := &browserSession{wait: b.cfg.ElementTimeout, logger: b.logger}

	wsURL := b.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(b.cfg.Headless).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, &SessionError{Op: "launch", Err: err}
		}
		s.lnch = l
		wsURL = u
		b.logger.Debug("launched local chrome", zap.String("url", wsURL))
	} else {
		b.logger.Debug("connecting to remote chrome", zap.String("url", wsURL))
	}

	browser := rod.New().ControlURL(wsURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		s.Close()
		return nil, &SessionError{Op: "connect", URL: wsURL, Err: err}
	}
	s.browser = browser

	var (
		page *rod.Page
		err  error
	)
	if b.cfg.Stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		s.Close()
		return nil, &SessionError{Op: "create page", Err: err}
	}
	s.page = page
	return s, nil
}

type browserSession struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	page    *rod.Page
	url     string
	wait    time.Duration
	logger  *zap.Logger
}

func (s *browserSession) Visit(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return &SessionError{Op: "navigate", URL: url, Err: err}
	}
	if err := s.page.WaitLoad(); err != nil {
		s.logger.Warn("wait load failed", zap.String("url", url), zap.Error(err))
	}
	s.url = url
	return nil
}

func (s *browserSession) First(selector string) (Node, error) {
	el, err := s.page.Timeout(s.wait).Element(selector)
	if err != nil {
		return nil, s.lookupErr(selector, err)
	}
	return &browserNode{el: el.CancelTimeout(), session: s}, nil
}

func (s *browserSession) All(selector string) ([]Node, error) {
	// Elements does not wait, so let the first match render before listing.
	if _, err := s.First(selector); err != nil {
		if errors.Is(err, ErrNoMatch) {
			return nil, nil
		}
		return nil, err
	}
	els, err := s.page.Elements(selector)
	if err != nil {
		return nil, s.lookupErr(selector, err)
	}
	return s.wrap(els), nil
}

func (s *browserSession) Text() (string, error) {
	root, err := s.page.Element("html")
	if err != nil {
		return "", s.lookupErr("html", err)
	}
	return (&browserNode{el: root, session: s}).Text()
}

func (s *browserSession) Attr(string) (string, error) {
	return "", ErrNoAttribute
}

func (s *browserSession) Click() error {
	return ErrNotInteractive
}

// Close releases the page, the browser connection and any launched process.
func (s *browserSession) Close() error {
	var errs []error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, err)
		}
		s.page = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
	if err := errors.Join(errs...); err != nil {
		return &SessionError{Op: "close", Err: err}
	}
	return nil
}

func (s *browserSession) lookupErr(selector string, err error) error {
	var notFound *rod.ElementNotFoundError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &notFound) {
		return ErrNoMatch
	}
	return &SessionError{Op: "query " + selector, URL: s.url, Err: err}
}

func (s *browserSession) wrap(els rod.Elements) []Node {
	nodes := make([]Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &browserNode{el: el, session: s})
	}
	return nodes
}

type browserNode struct {
	el      *rod.Element
	session *browserSession
}

func (n *browserNode) First(selector string) (Node, error) {
	el, err := n.el.Timeout(n.session.wait).Element(selector)
	if err != nil {
		return nil, n.session.lookupErr(selector, err)
	}
	return &browserNode{el: el.CancelTimeout(), session: n.session}, nil
}

func (n *browserNode) All(selector string) ([]Node, error) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil, n.session.lookupErr(selector, err)
	}
	return n.session.wrap(els), nil
}

func (n *browserNode) Text() (string, error) {
	text, err := n.el.Text()
	if err != nil {
		return "", &SessionError{Op: "read text", URL: n.session.url, Err: err}
	}
	return text, nil
}

func (n *browserNode) Attr(name string) (string, error) {
	v, err := n.el.Attribute(name)
	if err != nil {
		return "", &SessionError{Op: "read " + name, URL: n.session.url, Err: err}
	}
	if v == nil {
		return "", ErrNoAttribute
	}
	return *v, nil
}

func (n *browserNode) Click() error {
	if err := n.el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return &SessionError{Op: "click", URL: n.session.url, Err: err}
	}
	return nil
}
