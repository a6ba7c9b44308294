package site

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/dom"
)

// EventType identifies a user interaction dispatched to the page.
type EventType int

const (
	Click EventType = iota
	KeyDown
)

// Event is a click on Target or a key press.
type Event struct {
	Type   EventType
	Target *html.Node
	Key    string
}

// ModalController shows and hides the detail dialogs and locks background
// scrolling while one is open.
type ModalController struct {
	body   *html.Node
	modals []*html.Node

	registered    bool
	locked        bool
	savedOverflow string
}

// NewModalController manages modals inside the page body.
func NewModalController(body *html.Node, modals ...*html.Node) *ModalController {
	return &ModalController{body: body, modals: modals}
}

// Setup registers the dismissal handlers. Calling it again has no effect; it
// reports whether this call did the registration.
func (c *ModalController) Setup() bool {
	if c.registered {
		return false
	}
	c.registered = true
	return true
}

// Open shows m, hiding any other modal, and suppresses background scroll.
// The overflow value in effect before the first open is kept for restoring.
func (c *ModalController) Open(m *html.Node) {
	for _, other := range c.modals {
		if other != m {
			hide(other)
		}
	}
	if !c.locked {
		c.savedOverflow = dom.Style(c.body, "overflow")
		c.locked = true
	}
	dom.SetStyle(m, "display", "block")
	dom.SetAttr(m, "aria-hidden", "false")
	dom.SetStyle(c.body, "overflow", "hidden")
}

// Close hides every visible modal and restores background scrolling.
func (c *ModalController) Close() {
	for _, m := range c.modals {
		hide(m)
	}
	if c.locked {
		dom.SetStyle(c.body, "overflow", c.savedOverflow)
		c.locked = false
		c.savedOverflow = ""
	}
}

// Visible returns the currently shown modal, if any.
func (c *ModalController) Visible() *html.Node {
	for _, m := range c.modals {
		if dom.Visible(m) {
			return m
		}
	}
	return nil
}

// Handle applies the dismissal rules to ev: a click on a close control, a
// click on a modal's backdrop, or the Escape key. It reports whether ev was
// consumed. Nothing is handled before Setup.
func (c *ModalController) Handle(ev Event) bool {
	if !c.registered {
		return false
	}
	switch ev.Type {
	case KeyDown:
		if ev.Key == "Escape" {
			c.Close()
			return true
		}
	case Click:
		for _, m := range c.modals {
			if ev.Target == m {
				c.Close()
				return true
			}
			if !dom.Contains(m, ev.Target) {
				continue
			}
			if dom.Closest(ev.Target, func(n *html.Node) bool { return dom.HasClass(n, "close") }) != nil {
				c.Close()
				return true
			}
		}
	}
	return false
}

func hide(m *html.Node) {
	dom.SetStyle(m, "display", "none")
	dom.SetAttr(m, "aria-hidden", "true")
}
