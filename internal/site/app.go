package site

import (
	"context"
	"io"

	"github.com/morikuni/failure/v2"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
	"github.com/ziadkadry99/packdocs/internal/logging"
	"github.com/ziadkadry99/packdocs/internal/search"
)

// Fetcher loads a catalog document; *catalog.Loader satisfies it.
type Fetcher interface {
	Load(ctx context.Context, source string) (*catalog.Catalog, error)
}

// Options configures an App.
type Options struct {
	Page   PageOptions
	Detail DetailOptions
	// EmbedDetails pre-renders every detail view into templates the client
	// script clones when a card is clicked.
	EmbedDetails bool
}

// App is the page state: the loaded snapshot, the current filtered view and
// the rendered document. It is not safe for concurrent use; build one per
// request or per page.
type App struct {
	Page   *Page
	Modals *ModalController

	opts  Options
	index *catalog.Index
	view  search.Result
	err   error
}

// New builds the page skeleton without data.
func New(opts Options) *App {
	p := NewPage(opts.Page)
	return &App{
		Page:   p,
		Modals: NewModalController(p.Body, p.PackModal, p.ServerModal),
		opts:   opts,
	}
}

// Init performs the single load of source. On failure the error is logged,
// the banner is shown and the grids stay empty; the error is returned for
// callers that want it but the page stays usable.
func (a *App) Init(ctx context.Context, f Fetcher, source string) error {
	cat, err := f.Load(ctx, source)
	if err != nil {
		a.Fail(err)
		return err
	}
	a.SetCatalog(cat)
	return nil
}

// Fail records a load failure and shows the error banner.
func (a *App) Fail(err error) {
	a.err = err
	logging.Error("Failed to load data", "error", err)
	msg := catalog.LoadErrorMessage
	if m := failure.MessageOf(err); m != "" {
		msg = m.String()
	}
	ShowError(a.Page, msg)
	a.Modals.Setup()
}

// SetCatalog installs a loaded snapshot and renders the unfiltered view.
func (a *App) SetCatalog(cat *catalog.Catalog) {
	a.err = nil
	a.index = catalog.NewIndex(cat)
	if a.opts.Detail.HasPack == nil {
		a.opts.Detail.HasPack = a.index.HasPack
	}
	a.render(search.Catalog("", cat))
	if a.opts.EmbedDetails {
		a.embedDetails()
	}
	a.Modals.Setup()
}

// Err returns the load failure, if any.
func (a *App) Err() error { return a.err }

// Index returns the lookup index, or nil before a successful load.
func (a *App) Index() *catalog.Index { return a.index }

// View returns the collections currently rendered.
func (a *App) View() search.Result { return a.view }

// Search filters the snapshot and re-renders grids and toolbar.
func (a *App) Search(query string) search.Result {
	dom.SetAttr(a.Page.SearchInput, "value", query)
	if a.index == nil {
		return a.view
	}
	a.render(search.Catalog(query, a.index.Catalog()))
	return a.view
}

func (a *App) render(res search.Result) {
	a.view = res
	RenderPacks(a.Page, res.Packs)
	RenderServers(a.Page, res.Servers)
	UpdateToolbar(a.Page, res.Tally())
}

// ShowPack renders the named pack into the pack modal and opens it.
func (a *App) ShowPack(name string) error {
	if a.index == nil {
		return failure.New(catalog.ErrPackNotFound, failure.Context{"pack": name})
	}
	pack, err := a.index.Pack(name)
	if err != nil {
		return err
	}
	RenderPackDetail(a.Page.PackDetails, pack, a.opts.Detail)
	a.Modals.Open(a.Page.PackModal)
	return nil
}

// ShowServer renders the (name, pack) server into the server modal and opens it.
func (a *App) ShowServer(name, pack string) error {
	if a.index == nil {
		return failure.New(catalog.ErrServerNotFound, failure.Context{"server": name, "pack": pack})
	}
	s, err := a.index.Server(name, pack)
	if err != nil {
		return err
	}
	RenderServerDetail(a.Page.ServerDetails, s, a.opts.Detail)
	a.Modals.Open(a.Page.ServerModal)
	return nil
}

// Dispatch routes a user interaction and reports whether anything handled it.
func (a *App) Dispatch(ev Event) bool {
	if a.Modals.Handle(ev) {
		return true
	}
	if ev.Type != Click || ev.Target == nil {
		return false
	}
	ctl := dom.Closest(ev.Target, func(n *html.Node) bool {
		_, ok := dom.Attr(n, "data-action")
		return ok
	})
	if ctl == nil {
		return false
	}
	action, _ := dom.Attr(ctl, "data-action")
	switch action {
	case "show-pack":
		return a.ShowPack(dom.AttrOr(ctl, "data-pack", "")) == nil
	case "show-server":
		return a.ShowServer(dom.AttrOr(ctl, "data-server", ""), dom.AttrOr(ctl, "data-pack", "")) == nil
	case "expand", "collapse":
		box := dom.Closest(ctl, func(n *html.Node) bool { return dom.HasClass(n, "expandable") })
		if box == nil {
			return false
		}
		SetExpanded(box, action == "expand")
		return true
	case "toggle-section":
		if ctl.Parent == nil {
			return false
		}
		dom.ToggleClass(ctl.Parent, "collapsed")
		return true
	}
	return false
}

// Render writes the current document.
func (a *App) Render(w io.Writer) error {
	return dom.Render(w, a.Page.Doc)
}

// embedDetails renders every pack and server detail into <template> elements.
func (a *App) embedDetails() {
	dom.Clear(a.Page.Templates)
	cat := a.index.Catalog()
	for _, p := range cat.Packs {
		body := dom.El("div", "class", "modal-body")
		RenderPackDetail(body, p, a.opts.Detail)
		dom.Append(a.Page.Templates, dom.Append(dom.El("template",
			"class", "detail-template",
			"data-kind", "pack",
			"data-pack", p.Name,
		), dom.Children(body)...))
	}
	for _, s := range cat.MCPServers {
		body := dom.El("div", "class", "modal-body")
		RenderServerDetail(body, s, a.opts.Detail)
		dom.Append(a.Page.Templates, dom.Append(dom.El("template",
			"class", "detail-template",
			"data-kind", "server",
			"data-server", s.Name,
			"data-pack", s.Pack,
		), dom.Children(body)...))
	}
}
