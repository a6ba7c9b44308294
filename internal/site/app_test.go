package site

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/morikuni/failure/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
)

func TestInitFailureShowsBanner(t *testing.T) {
	app := New(Options{})
	loadErr := failure.Wrap(errUnreachable, failure.WithCode(catalog.ErrFetch), failure.Message(catalog.LoadErrorMessage))

	err := app.Init(context.Background(), stubFetcher{err: loadErr}, "data.json")
	require.Error(t, err)

	first := dom.Elements(app.Page.Main)[0]
	assert.True(t, dom.HasClass(first, "error-banner"), "banner must be the first child of main")
	assert.Equal(t, "Error: "+catalog.LoadErrorMessage, dom.TextContent(first))
	assert.Nil(t, app.Page.PacksGrid.FirstChild, "grids stay empty")
	assert.Nil(t, app.Page.ServersGrid.FirstChild)

	// The page stays interactive.
	app.Search("anything")
	assert.Equal(t, "anything", dom.AttrOr(app.Page.SearchInput, "value", ""))
	app.Dispatch(Event{Type: KeyDown, Key: "Escape"})
	assert.Nil(t, app.Modals.Visible())
}

func TestInitFailureUsesGenericMessageForPlainErrors(t *testing.T) {
	app := New(Options{})
	_ = app.Init(context.Background(), stubFetcher{err: errUnreachable}, "data.json")

	banners := dom.ByClass(app.Page.Main, "error-banner")
	require.Len(t, banners, 1)
	assert.Equal(t, "Error: "+catalog.LoadErrorMessage, dom.TextContent(banners[0]))

	app.Fail(errUnreachable)
	assert.Len(t, dom.ByClass(app.Page.Main, "error-banner"), 1, "a single banner is shown")
}

func TestInitRendersEverything(t *testing.T) {
	app := loadedApp(Options{})

	assert.Len(t, cardsIn(app.Page.PacksGrid), 2)
	assert.Len(t, cardsIn(app.Page.ServersGrid), 3)
	assert.Equal(t, "2", dom.TextContent(app.Page.Badges["stat-packs"]))
	assert.Equal(t, "2", dom.TextContent(app.Page.Badges["stat-skills"]))
	assert.Equal(t, "1", dom.TextContent(app.Page.Badges["stat-agents"]))
	assert.Equal(t, "3", dom.TextContent(app.Page.Badges["stat-docs"]))
	assert.Equal(t, "3", dom.TextContent(app.Page.Badges["stat-servers"]))
}

func TestSearchUpdatesGridsAndToolbar(t *testing.T) {
	app := loadedApp(Options{})

	res := app.Search("security")
	require.Len(t, res.Packs, 1)
	assert.Equal(t, "rh-sre", res.Packs[0].Name)
	assert.Len(t, cardsIn(app.Page.PacksGrid), 1)
	assert.Equal(t, "(1)", dom.TextContent(app.Page.PacksCount))
	assert.Equal(t, NoServersText, dom.TextContent(app.Page.ServersGrid))
	assert.Equal(t, "0", dom.TextContent(app.Page.Badges["stat-servers"]))
	assert.Equal(t, "2", dom.TextContent(app.Page.Badges["stat-skills"]))

	app.Search("   ")
	assert.Len(t, cardsIn(app.Page.PacksGrid), 2)
	assert.Len(t, cardsIn(app.Page.ServersGrid), 3)
	assert.Equal(t, "3", dom.TextContent(app.Page.Badges["stat-servers"]))
}

func TestCardClickOpensExactServer(t *testing.T) {
	app := loadedApp(Options{})

	// Second card is lightspeed from ocp-admin.
	action := dom.ByTag(cardsIn(app.Page.ServersGrid)[1], "a")[0]
	require.True(t, app.Dispatch(Event{Type: Click, Target: action.FirstChild}))

	assert.Equal(t, app.Page.ServerModal, app.Modals.Visible())
	text := dom.TextContent(app.Page.ServerDetails)
	assert.Contains(t, text, "From pack: ocp-admin")
	assert.Contains(t, text, "npx")
	assert.NotContains(t, text, "podman")
}

func TestModalEscapeRestoresScroll(t *testing.T) {
	app := loadedApp(Options{})
	dom.SetStyle(app.Page.Body, "overflow", "auto")

	require.NoError(t, app.ShowPack("rh-sre"))
	assert.True(t, dom.Visible(app.Page.PackModal))
	assert.Equal(t, "hidden", dom.Style(app.Page.Body, "overflow"))

	assert.True(t, app.Dispatch(Event{Type: KeyDown, Key: "Escape"}))
	assert.False(t, dom.Visible(app.Page.PackModal))
	assert.Equal(t, "auto", dom.Style(app.Page.Body, "overflow"))
}

func TestModalSwitchKeepsOriginalScroll(t *testing.T) {
	app := loadedApp(Options{})

	require.NoError(t, app.ShowServer("lightspeed", "rh-sre"))
	require.NoError(t, app.ShowPack("rh-sre"))
	assert.False(t, dom.Visible(app.Page.ServerModal), "only one modal at a time")

	app.Modals.Close()
	assert.Equal(t, "", dom.Style(app.Page.Body, "overflow"))
}

func TestModalDismissal(t *testing.T) {
	tests := []struct {
		name   string
		target func(*App) *html.Node
	}{
		{"close control", func(a *App) *html.Node { return dom.ByClass(a.Page.PackModal, "close")[0] }},
		{"close control text", func(a *App) *html.Node { return dom.ByClass(a.Page.PackModal, "close")[0].FirstChild }},
		{"backdrop", func(a *App) *html.Node { return a.Page.PackModal }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := loadedApp(Options{})
			require.NoError(t, app.ShowPack("rh-sre"))

			assert.True(t, app.Dispatch(Event{Type: Click, Target: tt.target(app)}))
			assert.Nil(t, app.Modals.Visible())
			assert.Equal(t, "", dom.Style(app.Page.Body, "overflow"))
		})
	}
}

func TestClickInsidePanelKeepsModalOpen(t *testing.T) {
	app := loadedApp(Options{})
	require.NoError(t, app.ShowPack("rh-sre"))

	heading := dom.ByTag(app.Page.PackDetails, "h2")[0]
	assert.False(t, app.Dispatch(Event{Type: Click, Target: heading}))
	assert.Equal(t, app.Page.PackModal, app.Modals.Visible())
}

func TestModalSetupIsIdempotent(t *testing.T) {
	app := loadedApp(Options{})
	assert.False(t, app.Modals.Setup(), "Init already registered the handlers")

	fresh := NewModalController(dom.El("body"), dom.El("div"))
	assert.False(t, fresh.Handle(Event{Type: KeyDown, Key: "Escape"}), "nothing handled before Setup")
	assert.True(t, fresh.Setup())
	assert.False(t, fresh.Setup())
}

func TestDispatchExpandAndSections(t *testing.T) {
	long := strings.Repeat("scan the hosts ", 20)
	cat := fixtureCatalog()
	cat.Packs[0].Skills[0].Description = long
	app := New(Options{})
	app.SetCatalog(cat)
	require.NoError(t, app.ShowPack("rh-sre"))

	box := dom.ByClass(app.Page.PackDetails, "expandable")[0]
	more := dom.ByClass(box, "toggle-text")[0]
	assert.True(t, app.Dispatch(Event{Type: Click, Target: more}))
	assert.True(t, IsExpanded(box))

	less := dom.ByClass(box, "toggle-text")[1]
	assert.True(t, app.Dispatch(Event{Type: Click, Target: less}))
	assert.False(t, IsExpanded(box))

	header := dom.ByTag(dom.ByID(app.Page.PackDetails, "skills-section"), "h3")[0]
	assert.True(t, app.Dispatch(Event{Type: Click, Target: header}))
	assert.True(t, dom.HasClass(dom.ByID(app.Page.PackDetails, "skills-section"), "collapsed"))
}

func TestShowUnknownItems(t *testing.T) {
	app := loadedApp(Options{})
	assert.True(t, failure.Is(app.ShowPack("nope"), catalog.ErrPackNotFound))
	assert.True(t, failure.Is(app.ShowServer("orphan", "rh-sre"), catalog.ErrServerNotFound))
	assert.Nil(t, app.Modals.Visible())

	// The unlinked server is still listed and opens.
	require.NoError(t, app.ShowServer("orphan", "missing-pack"))
}

func TestEmbedDetailsAndRender(t *testing.T) {
	app := loadedApp(Options{EmbedDetails: true, Page: PageOptions{Title: "Agentic Collections"}})

	templates := dom.ByTag(app.Page.Templates, "template")
	assert.Len(t, templates, 5)

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf))
	out := buf.String()
	for _, id := range []string{IDSearchInput, IDPacksGrid, IDPacksCount, IDServersGrid, IDServersCount,
		IDPackModal, IDPackDetails, IDServerModal, IDServerDetail} {
		assert.Contains(t, out, `id="`+id+`"`)
	}
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}
