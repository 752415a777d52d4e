// Package student is the study app: the infinite topic feed with search,
// category and importance filters, bookmarks, and the topic detail modal
// with comments and sticky notes.
package student

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/feed"
	"github.com/bine130/pe-subnote/internal/model"
	"github.com/bine130/pe-subnote/internal/nav"
	"github.com/bine130/pe-subnote/internal/session"
)

// TopicsPage is the main feed view.
type TopicsPage struct {
	app.Compo

	api  *api.Client
	sess *session.Session
	nav  *nav.Machine

	pager      *feed.Pager
	bookmarks  feed.BookmarkSet
	categories []model.CategoryNode

	booting bool
	loadErr string

	releasePopState func()
	releaseScroll   func()
}

// OnInit sets up every collaborator Render touches; the first render can
// happen before OnMount runs.
func (p *TopicsPage) OnInit() {
	p.booting = true
	p.sess = &session.Session{}
	p.api = api.New(app.Getenv("SUBNOTE_API_URL"))
	p.nav = nav.NewMachine(browserHistory{})
	p.bookmarks = feed.BookmarkSet{}
	p.pager = feed.NewPager(func(c context.Context, f feed.Filters, skip, limit int) ([]model.TopicSummary, error) {
		published := true
		return p.api.ListTopics(c, api.TopicQuery{
			CategoryID:  f.CategoryID,
			Search:      f.Search,
			IsPublished: &published,
			Skip:        skip,
			Limit:       limit,
		})
	})
}

func (p *TopicsPage) OnMount(ctx app.Context) {
	var token string
	ctx.LocalStorage().Get(session.StorageTokenKey, &token)
	if token == "" {
		ctx.Navigate("/login")
		return
	}
	p.api.SetToken(token)

	p.nav.EnsureBaseline()
	p.releasePopState = windowListen(ctx, "popstate", p.onPopState)
	p.releaseScroll = windowListen(ctx, "scroll", p.onScroll)

	ctx.Async(func() {
		c := context.Context(ctx)

		me, err := p.api.Me(c)
		if err != nil {
			ctx.Dispatch(func(ctx app.Context) {
				ctx.LocalStorage().Del(session.StorageTokenKey)
				ctx.Navigate("/login")
			})
			return
		}
		p.sess.Install(token, me)

		cats, err := p.api.CategoryTree(c)
		if err != nil {
			p.fail(ctx, err)
			return
		}
		marks, err := p.api.ListBookmarks(c)
		if err != nil {
			p.fail(ctx, err)
			return
		}
		if err := p.pager.Reset(c, feed.Filters{}); err != nil {
			p.fail(ctx, err)
			return
		}

		ctx.Dispatch(func(_ app.Context) {
			p.categories = cats
			p.bookmarks = feed.NewBookmarkSet(marks)
			p.booting = false
		})
	})
}

// OnDismount releases the window listeners added on mount.
func (p *TopicsPage) OnDismount() {
	if p.releasePopState != nil {
		p.releasePopState()
		p.releasePopState = nil
	}
	if p.releaseScroll != nil {
		p.releaseScroll()
		p.releaseScroll = nil
	}
}

func (p *TopicsPage) fail(ctx app.Context, err error) {
	app.Log("load error:", err)
	ctx.Dispatch(func(_ app.Context) {
		p.loadErr = err.Error()
		p.booting = false
	})
}

// onPopState peels one UI layer per hardware back press. The layer removed
// decides which part of the view to rebuild; filter changes reload the feed.
func (p *TopicsPage) onPopState(ctx app.Context, _ app.Event) {
	switch p.nav.Pop() {
	case nav.EffectClosedModal:
		// The modal may have toggled the bookmark; refetch the set.
		p.refreshBookmarks(ctx)
	case nav.EffectClearedSearch, nav.EffectClearedCategory:
		p.reloadFeed(ctx)
	case nav.EffectClearedImportance, nav.EffectClearedBookmarkOnly:
		// Pure projections; no refetch needed.
	case nav.EffectNone:
		// Nothing left to peel; the browser leaves the page.
	}
}

// onScroll triggers the next page when the viewport nears the bottom.
func (p *TopicsPage) onScroll(ctx app.Context, _ app.Event) {
	if p.booting || p.pager.Loading() || !p.pager.HasMore() {
		return
	}
	win := app.Window()
	scrollY := win.Get("scrollY").Float()
	innerH := win.Get("innerHeight").Float()
	docH := win.Get("document").Get("documentElement").Get("scrollHeight").Float()
	if scrollY+innerH < docH-200 {
		return
	}
	ctx.Async(func() {
		if err := p.pager.LoadNext(ctx); err != nil {
			app.Log("load next page:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

// refreshBookmarks refetches the bookmark set from the server.
func (p *TopicsPage) refreshBookmarks(ctx app.Context) {
	ctx.Async(func() {
		marks, err := p.api.ListBookmarks(ctx)
		if err != nil {
			app.Log("refresh bookmarks:", err)
			return
		}
		ctx.Dispatch(func(_ app.Context) {
			p.bookmarks = feed.NewBookmarkSet(marks)
		})
	})
}

// reloadFeed refetches page zero under the machine's current filters.
func (p *TopicsPage) reloadFeed(ctx app.Context) {
	filters := feed.Filters{
		CategoryID: p.nav.Category(),
		Search:     p.nav.Search(),
	}
	ctx.Async(func() {
		if err := p.pager.Reset(ctx, filters); err != nil {
			app.Log("reload feed:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (p *TopicsPage) onSearchInput(ctx app.Context, e app.Event) {
	p.nav.SetSearch(ctx.JSSrc().Get("value").String())
	p.reloadFeed(ctx)
}

func (p *TopicsPage) onSelectCategory(ctx app.Context, id *int) {
	p.nav.SetCategory(id)
	p.reloadFeed(ctx)
}

func (p *TopicsPage) onToggleBookmarkOnly(ctx app.Context, _ app.Event) {
	p.nav.SetBookmarkOnly(!p.nav.BookmarkOnly())
}

func (p *TopicsPage) onSelectImportance(ctx app.Context, e app.Event) {
	raw := ctx.JSSrc().Get("value").String()
	if raw == "" {
		p.nav.SetImportance(nil)
		return
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	p.nav.SetImportance(&level)
}

func (p *TopicsPage) onToggleBookmark(ctx app.Context, topicID int) {
	ctx.Async(func() {
		bookmarked, err := p.api.ToggleBookmark(ctx, topicID)
		if err != nil {
			app.Log("toggle bookmark:", err)
			return
		}
		ctx.Dispatch(func(_ app.Context) {
			p.bookmarks.Apply(topicID, bookmarked)
		})
	})
}

func (p *TopicsPage) openTopic(ctx app.Context, topicID int) {
	p.nav.OpenModal(topicID)
}

func (p *TopicsPage) closeModal(_ app.Context) {
	// The modal's history entry stays on the stack; Pop reconciles against
	// current state, so the next back press still peels the right layer.
	p.nav.CloseModal()
}

func (p *TopicsPage) Render() app.UI {
	if p.booting {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
		)
	}
	if p.loadErr != "" {
		return app.Div().Class("error-banner").Text("Failed to load: " + p.loadErr)
	}

	visible := feed.Project(p.pager.Topics(), p.bookmarks, p.nav.BookmarkOnly(), p.nav.Importance())
	modalTopic, modalOpen := p.nav.ModalTopic()

	return app.Div().Class("topics-page").Body(
		p.renderHeader(),
		app.Div().Class("topics-layout").Body(
			p.renderSidebar(),
			app.Div().Class("topics-feed").Body(
				app.Range(visible).Slice(func(i int) app.UI {
					return p.renderCard(visible[i])
				}),
				app.If(p.pager.Loading(), func() app.UI {
					return app.Div().Class("feed-loading").Text("Loading...")
				}),
				app.If(!p.pager.HasMore() && len(visible) > 0, func() app.UI {
					return app.Div().Class("feed-end").Text("No more topics")
				}),
				app.If(len(visible) == 0 && !p.pager.Loading(), func() app.UI {
					return app.Div().Class("feed-empty").Text("No topics match")
				}),
			),
		),
		app.If(modalOpen, func() app.UI {
			return &topicModal{
				API:       p.api,
				Sess:      p.sess,
				TopicID:   modalTopic,
				Bookmarks: p.bookmarks,
				OnClose:   p.closeModal,
				OnBookmark: func(ctx app.Context) {
					p.onToggleBookmark(ctx, modalTopic)
				},
				OnSearch: func(ctx app.Context, term string) {
					p.closeModal(ctx)
					p.nav.SetSearch(term)
					p.reloadFeed(ctx)
				},
			}
		}),
	)
}

func (p *TopicsPage) renderHeader() app.UI {
	bookmarkCls := "filter-chip"
	if p.nav.BookmarkOnly() {
		bookmarkCls += " active"
	}

	return app.Header().Class("topics-header").Body(
		app.H1().Text("Subnote"),
		app.Input().
			Type("search").
			Class("search-box").
			Placeholder("Search topics...").
			Value(p.nav.Search()).
			OnInput(p.onSearchInput),
		app.Select().Class("importance-select").OnChange(p.onSelectImportance).Body(
			app.Option().Value("").Text("All levels"),
			app.Range([]int{1, 2, 3, 4, 5}).Slice(func(i int) app.UI {
				level := i + 1
				return app.Option().
					Value(strconv.Itoa(level)).
					Text(importanceStars(level))
			}),
		),
		app.Button().
			Class(bookmarkCls).
			Text(fmt.Sprintf("Bookmarks (%d)", p.bookmarks.Len())).
			OnClick(p.onToggleBookmarkOnly),
	)
}

func (p *TopicsPage) renderSidebar() app.UI {
	return app.Aside().Class("category-sidebar").Body(
		app.Button().
			Class(categoryClass(p.nav.Category() == nil)).
			Text("All categories").
			OnClick(func(ctx app.Context, _ app.Event) {
				p.onSelectCategory(ctx, nil)
			}),
		app.Range(p.categories).Slice(func(i int) app.UI {
			return p.renderCategoryNode(p.categories[i], 0)
		}),
	)
}

func (p *TopicsPage) renderCategoryNode(node model.CategoryNode, depth int) app.UI {
	selected := p.nav.Category() != nil && *p.nav.Category() == node.ID
	id := node.ID
	return app.Div().Class("category-node").Body(
		app.Button().
			Class(categoryClass(selected)).
			Style("padding-left", fmt.Sprintf("%dpx", 12+depth*16)).
			Text(node.Name).
			OnClick(func(ctx app.Context, _ app.Event) {
				p.onSelectCategory(ctx, &id)
			}),
		app.Range(node.Children).Slice(func(i int) app.UI {
			return p.renderCategoryNode(node.Children[i], depth+1)
		}),
	)
}

func (p *TopicsPage) renderCard(t model.TopicSummary) app.UI {
	markCls := "bookmark-btn"
	if p.bookmarks.Has(t.ID) {
		markCls += " marked"
	}

	return app.Div().
		Class("topic-card").
		OnClick(func(ctx app.Context, _ app.Event) {
			p.openTopic(ctx, t.ID)
		}).
		Body(
			app.Div().Class("topic-card-head").Body(
				app.H2().Text(t.Title),
				app.Button().
					Class(markCls).
					Text("★").
					OnClick(func(ctx app.Context, e app.Event) {
						e.Call("stopPropagation")
						p.onToggleBookmark(ctx, t.ID)
					}),
			),
			app.Div().Class("topic-card-meta").Body(
				app.Span().Class("importance").Text(importanceStars(t.ImportanceLevel)),
				app.If(t.Category != nil, func() app.UI {
					return app.Span().Class("category-tag").Text(t.Category.Name)
				}),
				app.Span().Class("comments-count").Text(fmt.Sprintf("%d comments", t.CommentsCount)),
			),
			app.If(t.Keywords != "", func() app.UI {
				return app.Div().Class("topic-keywords").Text(t.Keywords)
			}),
		)
}

func categoryClass(selected bool) string {
	if selected {
		return "category-btn selected"
	}
	return "category-btn"
}

func importanceStars(level int) string {
	out := ""
	for i := 0; i < level; i++ {
		out += "★"
	}
	return out
}

// windowListen attaches h to a window event and returns a func that detaches it.
func windowListen(ctx app.Context, event string, h app.EventHandler) func() {
	fn := app.FuncOf(func(_ app.Value, args []app.Value) any {
		var e app.Event
		if len(args) > 0 {
			e = app.Event{Value: args[0]}
		}
		h(ctx, e)
		return nil
	})
	app.Window().Call("addEventListener", event, fn)
	return func() {
		app.Window().Call("removeEventListener", event, fn)
		fn.Release()
	}
}
