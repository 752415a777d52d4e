package student

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/comments"
	"github.com/bine130/pe-subnote/internal/feed"
	"github.com/bine130/pe-subnote/internal/markdown"
	"github.com/bine130/pe-subnote/internal/model"
	"github.com/bine130/pe-subnote/internal/notes"
	"github.com/bine130/pe-subnote/internal/session"
)

// topicModal is the detail view for one topic: rendered markdown body, the
// comment thread, and the owner's sticky notes layered over the content.
type topicModal struct {
	app.Compo

	API        *api.Client
	Sess       *session.Session
	TopicID    int
	Bookmarks  feed.BookmarkSet
	OnClose    func(app.Context)
	OnBookmark func(app.Context)
	OnSearch   func(app.Context, string)

	topic     model.Topic
	loaded    bool
	loadErr   string
	readCount int

	thread   *comments.Thread
	composer comments.Composer

	notes     *notes.Manager
	showNotes bool
	gesture   *noteGesture
}

func (m *topicModal) OnMount(ctx app.Context) {
	m.thread = comments.NewThread(m.API, m.TopicID)
	m.notes = notes.NewManager(m.API, m.TopicID)
	m.showNotes = true

	ctx.Async(func() {
		c := context.Context(ctx)

		topic, err := m.API.GetTopic(c, m.TopicID)
		if err != nil {
			ctx.Dispatch(func(_ app.Context) { m.loadErr = err.Error() })
			return
		}
		if err := m.thread.Load(c); err != nil {
			app.Log("load comments:", err)
		}
		if err := m.notes.Load(c); err != nil {
			app.Log("load notes:", err)
		}

		// Opening the detail counts as one read.
		count, err := m.API.IncrementReadCount(c, m.TopicID)
		if err != nil {
			app.Log("read count:", err)
		}

		ctx.Dispatch(func(_ app.Context) {
			m.topic = topic
			m.readCount = count.Count
			m.loaded = true
		})
	})
}

func (m *topicModal) onBackdropClick(ctx app.Context, e app.Event) {
	if m.OnClose != nil {
		m.OnClose(ctx)
	}
}

func (m *topicModal) Render() app.UI {
	return app.Div().
		Class("modal-backdrop").
		OnClick(m.onBackdropClick).
		Body(
			app.Div().
				Class("modal-panel").
				OnClick(func(_ app.Context, e app.Event) {
					e.Call("stopPropagation")
				}).
				OnMouseMove(m.onNotePointerMove).
				OnMouseUp(m.onNotePointerUp).
				On("touchmove", m.onNoteTouchMove).
				On("touchend", m.onNotePointerUp).
				Body(
					app.If(m.loadErr != "", func() app.UI {
						return app.Div().Class("error-banner").Text(m.loadErr)
					}),
					app.If(!m.loaded && m.loadErr == "", func() app.UI {
						return app.Div().Class("loading-spinner")
					}),
					app.If(m.loaded, func() app.UI {
						return m.renderContent()
					}),
				),
		)
}

func (m *topicModal) renderContent() app.UI {
	markCls := "bookmark-btn"
	if m.Bookmarks.Has(m.TopicID) {
		markCls += " marked"
	}
	notesCls := "notes-toggle"
	if m.showNotes {
		notesCls += " active"
	}

	return app.Div().Class("topic-detail").Body(
		app.Div().Class("topic-detail-head").Body(
			app.H2().Text(m.topic.Title),
			app.Span().Class("importance").Text(importanceStars(m.topic.ImportanceLevel)),
			app.If(m.readCount > 0, func() app.UI {
				return app.Span().Class("read-count").Text(fmt.Sprintf("Read %d times", m.readCount))
			}),
			app.Button().
				Class(markCls).
				Text("★").
				OnClick(func(ctx app.Context, _ app.Event) {
					if m.OnBookmark != nil {
						m.OnBookmark(ctx)
					}
				}),
			app.Button().
				Class(notesCls).
				Text(fmt.Sprintf("Notes (%d)", m.notes.Len())).
				OnClick(func(_ app.Context, _ app.Event) {
					m.showNotes = !m.showNotes
				}),
			app.Button().
				Class("note-add-btn").
				Text("+ Note").
				OnClick(m.onAddNote),
			app.Button().
				Class("modal-close").
				Text("✕").
				OnClick(func(ctx app.Context, _ app.Event) {
					if m.OnClose != nil {
						m.OnClose(ctx)
					}
				}),
		),
		app.If(m.topic.Mnemonic != "", func() app.UI {
			return app.Div().Class("mnemonic").Text(m.topic.Mnemonic)
		}),
		app.If(m.topic.Keywords != "", func() app.UI {
			return m.renderKeywords()
		}),
		app.Div().Class("topic-body-wrap").Body(
			app.Div().Class("topic-body markdown").Body(
				app.Raw("<div>"+markdown.Render(m.topic.Content)+"</div>"),
			),
			app.If(m.showNotes, func() app.UI {
				return m.renderNotesLayer()
			}),
		),
		m.renderComments(),
	)
}

// renderKeywords turns the comma-separated keyword list into chips; clicking
// one closes the modal and searches for that term.
func (m *topicModal) renderKeywords() app.UI {
	parts := strings.Split(m.topic.Keywords, ",")
	return app.Div().Class("keyword-chips").Body(
		app.Range(parts).Slice(func(i int) app.UI {
			term := strings.TrimSpace(parts[i])
			if term == "" {
				return app.Text("")
			}
			return app.Button().
				Class("keyword-chip").
				Text(term).
				OnClick(func(ctx app.Context, _ app.Event) {
					if m.OnSearch != nil {
						m.OnSearch(ctx, term)
					}
				})
		}),
	)
}
