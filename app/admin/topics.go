package admin

import (
	"context"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/model"
)

const adminPageSize = 20

// topicsSection lists all topics, published or not, with search and
// pagination, and hosts the editor for the selected one.
type topicsSection struct {
	app.Compo

	API *api.Client

	topics  []model.TopicSummary
	search  string
	page    int
	hasMore bool
	loading bool
	errMsg  string

	editing  bool
	editID   int // 0 means create
	editInit *model.Topic
}

func (s *topicsSection) OnMount(ctx app.Context) {
	s.reload(ctx)
}

func (s *topicsSection) reload(ctx app.Context) {
	s.loading = true
	search := s.search
	page := s.page

	ctx.Async(func() {
		topics, err := s.API.ListTopics(context.Context(ctx), api.TopicQuery{
			Search: search,
			Skip:   page * adminPageSize,
			Limit:  adminPageSize,
		})
		ctx.Dispatch(func(_ app.Context) {
			s.loading = false
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.errMsg = ""
			s.topics = topics
			s.hasMore = len(topics) == adminPageSize
		})
	})
}

func (s *topicsSection) onSearch(ctx app.Context, e app.Event) {
	s.search = ctx.JSSrc().Get("value").String()
	s.page = 0
	s.reload(ctx)
}

func (s *topicsSection) onTogglePublish(ctx app.Context, id int) {
	ctx.Async(func() {
		updated, err := s.API.TogglePublish(context.Context(ctx), id)
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			for i := range s.topics {
				if s.topics[i].ID == id {
					s.topics[i].IsPublished = updated.IsPublished
				}
			}
		})
	})
}

func (s *topicsSection) onDelete(ctx app.Context, id int) {
	if !app.Window().Call("confirm", "Delete this topic?").Bool() {
		return
	}
	ctx.Async(func() {
		err := s.API.DeleteTopic(context.Context(ctx), id)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *topicsSection) openEditor(ctx app.Context, id int) {
	if id == 0 {
		s.editing = true
		s.editID = 0
		s.editInit = nil
		return
	}
	ctx.Async(func() {
		topic, err := s.API.GetTopic(context.Context(ctx), id)
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.editing = true
			s.editID = id
			s.editInit = &topic
		})
	})
}

func (s *topicsSection) Render() app.UI {
	if s.editing {
		return &topicEditor{
			API:     s.API,
			TopicID: s.editID,
			Initial: s.editInit,
			OnDone: func(ctx app.Context) {
				s.editing = false
				s.reload(ctx)
			},
		}
	}

	return app.Div().Class("topics-section").Body(
		app.Div().Class("section-toolbar").Body(
			app.Input().
				Type("search").
				Placeholder("Search topics...").
				Value(s.search).
				OnInput(s.onSearch),
			app.Button().
				Class("primary-btn").
				Text("+ New topic").
				OnClick(func(ctx app.Context, _ app.Event) {
					s.openEditor(ctx, 0)
				}),
		),

		app.If(s.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(s.errMsg)
		}),
		app.If(s.loading, func() app.UI {
			return app.Div().Class("loading-spinner")
		}),

		app.Table().Class("admin-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("Title"),
				app.Th().Text("Category"),
				app.Th().Text("Importance"),
				app.Th().Text("Views"),
				app.Th().Text("Published"),
				app.Th().Text(""),
			)),
			app.TBody().Body(
				app.Range(s.topics).Slice(func(i int) app.UI {
					return s.renderRow(s.topics[i])
				}),
			),
		),

		app.Div().Class("pagination").Body(
			app.Button().
				Text("Prev").
				Disabled(s.page == 0).
				OnClick(func(ctx app.Context, _ app.Event) {
					s.page--
					s.reload(ctx)
				}),
			app.Span().Text(fmt.Sprintf("Page %d", s.page+1)),
			app.Button().
				Text("Next").
				Disabled(!s.hasMore).
				OnClick(func(ctx app.Context, _ app.Event) {
					s.page++
					s.reload(ctx)
				}),
		),
	)
}

func (s *topicsSection) renderRow(t model.TopicSummary) app.UI {
	pubCls := "publish-toggle"
	pubLabel := "Draft"
	if t.IsPublished {
		pubCls += " on"
		pubLabel = "Published"
	}
	category := ""
	if t.Category != nil {
		category = t.Category.Name
	}

	return app.Tr().Body(
		app.Td().Body(
			app.A().Text(t.Title).OnClick(func(ctx app.Context, _ app.Event) {
				s.openEditor(ctx, t.ID)
			}),
		),
		app.Td().Text(category),
		app.Td().Text(fmt.Sprintf("%d", t.ImportanceLevel)),
		app.Td().Text(fmt.Sprintf("%d", t.ViewCount)),
		app.Td().Body(
			app.Button().Class(pubCls).Text(pubLabel).
				OnClick(func(ctx app.Context, _ app.Event) {
					s.onTogglePublish(ctx, t.ID)
				}),
		),
		app.Td().Body(
			app.Button().Class("danger-btn").Text("Delete").
				OnClick(func(ctx app.Context, _ app.Event) {
					s.onDelete(ctx, t.ID)
				}),
		),
	)
}
