package admin

import (
	"context"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/markdown"
	"github.com/bine130/pe-subnote/internal/model"
)

// topicEditor creates or updates one topic. The content pane renders a live
// markdown preview; a template can seed the content on new topics.
type topicEditor struct {
	app.Compo

	API     *api.Client
	TopicID int          // 0 creates
	Initial *model.Topic // nil when creating
	OnDone  func(app.Context)

	title      string
	content    string
	keywords   string
	mnemonic   string
	categoryID *int
	importance int
	published  bool

	categories []model.CategoryNode
	templates  []model.TemplateSummary
	preview    bool

	saving bool
	errMsg string
}

func (e *topicEditor) OnMount(ctx app.Context) {
	if e.Initial != nil {
		t := e.Initial
		e.title = t.Title
		e.content = t.Content
		e.keywords = t.Keywords
		e.mnemonic = t.Mnemonic
		e.categoryID = t.CategoryID
		e.importance = t.ImportanceLevel
		e.published = t.IsPublished
	} else {
		e.importance = 3
	}

	ctx.Async(func() {
		c := context.Context(ctx)
		cats, err := e.API.CategoryTree(c)
		if err != nil {
			app.Log("load categories:", err)
		}
		tmpls, err := e.API.ListTemplates(c, "")
		if err != nil {
			app.Log("load templates:", err)
		}
		ctx.Dispatch(func(_ app.Context) {
			e.categories = cats
			e.templates = tmpls
		})
	})
}

func (e *topicEditor) applyTemplate(ctx app.Context, id int) {
	ctx.Async(func() {
		tmpl, err := e.API.GetTemplate(context.Context(ctx), id)
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				e.errMsg = err.Error()
				return
			}
			e.content = tmpl.Content
		})
	})
}

func (e *topicEditor) save(ctx app.Context, _ app.Event) {
	if e.title == "" {
		e.errMsg = "Title is required"
		return
	}
	e.saving = true
	e.errMsg = ""

	ctx.Async(func() {
		c := context.Context(ctx)
		var err error
		if e.TopicID == 0 {
			_, err = e.API.CreateTopic(c, model.TopicCreate{
				Title:           e.title,
				Content:         e.content,
				Keywords:        e.keywords,
				Mnemonic:        e.mnemonic,
				CategoryID:      e.categoryID,
				IsPublished:     e.published,
				ImportanceLevel: e.importance,
			})
		} else {
			_, err = e.API.UpdateTopic(c, e.TopicID, model.TopicUpdate{
				Title:           &e.title,
				Content:         &e.content,
				Keywords:        &e.keywords,
				Mnemonic:        &e.mnemonic,
				CategoryID:      e.categoryID,
				IsPublished:     &e.published,
				ImportanceLevel: &e.importance,
			})
		}
		ctx.Dispatch(func(ctx app.Context) {
			e.saving = false
			if err != nil {
				e.errMsg = err.Error()
				return
			}
			if e.OnDone != nil {
				e.OnDone(ctx)
			}
		})
	})
}

func (e *topicEditor) Render() app.UI {
	heading := "Edit topic"
	if e.TopicID == 0 {
		heading = "New topic"
	}

	return app.Div().Class("topic-editor").Body(
		app.Div().Class("editor-head").Body(
			app.H2().Text(heading),
			app.Button().Text("Back").OnClick(func(ctx app.Context, _ app.Event) {
				if e.OnDone != nil {
					e.OnDone(ctx)
				}
			}),
		),

		app.If(e.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(e.errMsg)
		}),

		app.Div().Class("editor-form").Body(
			app.Input().
				Type("text").
				Class("editor-title").
				Placeholder("Title").
				Value(e.title).
				OnInput(func(ctx app.Context, _ app.Event) {
					e.title = ctx.JSSrc().Get("value").String()
				}),

			app.Div().Class("editor-meta").Body(
				e.renderCategorySelect(),
				e.renderImportanceSelect(),
				app.Label().Class("publish-check").Body(
					app.Input().
						Type("checkbox").
						Checked(e.published).
						OnChange(func(ctx app.Context, _ app.Event) {
							e.published = ctx.JSSrc().Get("checked").Bool()
						}),
					app.Span().Text("Published"),
				),
			),

			app.Input().
				Type("text").
				Placeholder("Keywords (comma separated)").
				Value(e.keywords).
				OnInput(func(ctx app.Context, _ app.Event) {
					e.keywords = ctx.JSSrc().Get("value").String()
				}),
			app.Input().
				Type("text").
				Placeholder("Mnemonic").
				Value(e.mnemonic).
				OnInput(func(ctx app.Context, _ app.Event) {
					e.mnemonic = ctx.JSSrc().Get("value").String()
				}),

			app.If(e.TopicID == 0 && len(e.templates) > 0, func() app.UI {
				return e.renderTemplatePicker()
			}),

			app.Div().Class("editor-content-bar").Body(
				app.Button().
					Text(previewLabel(e.preview)).
					OnClick(func(_ app.Context, _ app.Event) {
						e.preview = !e.preview
					}),
			),

			app.If(e.preview, func() app.UI {
				return app.Div().Class("markdown-preview").Body(
					app.Raw("<div>" + markdown.Render(e.content) + "</div>"),
				)
			}).Else(func() app.UI {
				return app.Textarea().
					Class("editor-content").
					Placeholder("Content (markdown)").
					Text(e.content).
					OnInput(func(ctx app.Context, _ app.Event) {
						e.content = ctx.JSSrc().Get("value").String()
					})
			}),

			app.Button().
				Class("primary-btn").
				Text("Save").
				Disabled(e.saving).
				OnClick(e.save),
		),
	)
}

func previewLabel(on bool) string {
	if on {
		return "Edit"
	}
	return "Preview"
}

func (e *topicEditor) renderCategorySelect() app.UI {
	selected := ""
	if e.categoryID != nil {
		selected = strconv.Itoa(*e.categoryID)
	}

	var options []app.UI
	options = append(options, app.Option().Value("").Text("No category"))
	var walk func(nodes []model.CategoryNode, depth int)
	walk = func(nodes []model.CategoryNode, depth int) {
		for _, n := range nodes {
			indent := ""
			for i := 0; i < depth; i++ {
				indent += "— "
			}
			options = append(options, app.Option().
				Value(strconv.Itoa(n.ID)).
				Selected(strconv.Itoa(n.ID) == selected).
				Text(indent+n.Name))
			walk(n.Children, depth+1)
		}
	}
	walk(e.categories, 0)

	return app.Select().
		Class("category-select").
		OnChange(func(ctx app.Context, _ app.Event) {
			raw := ctx.JSSrc().Get("value").String()
			if raw == "" {
				e.categoryID = nil
				return
			}
			if id, err := strconv.Atoi(raw); err == nil {
				e.categoryID = &id
			}
		}).
		Body(options...)
}

func (e *topicEditor) renderImportanceSelect() app.UI {
	return app.Select().
		Class("importance-select").
		OnChange(func(ctx app.Context, _ app.Event) {
			if level, err := strconv.Atoi(ctx.JSSrc().Get("value").String()); err == nil {
				e.importance = level
			}
		}).
		Body(
			app.Range([]int{1, 2, 3, 4, 5}).Slice(func(i int) app.UI {
				level := i + 1
				return app.Option().
					Value(strconv.Itoa(level)).
					Selected(level == e.importance).
					Text(strconv.Itoa(level))
			}),
		)
}

func (e *topicEditor) renderTemplatePicker() app.UI {
	return app.Select().
		Class("template-picker").
		OnChange(func(ctx app.Context, _ app.Event) {
			raw := ctx.JSSrc().Get("value").String()
			if id, err := strconv.Atoi(raw); err == nil && id > 0 {
				e.applyTemplate(ctx, id)
			}
		}).
		Body(
			app.Option().Value("0").Text("Start from template..."),
			app.Range(e.templates).Slice(func(i int) app.UI {
				t := e.templates[i]
				return app.Option().Value(strconv.Itoa(t.ID)).Text(t.Name)
			}),
		)
}
