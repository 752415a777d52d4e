package admin

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/markdown"
	"github.com/bine130/pe-subnote/internal/model"
)

// templatesSection manages the reusable topic skeletons.
type templatesSection struct {
	app.Compo

	API *api.Client

	templates []model.TemplateSummary

	editing bool
	editID  int // 0 creates

	name        string
	description string
	category    string
	content     string
	preview     bool

	errMsg string
}

func (s *templatesSection) OnMount(ctx app.Context) {
	s.reload(ctx)
}

func (s *templatesSection) reload(ctx app.Context) {
	ctx.Async(func() {
		templates, err := s.API.ListTemplates(context.Context(ctx), "")
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.errMsg = ""
			s.templates = templates
		})
	})
}

func (s *templatesSection) openEditor(ctx app.Context, id int) {
	if id == 0 {
		s.editing = true
		s.editID = 0
		s.name, s.description, s.category, s.content = "", "", "", ""
		return
	}
	ctx.Async(func() {
		tmpl, err := s.API.GetTemplate(context.Context(ctx), id)
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.editing = true
			s.editID = id
			s.name = tmpl.Name
			s.description = tmpl.Description
			s.category = tmpl.Category
			s.content = tmpl.Content
		})
	})
}

func (s *templatesSection) save(ctx app.Context, _ app.Event) {
	if s.name == "" {
		s.errMsg = "Name is required"
		return
	}
	ctx.Async(func() {
		c := context.Context(ctx)
		var err error
		if s.editID == 0 {
			_, err = s.API.CreateTemplate(c, model.TemplateCreate{
				Name:        s.name,
				Description: s.description,
				Category:    s.category,
				Content:     s.content,
			})
		} else {
			_, err = s.API.UpdateTemplate(c, s.editID, model.TemplateUpdate{
				Name:        &s.name,
				Description: &s.description,
				Category:    &s.category,
				Content:     &s.content,
			})
		}
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.editing = false
			s.reload(ctx)
		})
	})
}

func (s *templatesSection) onDelete(ctx app.Context, id int) {
	if !app.Window().Call("confirm", "Delete this template?").Bool() {
		return
	}
	ctx.Async(func() {
		err := s.API.DeleteTemplate(context.Context(ctx), id)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *templatesSection) Render() app.UI {
	if s.editing {
		return s.renderEditor()
	}

	return app.Div().Class("templates-section").Body(
		app.If(s.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(s.errMsg)
		}),

		app.Div().Class("section-toolbar").Body(
			app.Button().
				Class("primary-btn").
				Text("+ New template").
				OnClick(func(ctx app.Context, _ app.Event) {
					s.openEditor(ctx, 0)
				}),
		),

		app.Table().Class("admin-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("Name"),
				app.Th().Text("Category"),
				app.Th().Text("Description"),
				app.Th().Text(""),
			)),
			app.TBody().Body(
				app.Range(s.templates).Slice(func(i int) app.UI {
					t := s.templates[i]
					return app.Tr().Body(
						app.Td().Body(
							app.A().Text(t.Name).OnClick(func(ctx app.Context, _ app.Event) {
								s.openEditor(ctx, t.ID)
							}),
						),
						app.Td().Text(t.Category),
						app.Td().Text(t.Description),
						app.Td().Body(
							app.Button().Class("danger-btn").Text("Delete").
								OnClick(func(ctx app.Context, _ app.Event) {
									s.onDelete(ctx, t.ID)
								}),
						),
					)
				}),
			),
		),
	)
}

func (s *templatesSection) renderEditor() app.UI {
	heading := "Edit template"
	if s.editID == 0 {
		heading = "New template"
	}

	return app.Div().Class("template-editor").Body(
		app.Div().Class("editor-head").Body(
			app.H2().Text(heading),
			app.Button().Text("Back").OnClick(func(_ app.Context, _ app.Event) {
				s.editing = false
			}),
		),

		app.If(s.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(s.errMsg)
		}),

		app.Input().
			Type("text").
			Placeholder("Name").
			Value(s.name).
			OnInput(func(ctx app.Context, _ app.Event) {
				s.name = ctx.JSSrc().Get("value").String()
			}),
		app.Input().
			Type("text").
			Placeholder("Category").
			Value(s.category).
			OnInput(func(ctx app.Context, _ app.Event) {
				s.category = ctx.JSSrc().Get("value").String()
			}),
		app.Input().
			Type("text").
			Placeholder("Description").
			Value(s.description).
			OnInput(func(ctx app.Context, _ app.Event) {
				s.description = ctx.JSSrc().Get("value").String()
			}),

		app.Button().
			Text(previewLabel(s.preview)).
			OnClick(func(_ app.Context, _ app.Event) {
				s.preview = !s.preview
			}),

		app.If(s.preview, func() app.UI {
			return app.Div().Class("markdown-preview").Body(
				app.Raw("<div>" + markdown.Render(s.content) + "</div>"),
			)
		}).Else(func() app.UI {
			return app.Textarea().
				Class("editor-content").
				Placeholder("Template content (markdown)").
				Text(s.content).
				OnInput(func(ctx app.Context, _ app.Event) {
					s.content = ctx.JSSrc().Get("value").String()
				})
		}),

		app.Button().Class("primary-btn").Text("Save").OnClick(s.save),
	)
}
