// Package admin is the management console: topic authoring and publishing,
// the category tree, reusable templates, and account approvals.
package admin

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/model"
	"github.com/bine130/pe-subnote/internal/session"
)

const (
	tabTopics     = "topics"
	tabCategories = "categories"
	tabTemplates  = "templates"
	tabUsers      = "users"
)

// Console is the admin shell: a tab bar over the four management sections.
type Console struct {
	app.Compo

	api  *api.Client
	sess *session.Session

	tab     string
	booting bool
	denied  bool
}

func (c *Console) OnInit() {
	c.tab = tabTopics
	c.booting = true
	c.sess = &session.Session{}
	c.api = api.New(app.Getenv("SUBNOTE_API_URL"))
}

func (c *Console) OnMount(ctx app.Context) {
	var token string
	ctx.LocalStorage().Get(session.StorageTokenKey, &token)
	if token == "" {
		ctx.Navigate("/login")
		return
	}
	c.api.SetToken(token)

	ctx.Async(func() {
		me, err := c.api.Me(context.Context(ctx))
		if err != nil {
			ctx.Dispatch(func(ctx app.Context) {
				ctx.LocalStorage().Del(session.StorageTokenKey)
				ctx.Navigate("/login")
			})
			return
		}
		c.sess.Install(token, me)
		ctx.Dispatch(func(_ app.Context) {
			c.denied = me.Role != model.RoleAdmin
			c.booting = false
		})
	})
}

func (c *Console) logout(ctx app.Context, _ app.Event) {
	ctx.LocalStorage().Del(session.StorageTokenKey)
	ctx.LocalStorage().Del(session.StorageUserKey)
	ctx.Navigate("/login")
}

func (c *Console) Render() app.UI {
	if c.booting {
		return app.Div().Class("loading-overlay").Body(
			app.Div().Class("loading-spinner"),
		)
	}
	if c.denied {
		return app.Div().Class("error-banner").Text("Admin access required")
	}

	tabBtn := func(id, label string) app.UI {
		cls := "tab-btn"
		if c.tab == id {
			cls += " active"
		}
		return app.Button().Class(cls).Text(label).
			OnClick(func(_ app.Context, _ app.Event) { c.tab = id })
	}

	user, _ := c.sess.User()

	return app.Div().Class("admin-console").Body(
		app.Header().Class("admin-header").Body(
			app.H1().Text("Subnote Admin"),
			app.Nav().Class("admin-tabs").Body(
				tabBtn(tabTopics, "Topics"),
				tabBtn(tabCategories, "Categories"),
				tabBtn(tabTemplates, "Templates"),
				tabBtn(tabUsers, "Users"),
			),
			app.Div().Class("admin-user").Body(
				app.Span().Text(user.Name),
				app.Button().Class("logout-btn").Text("Sign out").OnClick(c.logout),
			),
		),
		app.Main().Class("admin-main").Body(
			app.If(c.tab == tabTopics, func() app.UI {
				return &topicsSection{API: c.api}
			}),
			app.If(c.tab == tabCategories, func() app.UI {
				return &categoriesSection{API: c.api}
			}),
			app.If(c.tab == tabTemplates, func() app.UI {
				return &templatesSection{API: c.api}
			}),
			app.If(c.tab == tabUsers, func() app.UI {
				return &usersSection{API: c.api}
			}),
		),
	)
}
