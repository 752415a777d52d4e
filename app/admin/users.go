package admin

import (
	"context"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/model"
)

// usersSection lists accounts, with pending registrations surfaced first
// for approval.
type usersSection struct {
	app.Compo

	API *api.Client

	pending []model.User
	users   []model.User
	errMsg  string
}

func (s *usersSection) OnMount(ctx app.Context) {
	s.reload(ctx)
}

func (s *usersSection) reload(ctx app.Context) {
	ctx.Async(func() {
		c := context.Context(ctx)
		pending, err := s.API.PendingUsers(c)
		if err != nil {
			ctx.Dispatch(func(_ app.Context) { s.errMsg = err.Error() })
			return
		}
		users, err := s.API.ListUsers(c, api.UserQuery{})
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.errMsg = ""
			s.pending = pending
			s.users = users
		})
	})
}

func (s *usersSection) setApproval(ctx app.Context, id, status string) {
	ctx.Async(func() {
		_, err := s.API.UpdateUser(context.Context(ctx), id, model.UserUpdate{ApprovalStatus: &status})
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *usersSection) setRole(ctx app.Context, id, role string) {
	ctx.Async(func() {
		_, err := s.API.UpdateUser(context.Context(ctx), id, model.UserUpdate{Role: &role})
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *usersSection) Render() app.UI {
	return app.Div().Class("users-section").Body(
		app.If(s.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(s.errMsg)
		}),

		app.If(len(s.pending) > 0, func() app.UI {
			return app.Div().Class("pending-panel").Body(
				app.H3().Text(fmt.Sprintf("Pending approval (%d)", len(s.pending))),
				app.Range(s.pending).Slice(func(i int) app.UI {
					u := s.pending[i]
					return app.Div().Class("pending-row").Body(
						app.Span().Text(fmt.Sprintf("%s (%s, cohort %d)", u.Name, u.Email, u.Cohort)),
						app.Button().
							Class("primary-btn").
							Text("Approve").
							OnClick(func(ctx app.Context, _ app.Event) {
								s.setApproval(ctx, u.ID, model.ApprovalApproved)
							}),
						app.Button().
							Class("danger-btn").
							Text("Reject").
							OnClick(func(ctx app.Context, _ app.Event) {
								s.setApproval(ctx, u.ID, model.ApprovalRejected)
							}),
					)
				}),
			)
		}),

		app.H3().Text("All users"),
		app.Table().Class("admin-table").Body(
			app.THead().Body(app.Tr().Body(
				app.Th().Text("Name"),
				app.Th().Text("Email"),
				app.Th().Text("Cohort"),
				app.Th().Text("Status"),
				app.Th().Text("Role"),
			)),
			app.TBody().Body(
				app.Range(s.users).Slice(func(i int) app.UI {
					return s.renderRow(s.users[i])
				}),
			),
		),
	)
}

func (s *usersSection) renderRow(u model.User) app.UI {
	return app.Tr().Body(
		app.Td().Text(u.Name),
		app.Td().Text(u.Email),
		app.Td().Text(fmt.Sprintf("%d", u.Cohort)),
		app.Td().Text(u.ApprovalStatus),
		app.Td().Body(
			app.Select().
				OnChange(func(ctx app.Context, _ app.Event) {
					s.setRole(ctx, u.ID, ctx.JSSrc().Get("value").String())
				}).
				Body(
					app.Option().
						Value(model.RoleStudent).
						Selected(u.Role == model.RoleStudent).
						Text("student"),
					app.Option().
						Value(model.RoleAdmin).
						Selected(u.Role == model.RoleAdmin).
						Text("admin"),
				),
		),
	)
}
