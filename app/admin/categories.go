package admin

import (
	"context"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/model"
)

// categoriesSection manages the category tree: create under any parent,
// rename, delete, and move within the sibling order.
type categoriesSection struct {
	app.Compo

	API *api.Client

	tree    []model.CategoryNode
	newName string
	// parent for the next created category; nil is top level
	newParent *int

	renameID   int
	renameText string

	errMsg string
}

func (s *categoriesSection) OnMount(ctx app.Context) {
	s.reload(ctx)
}

func (s *categoriesSection) reload(ctx app.Context) {
	ctx.Async(func() {
		tree, err := s.API.CategoryTree(context.Context(ctx))
		ctx.Dispatch(func(_ app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.errMsg = ""
			s.tree = tree
		})
	})
}

func (s *categoriesSection) onCreate(ctx app.Context, _ app.Event) {
	if s.newName == "" {
		return
	}
	name := s.newName
	parent := s.newParent
	s.newName = ""

	ctx.Async(func() {
		_, err := s.API.CreateCategory(context.Context(ctx), model.CategoryCreate{
			Name:     name,
			ParentID: parent,
		})
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *categoriesSection) onRename(ctx app.Context, id int) {
	name := s.renameText
	s.renameID = 0
	if name == "" {
		return
	}
	ctx.Async(func() {
		_, err := s.API.UpdateCategory(context.Context(ctx), id, model.CategoryUpdate{Name: &name})
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *categoriesSection) onDelete(ctx app.Context, id int) {
	if !app.Window().Call("confirm", "Delete this category? Topics keep existing without it.").Bool() {
		return
	}
	ctx.Async(func() {
		err := s.API.DeleteCategory(context.Context(ctx), id)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

// onMove swaps the category with its neighbor and persists the whole
// sibling order in one reorder call.
func (s *categoriesSection) onMove(ctx app.Context, parent *int, siblings []model.CategoryNode, idx, dir int) {
	other := idx + dir
	if other < 0 || other >= len(siblings) {
		return
	}

	order := make([]model.CategoryNode, len(siblings))
	copy(order, siblings)
	order[idx], order[other] = order[other], order[idx]

	moves := make([]model.CategoryReorder, len(order))
	for i, n := range order {
		moves[i] = model.CategoryReorder{ID: n.ID, ParentID: parent, OrderIndex: i}
	}

	ctx.Async(func() {
		err := s.API.ReorderCategories(context.Context(ctx), moves)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				s.errMsg = err.Error()
				return
			}
			s.reload(ctx)
		})
	})
}

func (s *categoriesSection) Render() app.UI {
	return app.Div().Class("categories-section").Body(
		app.If(s.errMsg != "", func() app.UI {
			return app.Div().Class("error-banner").Text(s.errMsg)
		}),

		app.Div().Class("section-toolbar").Body(
			app.Input().
				Type("text").
				Placeholder("New category name").
				Value(s.newName).
				OnInput(func(ctx app.Context, _ app.Event) {
					s.newName = ctx.JSSrc().Get("value").String()
				}),
			app.Button().Class("primary-btn").Text("Add").OnClick(s.onCreate),
		),

		app.Div().Class("category-tree").Body(
			app.Range(s.tree).Slice(func(i int) app.UI {
				return s.renderNode(nil, s.tree, i, 0)
			}),
		),
	)
}

func (s *categoriesSection) renderNode(parent *int, siblings []model.CategoryNode, idx, depth int) app.UI {
	n := siblings[idx]
	id := n.ID

	return app.Div().Class("category-row-wrap").Body(
		app.Div().
			Class("category-row").
			Style("padding-left", fmt.Sprintf("%dpx", depth*24)).
			Body(
				app.If(s.renameID == id, func() app.UI {
					return app.Input().
						Type("text").
						Value(s.renameText).
						AutoFocus(true).
						OnInput(func(ctx app.Context, _ app.Event) {
							s.renameText = ctx.JSSrc().Get("value").String()
						}).
						OnKeyDown(func(ctx app.Context, e app.Event) {
							switch e.Get("key").String() {
							case "Enter":
								s.onRename(ctx, id)
							case "Escape":
								s.renameID = 0
							}
						})
				}).Else(func() app.UI {
					return app.Span().Class("category-name").Text(n.Name)
				}),

				app.Button().Text("↑").OnClick(func(ctx app.Context, _ app.Event) {
					s.onMove(ctx, parent, siblings, idx, -1)
				}),
				app.Button().Text("↓").OnClick(func(ctx app.Context, _ app.Event) {
					s.onMove(ctx, parent, siblings, idx, +1)
				}),
				app.Button().Text("Rename").OnClick(func(_ app.Context, _ app.Event) {
					s.renameID = id
					s.renameText = n.Name
				}),
				app.Button().Text("+ Sub").OnClick(func(_ app.Context, _ app.Event) {
					pid := id
					s.newParent = &pid
				}),
				app.Button().Class("danger-btn").Text("Delete").OnClick(func(ctx app.Context, _ app.Event) {
					s.onDelete(ctx, id)
				}),
				app.If(s.newParent != nil && *s.newParent == id, func() app.UI {
					return app.Span().Class("parent-marker").Text("← new categories go here")
				}),
			),

		app.Range(n.Children).Slice(func(i int) app.UI {
			pid := id
			return s.renderNode(&pid, n.Children, i, depth+1)
		}),
	)
}
