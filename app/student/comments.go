package student

import (
	"context"
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/comments"
	"github.com/bine130/pe-subnote/internal/model"
)

func (m *topicModal) submitComment(ctx app.Context) {
	draft := m.composer.Draft()

	if id, ok := m.composer.Editing(); ok {
		m.composer.Cancel()
		ctx.Async(func() {
			if err := m.thread.Edit(context.Context(ctx), id, draft); err != nil {
				app.Log("edit comment:", err)
			}
			ctx.Dispatch(func(_ app.Context) {})
		})
		return
	}

	var parent *int
	if id, ok := m.composer.ReplyingTo(); ok {
		pid := id
		parent = &pid
	}
	m.composer.Cancel()
	ctx.Async(func() {
		if err := m.thread.Add(context.Context(ctx), draft, parent); err != nil {
			app.Log("post comment:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) deleteComment(ctx app.Context, id int) {
	ctx.Async(func() {
		if err := m.thread.Remove(context.Context(ctx), id); err != nil {
			app.Log("delete comment:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) likeComment(ctx app.Context, id int) {
	ctx.Async(func() {
		if err := m.thread.ToggleLike(context.Context(ctx), id); err != nil {
			app.Log("like comment:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) renderComments() app.UI {
	tree := m.thread.Comments()
	_, replying := m.composer.ReplyingTo()
	_, editing := m.composer.Editing()

	return app.Div().Class("comments-section").Body(
		app.H3().Text(fmt.Sprintf("Comments (%d)", comments.CountAll(tree))),

		// Top-level composer, shown unless a reply or edit box is open
		// under a specific comment.
		app.If(!replying && !editing, func() app.UI {
			return m.renderComposer("Write a comment...")
		}),

		app.Range(tree).Slice(func(i int) app.UI {
			return m.renderComment(tree[i], 0)
		}),
	)
}

func (m *topicModal) renderComment(c model.Comment, depth int) app.UI {
	replyTarget, _ := m.composer.ReplyingTo()
	editTarget, _ := m.composer.Editing()

	likeCls := "comment-like"
	if c.IsLiked {
		likeCls += " liked"
	}

	viewer, _ := m.Sess.User()
	own := viewer.ID == c.UserID

	return app.Div().
		Class("comment").
		Style("margin-left", fmt.Sprintf("%dpx", depth*24)).
		Body(
			app.Div().Class("comment-head").Body(
				app.Span().Class("comment-author").Text(c.User.Name),
				app.If(c.User.Cohort > 0, func() app.UI {
					return app.Span().Class("comment-cohort").Text(fmt.Sprintf("cohort %d", c.User.Cohort))
				}),
				app.Span().Class("comment-date").Text(c.CreatedAt),
			),

			app.If(editTarget == c.ID, func() app.UI {
				return m.renderComposer("")
			}).Else(func() app.UI {
				return app.Div().Class("comment-body").Text(c.Content)
			}),

			app.Div().Class("comment-actions").Body(
				app.Button().
					Class(likeCls).
					Text(fmt.Sprintf("♥ %d", c.LikesCount)).
					OnClick(func(ctx app.Context, _ app.Event) {
						m.likeComment(ctx, c.ID)
					}),
				app.Button().
					Class("comment-reply").
					Text("Reply").
					OnClick(func(_ app.Context, _ app.Event) {
						m.composer.StartReply(c.ID)
					}),
				app.If(own, func() app.UI {
					return app.Button().
						Class("comment-edit").
						Text("Edit").
						OnClick(func(_ app.Context, _ app.Event) {
							m.composer.StartEdit(c.ID, c.Content)
						})
				}),
				app.If(own, func() app.UI {
					return app.Button().
						Class("comment-delete").
						Text("Delete").
						OnClick(func(ctx app.Context, _ app.Event) {
							m.deleteComment(ctx, c.ID)
						})
				}),
			),

			app.If(replyTarget == c.ID, func() app.UI {
				return m.renderComposer("Write a reply...")
			}),

			app.Range(c.Replies).Slice(func(i int) app.UI {
				return m.renderComment(c.Replies[i], depth+1)
			}),
		)
}

func (m *topicModal) renderComposer(placeholder string) app.UI {
	_, replying := m.composer.ReplyingTo()
	_, editing := m.composer.Editing()

	return app.Div().Class("comment-composer").Body(
		app.Textarea().
			Class("composer-input").
			Placeholder(placeholder).
			Text(m.composer.Draft()).
			OnInput(func(ctx app.Context, _ app.Event) {
				m.composer.SetDraft(ctx.JSSrc().Get("value").String())
			}),
		app.Div().Class("composer-actions").Body(
			app.Button().
				Class("composer-submit").
				Text("Post").
				OnClick(func(ctx app.Context, _ app.Event) {
					m.submitComment(ctx)
				}),
			app.If(replying || editing, func() app.UI {
				return app.Button().
					Class("composer-cancel").
					Text("Cancel").
					OnClick(func(_ app.Context, _ app.Event) {
						m.composer.Cancel()
					})
			}),
		),
	)
}
