package student

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/notes"
)

const (
	gestureDrag   = "drag"
	gestureResize = "resize"
)

// noteGesture is one in-progress drag or resize. Geometry changes stay
// local while it lasts; pointer-up commits the final values in one patch.
type noteGesture struct {
	kind   string
	noteID string

	// drag: pointer offset inside the note
	offsetX float64
	offsetY float64

	// resize: pointer and size at gesture start
	startX float64
	startY float64
	startW float64
	startH float64
}

func pointerXY(e app.Event) (float64, float64) {
	// Touch events carry coordinates on the first touch point.
	if touches := e.Get("touches"); touches.Truthy() && touches.Get("length").Int() > 0 {
		t := touches.Index(0)
		return t.Get("clientX").Float(), t.Get("clientY").Float()
	}
	return e.Get("clientX").Float(), e.Get("clientY").Float()
}

func (m *topicModal) onAddNote(ctx app.Context, _ app.Event) {
	ctx.Async(func() {
		if _, err := m.notes.Create(context.Context(ctx)); err != nil {
			app.Log("create note:", err)
		}
		ctx.Dispatch(func(_ app.Context) { m.showNotes = true })
	})
}

// onNotePointerDown starts a drag unless the pointer landed on an
// interactive child (editing the text, pressing a button) or the resize
// handle, which starts a resize instead.
func (m *topicModal) onNotePointerDown(ctx app.Context, e app.Event, noteID string) {
	target := e.Get("target")
	tag := target.Get("tagName").String()
	if tag == "TEXTAREA" || tag == "BUTTON" || tag == "INPUT" || tag == "SELECT" {
		return
	}
	e.PreventDefault()
	e.Call("stopPropagation")

	px, py := pointerXY(e)

	for _, n := range m.notes.Notes() {
		if n.ID != noteID {
			continue
		}
		cls := target.Get("className").String()
		if cls == "note-resize-handle" {
			m.gesture = &noteGesture{
				kind:   gestureResize,
				noteID: noteID,
				startX: px,
				startY: py,
				startW: n.Width,
				startH: n.Height,
			}
			return
		}
		m.gesture = &noteGesture{
			kind:    gestureDrag,
			noteID:  noteID,
			offsetX: px - n.PositionX,
			offsetY: py - n.PositionY,
		}
		return
	}
}

func (m *topicModal) onNotePointerMove(ctx app.Context, e app.Event) {
	if m.gesture == nil {
		return
	}
	e.PreventDefault()
	px, py := pointerXY(e)

	switch m.gesture.kind {
	case gestureDrag:
		m.notes.Move(m.gesture.noteID, px-m.gesture.offsetX, py-m.gesture.offsetY)
	case gestureResize:
		m.notes.Resize(m.gesture.noteID,
			m.gesture.startW+(px-m.gesture.startX),
			m.gesture.startH+(py-m.gesture.startY),
		)
	}
}

func (m *topicModal) onNoteTouchMove(ctx app.Context, e app.Event) {
	m.onNotePointerMove(ctx, e)
}

// onNotePointerUp ends the gesture and commits whatever moved.
func (m *topicModal) onNotePointerUp(ctx app.Context, _ app.Event) {
	if m.gesture == nil {
		return
	}
	noteID := m.gesture.noteID
	m.gesture = nil

	ctx.Async(func() {
		if err := m.notes.EndGesture(context.Context(ctx), noteID); err != nil {
			app.Log("save note geometry:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) onNoteBlur(ctx app.Context, e app.Event, noteID string) {
	text := ctx.JSSrc().Get("value").String()
	ctx.Async(func() {
		if err := m.notes.EditContent(context.Context(ctx), noteID, text); err != nil {
			app.Log("save note content:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) onNoteRecolor(ctx app.Context, noteID, color string) {
	ctx.Async(func() {
		if err := m.notes.Recolor(context.Context(ctx), noteID, color); err != nil {
			app.Log("recolor note:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) onNoteOpacity(ctx app.Context, e app.Event, noteID string) {
	raw := ctx.JSSrc().Get("value").String()
	opacity, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return
	}
	ctx.Async(func() {
		if err := m.notes.SetOpacity(context.Context(ctx), noteID, opacity); err != nil {
			app.Log("set note opacity:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) onNoteDelete(ctx app.Context, noteID string) {
	ctx.Async(func() {
		if err := m.notes.Delete(context.Context(ctx), noteID); err != nil {
			app.Log("delete note:", err)
		}
		ctx.Dispatch(func(_ app.Context) {})
	})
}

func (m *topicModal) renderNotesLayer() app.UI {
	all := m.notes.Notes()
	return app.Div().Class("notes-layer").Body(
		app.Range(all).Slice(func(i int) app.UI {
			n := all[i]
			id := n.ID

			cls := "sticky-note note-" + n.Color
			if m.gesture != nil && m.gesture.noteID == id {
				cls += " dragging"
			}

			return app.Div().
				Class(cls).
				Style("left", fmt.Sprintf("%.1fpx", n.PositionX)).
				Style("top", fmt.Sprintf("%.1fpx", n.PositionY)).
				Style("width", fmt.Sprintf("%.1fpx", n.Width)).
				Style("height", fmt.Sprintf("%.1fpx", n.Height)).
				Style("opacity", fmt.Sprintf("%.2f", n.Opacity)).
				OnMouseDown(func(ctx app.Context, e app.Event) {
					m.onNotePointerDown(ctx, e, id)
				}).
				On("touchstart", func(ctx app.Context, e app.Event) {
					m.onNotePointerDown(ctx, e, id)
				}).
				Body(
					app.Div().Class("note-toolbar").Body(
						app.Range(notes.Palette).Slice(func(j int) app.UI {
							color := notes.Palette[j]
							return app.Button().
								Class("note-color note-color-" + color).
								OnClick(func(ctx app.Context, _ app.Event) {
									m.onNoteRecolor(ctx, id, color)
								})
						}),
						app.Input().
							Type("range").
							Class("note-opacity").
							Min(notes.MinOpacity).
							Max(notes.MaxOpacity).
							Step(0.1).
							Value(fmt.Sprintf("%.2f", n.Opacity)).
							OnChange(func(ctx app.Context, e app.Event) {
								m.onNoteOpacity(ctx, e, id)
							}),
						app.Button().
							Class("note-delete").
							Text("✕").
							OnClick(func(ctx app.Context, _ app.Event) {
								m.onNoteDelete(ctx, id)
							}),
					),
					app.Textarea().
						Class("note-content").
						Text(n.Content).
						OnBlur(func(ctx app.Context, e app.Event) {
							m.onNoteBlur(ctx, e, id)
						}),
					app.Div().Class("note-resize-handle"),
				)
		}),
	)
}
