package student

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/nav"
)

// browserHistory drives window.history for the navigation machine. Pops
// come back through the popstate listener the page installs.
type browserHistory struct{}

func entryState(e nav.Entry) app.Value {
	return app.ValueOf(map[string]any{
		"kind":    string(e.Kind),
		"filter":  string(e.Filter),
		"topicId": e.TopicID,
	})
}

func (browserHistory) Push(e nav.Entry) {
	app.Window().Get("history").Call("pushState", entryState(e), "")
}

func (browserHistory) ReplaceBaseline(e nav.Entry) {
	app.Window().Get("history").Call("replaceState", entryState(e), "")
}
