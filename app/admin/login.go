package admin

import (
	"context"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/session"
)

const gisScriptURL = "https://accounts.google.com/gsi/client"

// LoginPage signs an admin in with Google. There is no registration here;
// accounts are created through the student app and promoted by an admin.
type LoginPage struct {
	app.Compo

	api     *api.Client
	pending bool
	errMsg  string
}

func (l *LoginPage) OnMount(ctx app.Context) {
	l.api = api.New(app.Getenv("SUBNOTE_API_URL"))

	var token string
	ctx.LocalStorage().Get(session.StorageTokenKey, &token)
	if token != "" {
		ctx.Navigate("/")
		return
	}

	app.Window().Set("onGoogleCredential", app.FuncOf(func(_ app.Value, args []app.Value) any {
		if len(args) == 0 {
			return nil
		}
		credential := args[0].Get("credential").String()
		ctx.Dispatch(func(ctx app.Context) {
			l.onCredential(ctx, credential)
		})
		return nil
	}))

	script := app.Window().Get("document").Call("createElement", "script")
	script.Set("src", gisScriptURL)
	script.Set("async", true)
	script.Set("onload", app.FuncOf(func(_ app.Value, _ []app.Value) any {
		ctx.Dispatch(func(_ app.Context) { l.initGoogleButton() })
		return nil
	}))
	app.Window().Get("document").Get("head").Call("appendChild", script)
}

func (l *LoginPage) initGoogleButton() {
	gsi := app.Window().Get("google")
	if !gsi.Truthy() {
		return
	}
	id := gsi.Get("accounts").Get("id")
	id.Call("initialize", app.ValueOf(map[string]any{
		"client_id": app.Getenv("GOOGLE_CLIENT_ID"),
		"callback":  app.Window().Get("onGoogleCredential"),
	}))
	container := app.Window().GetElementByID("google-signin")
	if container.Truthy() {
		id.Call("renderButton", container, app.ValueOf(map[string]any{
			"theme": "filled_blue",
			"size":  "large",
		}))
	}
}

func (l *LoginPage) onCredential(ctx app.Context, idToken string) {
	l.pending = true
	l.errMsg = ""

	ctx.Async(func() {
		token, err := l.api.OAuthLogin(context.Context(ctx), "google", idToken)
		if err != nil {
			msg := err.Error()
			if api.IsStatus(err, 404) {
				msg = "No account for this identity. Register through the student app first."
			}
			ctx.Dispatch(func(_ app.Context) {
				l.pending = false
				l.errMsg = msg
			})
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			ctx.LocalStorage().Set(session.StorageTokenKey, token)
			ctx.Navigate("/")
		})
	})
}

func (l *LoginPage) Render() app.UI {
	return app.Div().Class("login-page").Body(
		app.Div().Class("login-card").Body(
			app.H1().Text("Subnote Admin"),
			app.If(l.errMsg != "", func() app.UI {
				return app.Div().Class("error-banner").Text(l.errMsg)
			}),
			app.If(l.pending, func() app.UI {
				return app.Div().Class("loading-spinner")
			}),
			app.Div().ID("google-signin").Class("google-signin"),
		),
	)
}
