package student

import (
	"context"
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/bine130/pe-subnote/internal/api"
	"github.com/bine130/pe-subnote/internal/session"
)

const gisScriptURL = "https://accounts.google.com/gsi/client"

// LoginPage signs the user in with Google Identity Services. A credential
// for an unknown account switches the page into a one-time registration
// form (name and cohort); the account then waits for admin approval.
type LoginPage struct {
	app.Compo

	api *api.Client

	// Registration state, entered when login returns 404.
	needRegister bool
	idToken      string
	regName      string
	regCohort    string

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

	// GIS calls back into Go through a global function; the button itself
	// is rendered by the injected script into the container div.
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
			"theme": "outline",
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
			if api.IsStatus(err, 404) {
				// First visit: collect profile details before registering.
				ctx.Dispatch(func(_ app.Context) {
					l.pending = false
					l.needRegister = true
					l.idToken = idToken
				})
				return
			}
			ctx.Dispatch(func(_ app.Context) {
				l.pending = false
				l.errMsg = err.Error()
			})
			return
		}
		l.finishLogin(ctx, token)
	})
}

func (l *LoginPage) onRegister(ctx app.Context, _ app.Event) {
	cohort, err := strconv.Atoi(l.regCohort)
	if err != nil || l.regName == "" {
		l.errMsg = "Name and cohort are required"
		return
	}
	l.pending = true
	l.errMsg = ""

	idToken := l.idToken
	name := l.regName
	ctx.Async(func() {
		token, err := l.api.OAuthRegister(context.Context(ctx), "google", idToken, name, cohort)
		if err != nil {
			ctx.Dispatch(func(_ app.Context) {
				l.pending = false
				l.errMsg = err.Error()
			})
			return
		}
		l.finishLogin(ctx, token)
	})
}

func (l *LoginPage) finishLogin(ctx app.Context, token string) {
	me, err := l.api.Me(context.Context(ctx))
	if err != nil {
		ctx.Dispatch(func(_ app.Context) {
			l.pending = false
			l.errMsg = err.Error()
		})
		return
	}
	ctx.Dispatch(func(ctx app.Context) {
		ctx.LocalStorage().Set(session.StorageTokenKey, token)
		ctx.LocalStorage().Set(session.StorageUserKey, me)
		ctx.Navigate("/")
	})
}

func (l *LoginPage) Render() app.UI {
	return app.Div().Class("login-page").Body(
		app.Div().Class("login-card").Body(
			app.H1().Text("Subnote"),
			app.P().Text("Sign in to study"),

			app.If(l.errMsg != "", func() app.UI {
				return app.Div().Class("error-banner").Text(l.errMsg)
			}),
			app.If(l.pending, func() app.UI {
				return app.Div().Class("loading-spinner")
			}),

			app.If(l.needRegister, func() app.UI {
				return app.Div().Class("register-form").Body(
					app.P().Text("First time here — tell us who you are"),
					app.Input().
						Type("text").
						Placeholder("Name").
						Value(l.regName).
						OnInput(func(ctx app.Context, _ app.Event) {
							l.regName = ctx.JSSrc().Get("value").String()
						}),
					app.Input().
						Type("number").
						Placeholder("Cohort").
						Value(l.regCohort).
						OnInput(func(ctx app.Context, _ app.Event) {
							l.regCohort = ctx.JSSrc().Get("value").String()
						}),
					app.Button().
						Class("register-submit").
						Text("Register").
						OnClick(l.onRegister),
				)
			}).Else(func() app.UI {
				return app.Div().ID("google-signin").Class("google-signin")
			}),
		),
	)
}
