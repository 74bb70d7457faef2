package main

import (
	"net/http"

	"yamdb/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Users.List(r.Context(), contextGetUser(r))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"users": list}, "")
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	var input users.UserInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	user, err := app.services.Users.Create(r.Context(), contextGetUser(r), input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Get(r.Context(), contextGetUser(r), chi.URLParam(r, "username"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch users.UserPatch
	if !app.readJSONOrBadRequest(w, r, &patch) {
		return
	}
	user, err := app.services.Users.Update(r.Context(), contextGetUser(r), chi.URLParam(r, "username"), patch)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Users.Delete(r.Context(), contextGetUser(r), chi.URLParam(r, "username")); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Me(r.Context(), contextGetUser(r))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateMe(w http.ResponseWriter, r *http.Request) {
	var patch users.UserPatch
	if !app.readJSONOrBadRequest(w, r, &patch) {
		return
	}
	user, err := app.services.Users.UpdateMe(r.Context(), contextGetUser(r), patch)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}
