package main

import (
	"net/http"

	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/services/catalogue"

	"github.com/go-chi/chi/v5"
)

// termRoutes serves genres and categories, which differ only by service and
// envelope keys.
func (app *Application) termRoutes(svc *catalogue.TermService, single, plural string) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			terms, err := svc.List(r.Context())
			if err != nil {
				app.Http.Error(w, r, err)
				return
			}
			app.Http.Ok(w, r, envelop{plural: terms}, "")
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var input catalogue.TermInput
			if !app.readJSONOrBadRequest(w, r, &input) {
				return
			}
			term, err := svc.Create(r.Context(), contextGetUser(r), input)
			if err != nil {
				app.Http.Error(w, r, err)
				return
			}
			app.Http.Created(w, r, envelop{single: term}, "")
		})
		r.Get("/{slug}", func(w http.ResponseWriter, r *http.Request) {
			term, err := svc.Get(r.Context(), chi.URLParam(r, "slug"))
			if err != nil {
				app.Http.Error(w, r, err)
				return
			}
			app.Http.Ok(w, r, envelop{single: term}, "")
		})
		r.Patch("/{slug}", func(w http.ResponseWriter, r *http.Request) {
			var patch catalogue.TermPatch
			if !app.readJSONOrBadRequest(w, r, &patch) {
				return
			}
			term, err := svc.Update(r.Context(), contextGetUser(r), chi.URLParam(r, "slug"), patch)
			if err != nil {
				app.Http.Error(w, r, err)
				return
			}
			app.Http.Ok(w, r, envelop{single: term}, "")
		})
		r.Delete("/{slug}", func(w http.ResponseWriter, r *http.Request) {
			if err := svc.Delete(r.Context(), contextGetUser(r), chi.URLParam(r, "slug")); err != nil {
				app.Http.Error(w, r, err)
				return
			}
			app.Http.NoContent(w, r)
		})
	}
}

func (app *Application) listTitles(w http.ResponseWriter, r *http.Request) {
	var f filters.TitleFilters
	fieldErrs, err := app.decoder.Decode(&f, r.URL.Query())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	if fieldErrs != nil {
		app.Http.InvalidData(w, r, fieldErrs)
		return
	}
	titles, err := app.services.Titles.List(r.Context(), f)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"titles": titles}, "")
}

func (app *Application) createTitle(w http.ResponseWriter, r *http.Request) {
	var input catalogue.TitleInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	title, err := app.services.Titles.Create(r.Context(), contextGetUser(r), input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"title": title}, "")
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	title, err := app.services.Titles.Get(r.Context(), id)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) updateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var patch catalogue.TitlePatch
	if !app.readJSONOrBadRequest(w, r, &patch) {
		return
	}
	title, err := app.services.Titles.Update(r.Context(), contextGetUser(r), id, patch)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) deleteTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	if err := app.services.Titles.Delete(r.Context(), contextGetUser(r), id); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
