package main

import (
	"net/http"

	"yamdb/proj/internal/services/reviews"
)

// reviewPath extracts the title and review ids every nested route carries.
func (app *Application) reviewPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID int64, ok bool) {
	if titleID, ok = app.extractIDParam(w, r, "titleID"); !ok {
		return
	}
	reviewID, ok = app.extractIDParam(w, r, "reviewID")
	return
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	list, err := app.services.Reviews.List(r.Context(), titleID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": list}, "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "titleID")
	if !ok {
		return
	}
	var input reviews.ReviewInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	review, err := app.services.Reviews.Create(r.Context(), contextGetUser(r), titleID, input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), titleID, reviewID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	var patch reviews.ReviewPatch
	if !app.readJSONOrBadRequest(w, r, &patch) {
		return
	}
	review, err := app.services.Reviews.Update(r.Context(), contextGetUser(r), titleID, reviewID, patch)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), contextGetUser(r), titleID, reviewID); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) listComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	list, err := app.services.Comments.List(r.Context(), titleID, reviewID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comments": list}, "")
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	var input reviews.CommentInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	comment, err := app.services.Comments.Create(r.Context(), contextGetUser(r), titleID, reviewID, input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "")
}

func (app *Application) getComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	comment, err := app.services.Comments.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	var input reviews.CommentInput
	if !app.readJSONOrBadRequest(w, r, &input) {
		return
	}
	comment, err := app.services.Comments.Update(r.Context(), contextGetUser(r), titleID, reviewID, commentID, input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	commentID, ok := app.extractIDParam(w, r, "commentID")
	if !ok {
		return
	}
	if err := app.services.Comments.Delete(r.Context(), contextGetUser(r), titleID, reviewID, commentID); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
