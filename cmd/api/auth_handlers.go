package main

import "net/http"

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if !app.readJSONOrBadRequest(w, r, &req) {
		return
	}
	user, err := app.services.Auth.Signup(r.Context(), req.Username, req.Email)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"username": user.Username, "email": user.Email}, "Confirmation code sent")
}

func (app *Application) token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username         string `json:"username"`
		ConfirmationCode string `json:"confirmation_code"`
	}
	if !app.readJSONOrBadRequest(w, r, &req) {
		return
	}
	token, err := app.services.Auth.IssueToken(r.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"token": token}, "")
}
