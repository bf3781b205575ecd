package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/countries", handler.ListCountries)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/seasons", handler.ListSeasonsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/odds", handler.ListFixtureOdds)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/odds/latest", handler.ListLatestFixtureOdds)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/odds/live", handler.ListLiveOdds)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/signup", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("POST /v1/auth/google", handler.GoogleSignIn)
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.GetProfile)))
	mux.Handle("PUT /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateProfile)))
	mux.Handle("PUT /v1/auth/me/password", RequireAuth(verifier, http.HandlerFunc(handler.ChangePassword)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedNoteRoutes(mux, handler, verifier)
	registerAuthorizedFavoriteRoutes(mux, handler, verifier)
	registerAuthorizedScreenRoutes(mux, handler, verifier)
	registerAuthorizedSelectionRoutes(mux, handler, verifier)
	registerAuthorizedAlertRoutes(mux, handler, verifier)
}

func registerAuthorizedNoteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/notes", RequireAuth(verifier, http.HandlerFunc(handler.CreateNote)))
	mux.Handle("GET /v1/notes", RequireAuth(verifier, http.HandlerFunc(handler.ListNotes)))
	mux.Handle("PUT /v1/notes/{noteID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateNote)))
	mux.Handle("DELETE /v1/notes/{noteID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteNote)))
}

func registerAuthorizedFavoriteRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/favorites", RequireAuth(verifier, http.HandlerFunc(handler.CreateFavorite)))
	mux.Handle("GET /v1/favorites", RequireAuth(verifier, http.HandlerFunc(handler.ListFavorites)))
	mux.Handle("DELETE /v1/favorites/{favoriteID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteFavorite)))
}

func registerAuthorizedScreenRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/screens", RequireAuth(verifier, http.HandlerFunc(handler.CreateScreen)))
	mux.Handle("GET /v1/screens", RequireAuth(verifier, http.HandlerFunc(handler.ListScreens)))
	mux.Handle("PUT /v1/screens/{screenID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateScreen)))
	mux.Handle("DELETE /v1/screens/{screenID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteScreen)))
}

func registerAuthorizedSelectionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/selections", RequireAuth(verifier, http.HandlerFunc(handler.CreateSelection)))
	mux.Handle("GET /v1/selections", RequireAuth(verifier, http.HandlerFunc(handler.ListSelections)))
	mux.Handle("GET /v1/selections/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetSelectionStats)))
	mux.Handle("PUT /v1/selections/{selectionID}/settle", RequireAuth(verifier, http.HandlerFunc(handler.SettleSelection)))
	mux.Handle("DELETE /v1/selections/{selectionID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteSelection)))
}

func registerAuthorizedAlertRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/alerts", RequireAuth(verifier, http.HandlerFunc(handler.CreateAlert)))
	mux.Handle("GET /v1/alerts", RequireAuth(verifier, http.HandlerFunc(handler.ListAlerts)))
	mux.Handle("DELETE /v1/alerts/{alertID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAlert)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, internalJobToken string) {
	mux.Handle("POST /v1/internal/sync/leagues", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncLeagues)))
	mux.Handle("POST /v1/internal/sync/teams", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncTeams)))
	mux.Handle("POST /v1/internal/sync/fixtures", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncFixtures)))
	mux.Handle("POST /v1/internal/sync/standings", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncStandings)))
	mux.Handle("POST /v1/internal/sync/odds", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncOdds)))
	mux.Handle("POST /v1/internal/sync/odds/mark-closing", RequireAuth(verifier, http.HandlerFunc(handler.RunMarkClosing)))
	mux.Handle("POST /v1/internal/sync/resync", RequireAuth(verifier, http.HandlerFunc(handler.RunResync)))
	mux.Handle("POST /v1/internal/sync/schedule", RequireAuth(verifier, http.HandlerFunc(handler.RunSyncScheduleDirect)))
	mux.Handle("POST /v1/internal/alerts/evaluate", RequireAuth(verifier, http.HandlerFunc(handler.RunAlertEvaluation)))

	mux.Handle("POST /v1/internal/jobs/bootstrap", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBootstrapJob)))
	mux.Handle("POST /v1/internal/jobs/sync-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
}
