package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams/resolve", handler.ResolveScannedTeams)

	mux.HandleFunc("POST /v1/grids", handler.CreateGrid)
	mux.HandleFunc("GET /v1/grids", handler.ListGrids)
	mux.HandleFunc("GET /v1/grids/{gridID}", handler.GetGrid)
	mux.HandleFunc("PUT /v1/grids/{gridID}/squares/{row}/{col}", handler.ClaimSquare)
	mux.HandleFunc("POST /v1/grids/{gridID}/randomize", handler.RandomizeNumbers)
	mux.HandleFunc("PUT /v1/grids/{gridID}/owner-labels", handler.SetOwnerLabels)
	mux.HandleFunc("POST /v1/grids/{gridID}/share", handler.ShareGrid)

	mux.HandleFunc("POST /v1/grids/{gridID}/score", handler.ApplyScore)
	mux.HandleFunc("POST /v1/grids/{gridID}/refresh", handler.RefreshScore)
	mux.HandleFunc("POST /v1/grids/{gridID}/scan", handler.ApplyScan)

	mux.HandleFunc("GET /v1/grids/{gridID}/winners", handler.ListWinners)
	mux.HandleFunc("GET /v1/grids/{gridID}/payouts", handler.ListPayouts)
	mux.HandleFunc("GET /v1/grids/{gridID}/hunt", handler.ListHuntSquares)
	mux.HandleFunc("GET /v1/grids/{gridID}/winnings", handler.GetWinnings)

	mux.HandleFunc("GET /v1/shared/{code}", handler.GetSharedGrid)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
