package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/genba-tools/photoflow/internal/engine"
	"github.com/genba-tools/photoflow/internal/store"
)

// App holds the folder whose outputs are served.
type App struct {
	Folder string
	Store  *store.Store
	Log    *zap.SugaredLogger
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// RecordsHandler returns the live (deduplicated) photo records.
func (app *App) RecordsHandler(w http.ResponseWriter, r *http.Request) {
	live, err := app.Store.Live()
	if err != nil {
		app.Log.Errorw("read records", "error", err)
		http.Error(w, "failed to read records", http.StatusInternalServerError)
		return
	}
	app.writeJSON(w, live)
}

// GroupsHandler returns the folder's machine group output.
func (app *App) GroupsHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, engine.LoadGroupRecords(app.Folder))
}

// ActivitiesHandler returns the folder's activity output.
func (app *App) ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, engine.LoadActivities(app.Folder))
}

func (app *App) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Log.Errorw("encode response", "error", err)
	}
}
