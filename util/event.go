package util

import (
	"net/http"

	m "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/tnbus-gemini/config"
)

type errorBody struct {
	Error string `json:"error"`
}

// ErrorEvent writes the {"error": msg} envelope with the given status.
func ErrorEvent(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, &errorBody{Error: msg})
}

// LogPanic logs a recovered value, with the stack when debugging.
func LogPanic(v any) {
	log.Errorln(v)
	if config.GetIsDebug() {
		m.PrintPrettyStack(v)
	}
}
