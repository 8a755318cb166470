package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"posbridge/internal/tool"
)

const maxArgsBytes = 1 << 20

func ListToolsHandler(reg *tool.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tools := reg.List()
		writeJSON(w, http.StatusOK, map[string]any{"tools": tools, "count": len(tools)})
	}
}

// CallToolHandler runs the tool named in the path with the request body as
// its arguments.
func CallToolHandler(reg *tool.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "validation", "arguments too large")
				return
			}
			writeError(w, http.StatusBadRequest, "validation", "failed to read body")
			return
		}

		result, err := reg.Call(r.Context(), name, args)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
