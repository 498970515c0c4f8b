// Package dispatch is the JSON-RPC-over-HTTP boundary: a name →
// handler table, argument decoding, and response encoding, the same
// seam reposurgeon's kommandant.Kmdt command loop plays for its REPL
// but adapted from line-oriented shell dispatch to JSON-RPC-over-HTTP
// (see github.com/go-chi/chi/v5 usage grounded on
// Aureuma-si/agents/dashboard/main.go).
package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler decodes its raw JSON options, performs the operation, and
// returns a value to be JSON-encoded back to the caller (or an error,
// mapped to an HTTP 500 envelope).
type Handler func(rawOptions json.RawMessage) (interface{}, error)

// Table is the static name → handler registry. Entries are added by
// each subsystem's wiring code at startup (see cmd/gitfiend-core),
// not discovered dynamically, mirroring spec.md §9's direction to
// replace a code-generating macro with an explicit table.
type Table map[string]Handler

// errorEnvelope is the body written on handler failure or decode
// failure, per spec.md §7's Err(ES::Text) mapping.
type errorEnvelope struct {
	Error string `json:"error"`
}

// NewRouter builds the three route groups spec.md §6.1 describes:
// /pi (liveness), /ex (graceful exit), /f/{handler} (JSON body →
// dispatch table → JSON body). /r/{path} is wired to a plain static
// file server, an explicit boundary stub since the resource server is
// out of scope for the core.
func NewRouter(table Table, resourceRoot string, shutdown func()) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/pi", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("gitfiend"))
	})

	r.Get("/ex", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		go shutdown()
	})

	r.Post("/f/{handler}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "handler")
		handler, ok := table[name]
		if !ok {
			writeError(w, "unknown handler: "+name)
			return
		}

		var raw json.RawMessage
		if req.ContentLength != 0 {
			if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
				writeError(w, err.Error())
				return
			}
		}

		result, err := handler(raw)
		if err != nil {
			writeError(w, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			writeError(w, err.Error())
		}
	})

	if resourceRoot != "" {
		fileServer := http.FileServer(http.Dir(resourceRoot))
		r.Handle("/r/*", http.StripPrefix("/r/", fileServer))
	}

	return r
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorEnvelope{Error: message})
}

// DecodeOptions is a small helper handlers use to unmarshal their
// typed options struct from the raw body, so the table's handler
// signature stays uniform.
func DecodeOptions(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
