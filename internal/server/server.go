// Package server exposes the transcription pipeline over HTTP: an HTML
// form, the batch endpoint returning the document as an attachment, and
// the operational endpoints.
package server

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"transcritor/internal/engine"
)

const (
	// MsgNoValidURL is rendered when no input survives resolution.
	MsgNoValidURL = "Nenhuma URL válida encontrada."
	// MsgNoTranscripts is rendered when valid URLs yielded zero transcripts.
	MsgNoTranscripts = "Nenhuma transcrição disponível para os vídeos fornecidos."
)

const indexHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Transcritor</title>
</head>
<body>
<h1>Transcritor de vídeos</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/">
<p>Cole uma ou mais URLs de vídeos ou de canais:</p>
<input type="text" name="video_url" size="80"><br>
<input type="text" name="video_url" size="80"><br>
<input type="text" name="video_url" size="80"><br>
<button type="submit">Transcrever</button>
</form>
</body>
</html>
`

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Server routes HTTP requests into the engine.
type Server struct {
	mux *http.ServeMux
}

// New builds the server with all routes registered.
func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /{$}", s.handleTranscribe)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
	return s
}

// Handler returns the root handler for http.Server.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, "")
}

// handleTranscribe runs the full pipeline for the posted URL list. The
// batch either fully succeeds with a download or fully fails with one of
// two fixed messages; per-item failures stay on the server side of the
// log. Never a 5xx for upstream trouble.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderForm(w, MsgNoValidURL)
		return
	}
	raws := r.PostForm["video_url"]

	items := engine.BuildWorklist(r.Context(), raws)
	if len(items) == 0 {
		slog.Info("batch: no valid URLs", slog.Int("inputs", len(raws)))
		s.renderForm(w, MsgNoValidURL)
		return
	}

	slog.Info("batch: starting",
		slog.Int("inputs", len(raws)), slog.Int("videos", len(items)))

	results := engine.RunBatch(r.Context(), items, engine.Cfg.Concurrency)
	if !engine.HasAnyTranscript(results) {
		slog.Info("batch: no transcripts obtained", slog.Int("videos", len(items)))
		s.renderForm(w, MsgNoTranscripts)
		return
	}

	doc := engine.Aggregate(results)
	slog.Info("batch: done",
		slog.Int("videos", len(items)),
		slog.String("filename", doc.Filename),
		slog.Int("bytes", len(doc.Body)))

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if _, err := w.Write(doc.Body); err != nil {
		slog.Warn("batch: response write failed", slog.Any("err", err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, engine.FormatMetrics())
}

func (s *Server) renderForm(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Error string }{Error: errMsg}); err != nil {
		slog.Error("render form failed", slog.Any("err", err))
	}
}
