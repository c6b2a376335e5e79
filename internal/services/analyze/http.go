package analyze

import (
	"io"
	stdhttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"instalens/internal/adapters/ingest/instaexport"
	perr "instalens/internal/platform/errors"
	phttp "instalens/internal/platform/net/http"
	"instalens/internal/platform/net/http/bind"
)

// maxUploadBytes caps an uploaded export archive
const maxUploadBytes = 512 * 1024 * 1024

// MountRoutes mounts the analysis endpoints onto r
func (s *Service) MountRoutes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(v chi.Router) {
		v.Post("/runs", s.handleCreateRun)
		v.Post("/runs/documents", s.handleCreateRunJSON)
		v.Get("/report", s.handleReport)
	})
}

func (s *Service) handleHealth(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	phttp.RespondOK(w, r, map[string]string{"status": "ok"})
}

// handleCreateRun accepts an export archive, either as a raw zip body or as
// the "export" field of a multipart form, runs the pipeline, and returns the
// snapshot
func (s *Service) handleCreateRun(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	body, err := readArchive(r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	docs, err := instaexport.ReadZipBytes(r.Context(), body)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	snap, err := s.Run(r.Context(), docs)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondCreated(w, r, snap)
}

type runDocument struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type runRequest struct {
	Documents []runDocument `json:"documents" validate:"required,min=1,dive"`
}

// handleCreateRunJSON accepts pre-read documents as a JSON body, for clients
// that unpack the export themselves
func (s *Service) handleCreateRunJSON(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	req, err := bind.ParseJSON[runRequest](r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	docs := make([]instaexport.Document, 0, len(req.Documents))
	for _, d := range req.Documents {
		if instaexport.Skipped(d.Name) {
			continue
		}
		docs = append(docs, instaexport.Document{Name: d.Name, Raw: []byte(d.Content)})
	}

	snap, err := s.Run(r.Context(), docs)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	phttp.RespondCreated(w, r, snap)
}

func (s *Service) handleReport(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	snap := s.Latest()
	if snap == nil {
		phttp.RespondError(w, r, perr.NotFoundf("no report available yet"))
		return
	}
	phttp.RespondOK(w, r, snap)
}

func readArchive(r *stdhttp.Request) ([]byte, error) {
	r.Body = stdhttp.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		f, _, err := r.FormFile("export")
		if err != nil {
			return nil, perr.InvalidArgf("missing multipart field %q", "export")
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, perr.InvalidArgf("reading upload: %v", err)
		}
		return b, nil
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, perr.InvalidArgf("reading request body: %v", err)
	}
	if len(b) == 0 {
		return nil, perr.InvalidArgf("empty request body, expected a zip archive")
	}
	return b, nil
}
