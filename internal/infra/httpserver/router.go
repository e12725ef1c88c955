package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/GouthamiN25/CyberRisk-Advisor/internal/application/analysis"
	domai "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/ai"
	domain "github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
	"github.com/GouthamiN25/CyberRisk-Advisor/internal/middleware"
	"github.com/GouthamiN25/CyberRisk-Advisor/web"
)

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Get("/", func(w http.ResponseWriter, req *http.Request) {
		serveFileFS(w, req, web.Static, "static/index.html")
	})
	mux.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze_logs", r.wrap(r.handleAnalyze))

	if svc.HasHistory() {
		mux.Get("/analyses", r.wrap(r.handleHistory))
		mux.Get("/analyses/{id}", r.wrap(r.handleGetAnalysis))
	}

	return mux
}

// serveFileFS is http.ServeFileFS, which requires Go 1.22; this build targets 1.21.
func serveFileFS(w http.ResponseWriter, req *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, req, info.Name(), info.ModTime(), rs)
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve domain.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "not found")
		case errors.Is(err, domai.ErrQuotaExceeded):
			middleware.IncrementUpstreamErrors()
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		case errors.Is(err, domai.ErrUnavailable):
			middleware.IncrementUpstreamErrors()
			writeError(w, http.StatusBadGateway, "ai provider unavailable")
		case errors.Is(err, domain.ErrMalformedOutput):
			middleware.IncrementUpstreamErrors()
			writeError(w, http.StatusBadGateway, "model returned malformed output")
		case errors.Is(err, domai.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, "OPENAI_API_KEY is not configured on the server")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// POST /analyze_logs
// Body: {"environment": "...", "concern": "...", "logs": "...", "question": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body domain.Request
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ValidationError("invalid JSON body: " + err.Error())
	}

	if err := middleware.ValidateLabel("environment", body.Environment); err != nil {
		return domain.ValidationError(err.Error())
	}
	if err := middleware.ValidateLabel("concern", body.Concern); err != nil {
		return domain.ValidationError(err.Error())
	}
	body.Logs = middleware.SanitizeString(body.Logs)
	body.Question = middleware.SanitizeString(body.Question)

	middleware.IncrementAnalyses()
	result, err := r.svc.Analyze(req.Context(), body)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// GET /analyses?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	page = middleware.ValidatePage(page)
	size = middleware.ValidatePageSize(size)

	list, err := r.svc.History(req.Context(), page, size)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /analyses/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	rec, err := r.svc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}
