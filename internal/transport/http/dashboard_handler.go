package http

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pdxpulse/internal/dashboard"
	apierrors "pdxpulse/internal/errors"
	"pdxpulse/internal/middleware"
	api "pdxpulse/pkg/contracts/api/v1"
	"pdxpulse/pkg/contracts/domain"
)

// multipartOverhead is allowed on top of the upload limit for the form
// boundary and part headers.
const multipartOverhead = 64 << 10

const (
	maxRowsLimit = 10000
	maxTopLimit  = 100
)

// DashboardHandler serves the dashboard API.
type DashboardHandler struct {
	service        DashboardServiceInterface
	maxUploadBytes int64
	validation     *middleware.ValidationMiddleware
	query          *middleware.QueryParamValidator
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewDashboardHandler creates the handler. maxUploadBytes bounds the request
// body of uploads; zero disables the bound.
func NewDashboardHandler(service DashboardServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		validation:     middleware.NewValidationMiddleware(logger, errorHandler),
		query:          middleware.NewQueryParamValidator(logger, errorHandler),
		logger:         logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the API routes, to be mounted under /api.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/dataset", func(r chi.Router) {
		r.Get("/", h.GetDataset)
		r.Post("/", h.UploadDataset)
		r.Delete("/", h.ResetDataset)
	})

	r.Get("/summary", h.GetSummary)
	r.Get("/rows", h.GetRows)
	r.Get("/top/{group}", h.GetTopList)
	r.Get("/geo", h.GetGeo)
	r.Get("/locations", h.GetLocations)
	r.Get("/export/rows.csv", h.ExportRows)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeValidator(h.errorHandler, "application/json"))
		r.Use(h.validation.ValidateRequest)
		r.Post("/filters", h.SelectFilter)
		r.Delete("/filters/{category}", h.ClearFilter)
		r.Put("/location", h.SetLocation)
	})

	return r
}

// UploadDataset handles POST /api/dataset
func (h *DashboardHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.errorHandler.HandleError(w, r, err)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		default:
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		}
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "upload received",
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
	)

	ds, err := h.service.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ds)
}

// GetDataset handles GET /api/dataset
func (h *DashboardHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, stateResponse(h.service.Snapshot()))
}

// ResetDataset handles DELETE /api/dataset
func (h *DashboardHandler) ResetDataset(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, stateResponse(h.service.Reset(r.Context())))
}

// GetSummary handles GET /api/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetRows handles GET /api/rows?offset=&limit=
func (h *DashboardHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	offset, ok := h.query.ValidateInt(w, r, "offset", 0, math.MaxInt32, 0)
	if !ok {
		return
	}
	limit, ok := h.query.ValidateInt(w, r, "limit", 0, maxRowsLimit, 0)
	if !ok {
		return
	}

	page, err := h.service.Rows(r.Context(), offset, limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.RowsResponse{
		Total:  page.Total,
		Offset: page.Offset,
		Limit:  page.Limit,
		Rows:   page.Rows,
	})
}

// GetTopList handles GET /api/top/{group}?limit=
func (h *DashboardHandler) GetTopList(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.query.ValidateInt(w, r, "limit", 0, maxTopLimit, 0)
	if !ok {
		return
	}

	list, err := h.service.TopList(r.Context(), chi.URLParam(r, "group"), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// GetGeo handles GET /api/geo
func (h *DashboardHandler) GetGeo(w http.ResponseWriter, r *http.Request) {
	points, geoDomain, center, err := h.service.Geo(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if points == nil {
		points = []domain.MapPoint{}
	}
	render.JSON(w, r, api.GeoResponse{Points: points, Domain: geoDomain, Center: center})
}

// GetLocations handles GET /api/locations
func (h *DashboardHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	selected, options, err := h.service.Locations(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, api.LocationsResponse{Selected: selected, Options: options})
}

// SelectFilter handles POST /api/filters
func (h *DashboardHandler) SelectFilter(w http.ResponseWriter, r *http.Request) {
	var req api.FilterRequest
	if err := h.validation.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snap, err := h.service.SelectFilter(r.Context(), domain.FilterCategory(req.Category), req.Value, req.Toggle)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stateResponse(snap))
}

// ClearFilter handles DELETE /api/filters/{category}
func (h *DashboardHandler) ClearFilter(w http.ResponseWriter, r *http.Request) {
	category := domain.FilterCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("category", "category must be one of: gender, age, socio"))
		return
	}

	snap, err := h.service.ClearFilter(r.Context(), category)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stateResponse(snap))
}

// SetLocation handles PUT /api/location
func (h *DashboardHandler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req api.LocationRequest
	if err := h.validation.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snap, err := h.service.SetLocation(r.Context(), req.ToFilter())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stateResponse(snap))
}

// ExportRows handles GET /api/export/rows.csv
func (h *DashboardHandler) ExportRows(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportRows(r.Context(), &buf); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pdx-rows.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export write failed", slog.String("error", err.Error()))
	}
}

func stateResponse(snap dashboard.Snapshot) api.DashboardStateResponse {
	filters := snap.Filters
	if filters == nil {
		filters = domain.FilterState{}
	}
	return api.DashboardStateResponse{
		Version:  snap.Version,
		Loaded:   snap.Loaded(),
		Dataset:  snap.Dataset,
		Filters:  filters,
		Location: snap.Location,
	}
}
