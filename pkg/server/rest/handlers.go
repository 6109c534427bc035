package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/guidance"
	"lintang/begraphes/pkg/server"
	"lintang/begraphes/pkg/server/rest/service"
	"lintang/begraphes/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, opts service.QueryOptions) (service.RouteResult, error)
	ShortestPathNodes(ctx context.Context, origin, destination int32, opts service.QueryOptions) (service.RouteResult, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *metrics) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, promeMetrics: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/shortest-path-nodes", handler.shortestPathNodes)
		})
	})
}

// QueryOptionsRequest model info
//
//	@Description	mode: length|time, filter: all|car|pedestrian, algorithm: dijkstra|astar|bellman-ford
type QueryOptionsRequest struct {
	Mode      string `json:"mode,omitempty" validate:"omitempty,oneof=length distance time eta"`
	Filter    string `json:"filter,omitempty" validate:"omitempty,oneof=all car pedestrian foot"`
	Algorithm string `json:"algorithm,omitempty" validate:"omitempty,oneof=dijkstra astar bellman-ford"`
}

func (q *QueryOptionsRequest) normalize() {
	q.Mode = strings.ToLower(strings.TrimSpace(q.Mode))
	q.Filter = strings.ToLower(strings.TrimSpace(q.Filter))
	q.Algorithm = strings.ToLower(strings.TrimSpace(q.Algorithm))
}

func (q QueryOptionsRequest) toOptions() service.QueryOptions {
	return service.QueryOptions{Mode: q.Mode, Filter: q.Filter, Algorithm: q.Algorithm}
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 koordinat di openstreetmap
type ShortestPathRequest struct {
	SrcLat float64 `json:"src_lat" validate:"lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"lt=180,gt=-180"`
	QueryOptionsRequest
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	s.normalize()
	return nil
}

// ShortestPathNodesRequest model info
//
//	@Description	request body untuk shortest path query antara 2 node id graph
type ShortestPathNodesRequest struct {
	Origin      *int32 `json:"origin" validate:"required"`
	Destination *int32 `json:"destination" validate:"required"`
	QueryOptionsRequest
}

func (s *ShortestPathNodesRequest) Bind(r *http.Request) error {
	if s.Origin == nil || s.Destination == nil {
		return errors.New("origin and destination are required")
	}
	s.normalize()
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query
type ShortestPathResponse struct {
	Path         string                        `json:"path"`
	Dist         float64                       `json:"distance"`
	ETA          float64                       `json:"ETA"`
	Cost         float64                       `json:"cost"`
	Found        bool                          `json:"found"`
	Route        []datastructure.Coordinate    `json:"route,omitempty"`
	Nodes        []int32                       `json:"nodes,omitempty"`
	Alg          string                        `json:"algorithm"`
	SettledNodes int                           `json:"settled_nodes"`
	Instructions []guidance.DrivingInstruction `json:"instructions,omitempty"`
}

func NewShortestPathResponse(res service.RouteResult) *ShortestPathResponse {
	return &ShortestPathResponse{
		Path:         res.Path,
		Dist:         util.RoundFloat(res.Dist, 2),
		ETA:          util.RoundFloat(res.ETA, 2),
		Cost:         util.RoundFloat(res.Cost, 2),
		Found:        res.Found,
		Route:        res.Route,
		Nodes:        res.Nodes,
		Alg:          res.Algorithm,
		SettledNodes: res.SettledNodes,
		Instructions: res.Instructions,
	}
}

// validateRequest renders the translated validation errors and reports false on failure.
func (h *NavigationHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

// shortestPath
//
//	@Summary		shortest path query antara 2 koordinat di openstreetmap.
//	@Description	titik asal dan tujuan di snap ke node jalan terdekat, lalu dicari rute terpendek (length) atau tercepat (time).
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, data.toOptions())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeQuery(res.Algorithm, res.Found, res.SettledNodes)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

// shortestPathNodes
//
//	@Summary		shortest path query antara 2 node id.
//	@Description	shortest path query antara 2 node id graph. Rute yang tidak ada dikembalikan dengan found=false.
//	@Tags			navigations
//	@Param			body	body	ShortestPathNodesRequest	true	"request body query shortest path antara 2 node"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path-nodes [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPathNodes(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathNodesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	res, err := h.svc.ShortestPathNodes(r.Context(), *data.Origin, *data.Destination, data.toOptions())
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.observeQuery(res.Algorithm, res.Found, res.SettledNodes)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	errorText := err.Error()
	if getStatusCode(err) == http.StatusInternalServerError {
		errorText = server.MessageInternalServerError
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      errorText,
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
