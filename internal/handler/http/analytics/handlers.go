// Package analytics provides HTTP handlers for the admin dashboard
// aggregates: headline totals, per-category counts, top articles, and
// visitor trends.
package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	analyticsUC "newsdesk/internal/usecase/analytics"
)

// SummaryHandler serves the dashboard headline totals.
//
// @Summary      Dashboard summary
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} entity.AnalyticsSummary
// @Router       /analytics/summary [get]
type SummaryHandler struct{ Svc *analyticsUC.Service }

func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Summary(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// CategoriesHandler serves active-article counts per category.
//
// @Summary      Articles by category
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} entity.CategoryCount
// @Router       /analytics/categories [get]
type CategoriesHandler struct{ Svc *analyticsUC.Service }

func (h CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.ArticlesByCategory(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// TopArticlesHandler serves the most viewed articles.
//
// @Summary      Top articles by views
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        limit query int false "max items" default(5)
// @Success      200 {array} entity.TopArticle
// @Router       /analytics/top-articles [get]
type TopArticlesHandler struct{ Svc *analyticsUC.Service }

func (h TopArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.Svc.MostViewed(r.Context(), limit)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// TrendsHandler serves weekly visitor totals for a month.
//
// @Summary      Visitor trends
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        year  query int false "year (defaults to current)"
// @Param        month query int false "month 1-12 (defaults to current)"
// @Success      200 {array} entity.VisitorTrend
// @Failure      400 {string} string "invalid period"
// @Router       /analytics/trends [get]
type TrendsHandler struct{ Svc *analyticsUC.Service }

func (h TrendsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	out, err := h.Svc.VisitorTrends(r.Context(), year, month)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, analyticsUC.ErrInvalidPeriod) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, out)
}

// VisitHandler records one anonymous visit on today's tally. Failures are
// deliberately reported as success so tracking never breaks a page load.
//
// @Summary      Record a visit
// @Tags         analytics
// @Success      202 {string} string "accepted"
// @Router       /analytics/visit [post]
type VisitHandler struct{ Svc *analyticsUC.Service }

func (h VisitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = h.Svc.RecordVisit(r.Context())
	respond.JSON(w, http.StatusAccepted, nil)
}

// Register mounts the analytics routes. The dashboard reads are admin
// only; the visit beacon is public.
func Register(mux *http.ServeMux, svc *analyticsUC.Service) {
	mux.Handle("GET /analytics/summary", auth.Admin(SummaryHandler{svc}))
	mux.Handle("GET /analytics/categories", auth.Admin(CategoriesHandler{svc}))
	mux.Handle("GET /analytics/top-articles", auth.Admin(TopArticlesHandler{svc}))
	mux.Handle("GET /analytics/trends", auth.Admin(TrendsHandler{svc}))
	mux.Handle("POST /analytics/visit", VisitHandler{svc})
}
