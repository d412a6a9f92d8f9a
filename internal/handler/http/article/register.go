package article

import (
	"log/slog"
	"net/http"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/handler/http/auth"
	artUC "newsdesk/internal/usecase/article"
)

// Register mounts the article routes on the mux. Reads are public; the
// write operations require an authenticated admin.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /articles/popular", PopularHandler{svc})
	mux.Handle("GET /articles/recent", RecentHandler{svc})
	mux.Handle("GET /articles/", GetHandler{svc})

	mux.Handle("POST /articles", auth.Admin(CreateHandler{svc}))
	mux.Handle("PUT /articles/", auth.Admin(UpdateHandler{svc}))
	mux.Handle("DELETE /articles/", auth.Admin(DeleteHandler{svc}))
}
