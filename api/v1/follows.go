package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"

  "socialgraph.local/social-graph/api"
  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/repositories"
)

type FollowsHandler struct {
  ApiContext *common.ApiContext
  Response   *api.ResponseHandler
  Repository *repositories.FollowsRepository
}

func NewFollowsRouter(apiContext *common.ApiContext) http.Handler {
  h := FollowsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.FollowsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/random", h.Random)
  return r
}

func (h *FollowsHandler) Random(
  w http.ResponseWriter,
  r *http.Request,
) {
  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  h.Response = &api.ResponseHandler{
    Writer: w,
  }

  strategy, err := repositories.ParseSamplingStrategy(r.URL.Query().Get("strategy"))
  if err != nil {
    h.Response.Error(http.StatusForbidden, 1004, "strategy not valid")
    return
  }

  id, ok, err := h.Repository.RandomFollowerID(strategy)
  if err != nil {
    h.Response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }
  if !ok {
    h.Response.Error(http.StatusNotFound, 1404, "follows table is empty")
    return
  }

  h.Response.Json(map[string]interface{}{
    "follower_id": id,
  })
}
