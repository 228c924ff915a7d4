package v1

import (
  "net/http"
  "strconv"

  "github.com/go-chi/chi/v5"

  "socialgraph.local/social-graph/api"
  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/models"
  "socialgraph.local/social-graph/repositories"
)

type TimelinesHandler struct {
  ApiContext *common.ApiContext
  Response   *api.ResponseHandler
  Repository *repositories.TweetsRepository
}

func NewTimelinesRouter(apiContext *common.ApiContext) http.Handler {
  h := TimelinesHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/", h.Get)
  return r
}

func (h *TimelinesHandler) Get(
  w http.ResponseWriter,
  r *http.Request,
) {
  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  h.Response = &api.ResponseHandler{
    Writer: w,
  }

  userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
  if err != nil {
    h.Response.Error(http.StatusForbidden, 1004, "user_id not valid")
    return
  }

  tweets, err := h.Repository.HomeTimeline(userID)
  if err != nil {
    h.Response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }
  if tweets == nil {
    tweets = []models.Tweet{}
  }

  h.Response.Json(tweets)
}
