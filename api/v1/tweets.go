package v1

import (
  "net/http"
  "strconv"

  "github.com/go-chi/chi/v5"

  "socialgraph.local/social-graph/api"
  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/repositories"
)

type TweetsHandler struct {
  ApiContext *common.ApiContext
  Response   *api.ResponseHandler
  Repository *repositories.TweetsRepository
}

func NewTweetsRouter(apiContext *common.ApiContext) http.Handler {
  h := TweetsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TweetsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Post("/", h.Post)
  return r
}

func (h *TweetsHandler) Post(
  w http.ResponseWriter,
  r *http.Request,
) {
  h.ApiContext.Mux.Lock()
  defer h.ApiContext.Mux.Unlock()

  h.Response = &api.ResponseHandler{
    Writer: w,
  }

  r.ParseForm()

  userID, err := strconv.ParseInt(r.Form.Get("user_id"), 10, 64)
  if err != nil {
    h.Response.Error(http.StatusForbidden, 1004, "user_id not valid")
    return
  }
  text := r.Form.Get("text")
  if text == "" {
    h.Response.Error(http.StatusForbidden, 1004, "text is empty")
    return
  }

  tweetID, err := h.Repository.Post(userID, text)
  if err != nil {
    h.Response.Error(http.StatusInternalServerError, 500, "server error")
    return
  }

  h.Response.Json(map[string]interface{}{
    "tweet_id": tweetID,
  })
}
