package commands

import (
  "fmt"
  "log"
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  v1 "socialgraph.local/social-graph/api/v1"
  "socialgraph.local/social-graph/common"
)

type ApiHandler struct {
  Db *gorm.DB
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "",
    Before: func(c *cli.Context) error {
      db, err := common.NewSession()
      if err != nil {
        return err
      }
      h = ApiHandler{
        Db: db,
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ApiHandler) Run() error {
  log.Println("api running...")

  apiContext := &common.ApiContext{
    Db: h.Db,
  }

  r := chi.NewRouter()
  r.Route("/v1", func(r chi.Router) {
    r.Mount("/tweets", v1.NewTweetsRouter(apiContext))
    r.Mount("/timelines", v1.NewTimelinesRouter(apiContext))
    r.Mount("/follows", v1.NewFollowsRouter(apiContext))
  })

  return http.ListenAndServe(
    fmt.Sprintf("127.0.0.1:%v", common.GetEnvString("API_PORT")),
    r,
  )
}
