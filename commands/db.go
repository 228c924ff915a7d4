package commands

import (
  "log"

  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/models"
)

type DbHandler struct {
  Db *gorm.DB
}

func NewDbCommand() *cli.Command {
  var h DbHandler
  return &cli.Command{
    Name:  "db",
    Usage: "",
    Before: func(c *cli.Context) error {
      db, err := common.NewSession()
      if err != nil {
        return err
      }
      h = DbHandler{
        Db: db,
      }
      return nil
    },
    After: func(c *cli.Context) error {
      return common.CloseSession(h.Db)
    },
    Subcommands: []*cli.Command{
      {
        Name:  "migrate",
        Usage: "",
        Action: func(c *cli.Context) error {
          if err := h.migrate(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *DbHandler) migrate() error {
  log.Println("process migrator")
  return h.Db.AutoMigrate(
    &models.Tweet{},
    &models.Follow{},
  )
}
