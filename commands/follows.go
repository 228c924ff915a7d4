package commands

import (
  "errors"
  "log"

  "github.com/urfave/cli/v2"
  "gorm.io/gorm"

  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/repositories"
)

type FollowsHandler struct {
  Db         *gorm.DB
  Repository *repositories.FollowsRepository
}

func NewFollowsCommand() *cli.Command {
  var h FollowsHandler
  return &cli.Command{
    Name:  "follows",
    Usage: "",
    Before: func(c *cli.Context) error {
      db, err := common.NewSession()
      if err != nil {
        return err
      }
      h = FollowsHandler{
        Db: db,
      }
      h.Repository = &repositories.FollowsRepository{
        Db: h.Db,
      }
      return nil
    },
    After: func(c *cli.Context) error {
      return common.CloseSession(h.Db)
    },
    Subcommands: []*cli.Command{
      {
        Name:  "load",
        Usage: "",
        Flags: []cli.Flag{
          &cli.StringFlag{
            Name:     "csv",
            Usage:    "path to follows csv",
            Required: true,
          },
          &cli.BoolFlag{
            Name:  "no-header",
            Usage: "csv has no header line",
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Load(c.String("csv"), !c.Bool("no-header")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
      {
        Name:  "random",
        Usage: "",
        Flags: []cli.Flag{
          &cli.StringFlag{
            Name:  "strategy",
            Usage: "naive or range-seek",
            Value: string(repositories.SampleRangeSeek),
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Random(c.String("strategy")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *FollowsHandler) Load(path string, hasHeader bool) error {
  log.Println("follows loading...")
  inserted, err := h.Repository.Load(path, hasHeader, repositories.ConflictIgnore)
  if err != nil {
    return err
  }
  log.Println("inserted follow edges (duplicates ignored):", inserted)
  return nil
}

func (h *FollowsHandler) Random(strategy string) error {
  parsed, err := repositories.ParseSamplingStrategy(strategy)
  if err != nil {
    return err
  }
  id, ok, err := h.Repository.RandomFollowerID(parsed)
  if err != nil {
    return err
  }
  if !ok {
    return errors.New("follows table is empty, load follows first")
  }
  log.Println("sampled follower", id)
  return nil
}
