package commands

import (
  "errors"
  "log"
  "sync"
  "sync/atomic"
  "time"

  "github.com/urfave/cli/v2"

  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/repositories"
)

type TimelinesHandler struct{}

func NewTimelinesCommand() *cli.Command {
  var h TimelinesHandler
  return &cli.Command{
    Name:  "timelines",
    Usage: "",
    Subcommands: []*cli.Command{
      {
        Name:  "bench",
        Usage: "",
        Flags: []cli.Flag{
          &cli.IntFlag{
            Name:  "requests",
            Usage: "number of timeline requests",
            Value: 50000,
          },
          &cli.IntFlag{
            Name:  "workers",
            Usage: "concurrent sessions",
            Value: 1,
          },
          &cli.StringFlag{
            Name:  "strategy",
            Usage: "naive or range-seek",
            Value: string(repositories.SampleRangeSeek),
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Bench(c.Int("requests"), c.Int("workers"), c.String("strategy")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

// Bench samples a follower and fetches its home timeline, requests times.
// An empty follows table is a failed precondition, not something to retry.
func (h *TimelinesHandler) Bench(requests int, workers int, strategy string) error {
  parsed, err := repositories.ParseSamplingStrategy(strategy)
  if err != nil {
    return err
  }
  if workers < 1 {
    workers = 1
  }

  probe, err := common.NewSession()
  if err != nil {
    return err
  }
  _, ok, err := (&repositories.FollowsRepository{Db: probe}).RandomFollowerID(parsed)
  common.CloseSession(probe)
  if err != nil {
    return err
  }
  if !ok {
    return errors.New("follows table is empty, load follows first")
  }

  errs := make(chan error, workers)
  start := time.Now()
  var done int64

  var wg sync.WaitGroup
  for i := 0; i < workers; i++ {
    wg.Add(1)
    go func() {
      defer wg.Done()
      db, err := common.NewSession()
      if err != nil {
        errs <- err
        return
      }
      defer common.CloseSession(db)
      follows := &repositories.FollowsRepository{
        Db: db,
      }
      tweets := &repositories.TweetsRepository{
        Db: db,
      }
      for {
        count := atomic.AddInt64(&done, 1)
        if count > int64(requests) {
          atomic.AddInt64(&done, -1)
          return
        }
        id, ok, err := follows.RandomFollowerID(parsed)
        if err != nil {
          errs <- err
          return
        }
        if !ok {
          errs <- errors.New("follows table is empty, load follows first")
          return
        }
        if _, err := tweets.HomeTimeline(id); err != nil {
          errs <- err
          return
        }
        if count%5000 == 0 {
          elapsed := time.Since(start).Seconds()
          log.Printf("%d timelines | %.1f getHomeTimeline calls/sec", count, float64(count)/elapsed)
        }
      }
    }()
  }
  wg.Wait()
  select {
  case err := <-errs:
    return err
  default:
  }

  elapsed := time.Since(start).Seconds()
  total := atomic.LoadInt64(&done)
  log.Println("TIMELINE RESULTS")
  log.Printf("timeline calls: %d", total)
  log.Printf("seconds: %.3f", elapsed)
  if total > 0 {
    log.Printf("getHomeTimeline calls/sec: %.1f", float64(total)/elapsed)
  }
  return nil
}
