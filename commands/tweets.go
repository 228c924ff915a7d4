package commands

import (
  "bufio"
  "errors"
  "log"
  "os"
  "strconv"
  "strings"
  "sync"
  "sync/atomic"
  "time"

  "github.com/urfave/cli/v2"

  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/repositories"
)

type TweetsHandler struct{}

type tweetRecord struct {
  userID int64
  text   string
}

func NewTweetsCommand() *cli.Command {
  var h TweetsHandler
  return &cli.Command{
    Name:  "tweets",
    Usage: "",
    Subcommands: []*cli.Command{
      {
        Name:  "bench",
        Usage: "",
        Flags: []cli.Flag{
          &cli.StringFlag{
            Name:     "csv",
            Usage:    "path to tweets csv",
            Required: true,
          },
          &cli.IntFlag{
            Name:  "target",
            Usage: "how many tweets to insert",
            Value: 1000000,
          },
          &cli.IntFlag{
            Name:  "workers",
            Usage: "concurrent sessions",
            Value: 1,
          },
        },
        Action: func(c *cli.Context) error {
          if err := h.Bench(c.String("csv"), c.Int("target"), c.Int("workers")); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

// Bench posts tweets from a csv file, one per line, "<user_id>,<text>". Only
// the first comma delimits, the text may contain commas of its own. Each
// worker owns a session, so statements from different workers never share a
// connection.
func (h *TweetsHandler) Bench(path string, target int, workers int) error {
  file, err := os.Open(path)
  if err != nil {
    return err
  }
  defer file.Close()

  if workers < 1 {
    workers = 1
  }

  records := make(chan tweetRecord, 1024)
  errs := make(chan error, workers)
  start := time.Now()
  var posted int64

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
      repository := &repositories.TweetsRepository{
        Db: db,
      }
      for record := range records {
        if _, err := repository.Post(record.userID, record.text); err != nil {
          errs <- err
          return
        }
        count := atomic.AddInt64(&posted, 1)
        if count%50000 == 0 {
          elapsed := time.Since(start).Seconds()
          log.Printf("%d inserted | %.1f postTweet calls/sec", count, float64(count)/elapsed)
        }
      }
    }()
  }

  scanner := bufio.NewScanner(file)
  scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
  line := 0
  queued := 0
  var feedErr error
  for scanner.Scan() {
    line++
    if line == 1 {
      // header
      continue
    }
    record := strings.TrimRight(scanner.Text(), "\r")
    if record == "" {
      continue
    }
    parts := strings.SplitN(record, ",", 2)
    if len(parts) != 2 {
      feedErr = &repositories.ParseError{Line: line, Record: record, Err: errors.New("missing separator")}
      break
    }
    userID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
    if err != nil {
      feedErr = &repositories.ParseError{Line: line, Record: record, Err: err}
      break
    }
    select {
    case records <- tweetRecord{userID: userID, text: parts[1]}:
    case feedErr = <-errs:
    }
    if feedErr != nil {
      break
    }
    queued++
    if queued >= target {
      break
    }
  }
  if feedErr == nil {
    feedErr = scanner.Err()
  }
  close(records)
  wg.Wait()
  if feedErr == nil {
    select {
    case feedErr = <-errs:
    default:
    }
  }
  if feedErr != nil {
    return feedErr
  }

  elapsed := time.Since(start).Seconds()
  total := atomic.LoadInt64(&posted)
  log.Println("POST TWEET RESULTS")
  log.Printf("tweets inserted: %d", total)
  log.Printf("seconds: %.3f", elapsed)
  if total > 0 {
    log.Printf("postTweet calls/sec: %.1f", float64(total)/elapsed)
  }
  return nil
}
