package repositories

import (
  "bufio"
  "database/sql"
  "errors"
  "fmt"
  "math/rand"
  "os"
  "strconv"
  "strings"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "socialgraph.local/social-graph/models"
)

type SamplingStrategy string

const (
  SampleNaive     SamplingStrategy = "naive"
  SampleRangeSeek SamplingStrategy = "range-seek"
)

func ParseSamplingStrategy(value string) (SamplingStrategy, error) {
  switch SamplingStrategy(value) {
  case SampleNaive, SampleRangeSeek:
    return SamplingStrategy(value), nil
  case "":
    return SampleRangeSeek, nil
  }
  return "", fmt.Errorf("unknown sampling strategy %q", value)
}

// ConflictPolicy decides what a bulk insert does when an edge already exists.
type ConflictPolicy int

const (
  ConflictIgnore ConflictPolicy = iota
  ConflictFail
)

type FollowsRepository struct {
  Db *gorm.DB
}

// Load imports follow edges from a csv file, one "<follower_id>,<followee_id>"
// pair per line, inside a single transaction. Blank lines are skipped, a
// malformed line rolls back the whole batch, and under ConflictIgnore an edge
// that already exists is skipped without counting. Returns the number of rows
// actually inserted.
func (r *FollowsRepository) Load(path string, hasHeader bool, policy ConflictPolicy) (int64, error) {
  file, err := os.Open(path)
  if err != nil {
    return 0, err
  }
  defer file.Close()

  var inserted int64
  err = r.Db.Transaction(func(tx *gorm.DB) error {
    scanner := bufio.NewScanner(file)
    line := 0
    for scanner.Scan() {
      line++
      if line == 1 && hasHeader {
        continue
      }
      record := strings.TrimSpace(scanner.Text())
      if record == "" {
        continue
      }
      follow, err := parseEdge(line, record)
      if err != nil {
        return err
      }
      query := tx
      if policy == ConflictIgnore {
        query = tx.Clauses(clause.OnConflict{
          Columns: []clause.Column{
            {Name: "follower_id"},
            {Name: "followee_id"},
          },
          DoNothing: true,
        })
      }
      result := query.Create(follow)
      if result.Error != nil {
        return &WriteError{Op: "insert follow edge", Err: result.Error}
      }
      inserted += result.RowsAffected
    }
    return scanner.Err()
  })
  if err != nil {
    return 0, err
  }
  return inserted, nil
}

func parseEdge(line int, record string) (*models.Follow, error) {
  parts := strings.SplitN(record, ",", 2)
  if len(parts) != 2 {
    return nil, &ParseError{Line: line, Record: record, Err: errors.New("missing separator")}
  }
  followerID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
  if err != nil {
    return nil, &ParseError{Line: line, Record: record, Err: err}
  }
  followeeID, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
  if err != nil {
    return nil, &ParseError{Line: line, Record: record, Err: err}
  }
  return &models.Follow{FollowerID: followerID, FolloweeID: followeeID}, nil
}

// RandomFollowerID samples a follower_id that exists in follows. The second
// return is false when the table is empty; benchmark drivers must treat that
// as "data not loaded" and halt instead of retrying.
func (r *FollowsRepository) RandomFollowerID(strategy SamplingStrategy) (int64, bool, error) {
  if strategy == SampleNaive {
    return r.randomNaive()
  }
  return r.randomRangeSeek()
}

// randomNaive orders the whole table randomly and takes one row. Uniform, but
// the sort cost grows with the table; only suitable for small tables.
func (r *FollowsRepository) randomNaive() (int64, bool, error) {
  fn := "RANDOM()"
  if r.Db.Dialector.Name() == "mysql" {
    fn = "RAND()"
  }
  var follow models.Follow
  err := r.Db.Order(fn).Take(&follow).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return 0, false, nil
  }
  if err != nil {
    return 0, false, err
  }
  return follow.FollowerID, true, nil
}

// randomRangeSeek draws a uniform value in [min, max] of the stored
// follower_ids and seeks to the first id at or above the draw. Ids right
// after a gap get oversampled, which is an accepted trade against the
// near-constant cost per sample.
func (r *FollowsRepository) randomRangeSeek() (int64, bool, error) {
  var bounds struct {
    Lo sql.NullInt64
    Hi sql.NullInt64
  }
  query := r.Db.Model(&models.Follow{})
  query.Select("MIN(follower_id) AS lo, MAX(follower_id) AS hi")
  if err := query.Scan(&bounds).Error; err != nil {
    return 0, false, err
  }
  if !bounds.Lo.Valid {
    return 0, false, nil
  }

  pick := bounds.Lo.Int64 + rand.Int63n(bounds.Hi.Int64-bounds.Lo.Int64+1)

  var follow models.Follow
  err := r.Db.Where("follower_id >= ?", pick).Order("follower_id").Take(&follow).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    // nothing at or above the draw, settle for the highest id
    return bounds.Hi.Int64, true, nil
  }
  if err != nil {
    return 0, false, err
  }
  return follow.FollowerID, true, nil
}
