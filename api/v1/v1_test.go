package v1

import (
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "net/url"
  "strings"
  "testing"

  "github.com/go-chi/chi/v5"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "socialgraph.local/social-graph/common"
  "socialgraph.local/social-graph/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
  db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
    Logger: logger.Default.LogMode(logger.Silent),
  })
  require.NoError(t, err)

  pool, err := db.DB()
  require.NoError(t, err)
  pool.SetMaxOpenConns(1)
  pool.SetMaxIdleConns(1)
  require.NoError(t, db.AutoMigrate(&models.Tweet{}, &models.Follow{}))
  t.Cleanup(func() {
    pool.Close()
  })

  apiContext := &common.ApiContext{
    Db: db,
  }
  r := chi.NewRouter()
  r.Route("/v1", func(r chi.Router) {
    r.Mount("/tweets", NewTweetsRouter(apiContext))
    r.Mount("/timelines", NewTimelinesRouter(apiContext))
    r.Mount("/follows", NewFollowsRouter(apiContext))
  })
  return r, db
}

func postForm(t *testing.T, router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
  req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
  req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)
  return w
}

func TestTweetsRouter_Post(t *testing.T) {
  router, _ := setupRouter(t)

  t.Run("CreatesTweet", func(t *testing.T) {
    w := postForm(t, router, "/v1/tweets", url.Values{
      "user_id": {"7"},
      "text":    {"hello, timeline"},
    })
    require.Equal(t, http.StatusOK, w.Code)

    var payload map[string]uint64
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
    assert.Greater(t, payload["tweet_id"], uint64(0))
  })

  t.Run("RejectsBadUserId", func(t *testing.T) {
    w := postForm(t, router, "/v1/tweets", url.Values{
      "user_id": {"seven"},
      "text":    {"hello"},
    })
    assert.Equal(t, http.StatusForbidden, w.Code)
  })

  t.Run("RejectsEmptyText", func(t *testing.T) {
    w := postForm(t, router, "/v1/tweets", url.Values{
      "user_id": {"7"},
    })
    assert.Equal(t, http.StatusForbidden, w.Code)
  })
}

func TestTimelinesRouter_Get(t *testing.T) {
  router, db := setupRouter(t)

  require.NoError(t, db.Create(&models.Follow{FollowerID: 1, FolloweeID: 2}).Error)
  w := postForm(t, router, "/v1/tweets", url.Values{
    "user_id": {"2"},
    "text":    {"a followee speaks"},
  })
  require.Equal(t, http.StatusOK, w.Code)

  t.Run("ReturnsFolloweeTweets", func(t *testing.T) {
    req := httptest.NewRequest(http.MethodGet, "/v1/timelines?user_id=1", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    require.Equal(t, http.StatusOK, w.Code)

    var tweets []models.Tweet
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tweets))
    require.Len(t, tweets, 1)
    assert.Equal(t, int64(2), tweets[0].UserID)
  })

  t.Run("EmptyTimelineIsAnEmptyArray", func(t *testing.T) {
    req := httptest.NewRequest(http.MethodGet, "/v1/timelines?user_id=99", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    require.Equal(t, http.StatusOK, w.Code)
    assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
  })

  t.Run("RejectsBadUserId", func(t *testing.T) {
    req := httptest.NewRequest(http.MethodGet, "/v1/timelines?user_id=abc", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    assert.Equal(t, http.StatusForbidden, w.Code)
  })
}

func TestFollowsRouter_Random(t *testing.T) {
  t.Run("EmptyTable", func(t *testing.T) {
    router, _ := setupRouter(t)
    req := httptest.NewRequest(http.MethodGet, "/v1/follows/random", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    assert.Equal(t, http.StatusNotFound, w.Code)
  })

  t.Run("SamplesExistingFollower", func(t *testing.T) {
    router, db := setupRouter(t)
    require.NoError(t, db.Create(&models.Follow{FollowerID: 5, FolloweeID: 6}).Error)

    for _, strategy := range []string{"", "naive", "range-seek"} {
      target := "/v1/follows/random"
      if strategy != "" {
        target += "?strategy=" + strategy
      }
      req := httptest.NewRequest(http.MethodGet, target, nil)
      w := httptest.NewRecorder()
      router.ServeHTTP(w, req)
      require.Equal(t, http.StatusOK, w.Code)

      var payload map[string]int64
      require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
      assert.Equal(t, int64(5), payload["follower_id"])
    }
  })

  t.Run("RejectsUnknownStrategy", func(t *testing.T) {
    router, _ := setupRouter(t)
    req := httptest.NewRequest(http.MethodGet, "/v1/follows/random?strategy=reservoir", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    assert.Equal(t, http.StatusForbidden, w.Code)
  })
}
