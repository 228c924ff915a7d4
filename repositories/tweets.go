package repositories

import (
  "gorm.io/gorm"

  "socialgraph.local/social-graph/models"
)

type TweetsRepository struct {
  Db *gorm.DB
}

// Post appends one tweet and commits it. The store assigns tweet_id and
// tweet_ts. Text over 140 characters is the caller's responsibility.
func (r *TweetsRepository) Post(userID int64, text string) (uint64, error) {
  tweet := models.Tweet{
    UserID:    userID,
    TweetText: text,
  }
  if err := r.Db.Create(&tweet).Error; err != nil {
    return 0, &WriteError{Op: "post tweet", Err: err}
  }
  return tweet.TweetID, nil
}

// HomeTimeline returns the 10 most recent tweets authored by users that
// userID follows, newest first. Equal timestamps fall back to tweet_id so
// repeated calls come back in the same order. A user with no followees gets
// an empty slice, not an error.
func (r *TweetsRepository) HomeTimeline(userID int64) ([]models.Tweet, error) {
  followees := r.Db.Model(&models.Follow{}).Select("followee_id")
  followees.Where("follower_id = ?", userID)

  var tweets []models.Tweet
  query := r.Db.Where("user_id IN (?)", followees)
  query.Order("tweet_ts DESC")
  query.Order("tweet_id DESC")
  query.Limit(10)
  if err := query.Find(&tweets).Error; err != nil {
    return nil, err
  }
  return tweets, nil
}
