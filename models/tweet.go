package models

import (
  "time"
)

type Tweet struct {
  TweetID   uint64    `gorm:"column:tweet_id;primaryKey;autoIncrement" json:"tweet_id"`
  UserID    int64     `gorm:"column:user_id;not null;index:idx_tweets_user_ts,priority:1" json:"user_id"`
  TweetTS   time.Time `gorm:"column:tweet_ts;not null;autoCreateTime;index:idx_tweets_user_ts,priority:2" json:"tweet_ts"`
  TweetText string    `gorm:"column:tweet_text;size:140;not null" json:"tweet_text"`
}

func (m *Tweet) TableName() string {
  return "tweets"
}
