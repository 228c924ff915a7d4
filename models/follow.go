package models

// Follow is a directed edge: follower receives followee's tweets. The ids are
// never checked against a user registry. The unique index keeps an ordered
// pair from appearing twice, and its prefix serves follower_id lookups.
type Follow struct {
  FollowerID int64 `gorm:"column:follower_id;not null;uniqueIndex:idx_follows_edge,priority:1" json:"follower_id"`
  FolloweeID int64 `gorm:"column:followee_id;not null;uniqueIndex:idx_follows_edge,priority:2" json:"followee_id"`
}

func (m *Follow) TableName() string {
  return "follows"
}
