package model

// StreamCount is the play counter of a single song.
type StreamCount struct {
	ID      uint   `json:"-" gorm:"primaryKey"`
	SongID  string `json:"song_id" gorm:"column:song_id;size:255;not null;uniqueIndex"`
	Streams int64  `json:"streams" gorm:"not null;default:1"`
}

func (StreamCount) TableName() string {
	return "streams"
}
