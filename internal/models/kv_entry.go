package models

import "time"

// KVEntry is a row of the key-value table used by the SQL storage backends.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;type:varchar(191);primarykey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
