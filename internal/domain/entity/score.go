package entity

import (
	"time"
)

// Ограничения на поля записи результата
const (
	MaxPlayerNameLength = 50
	MinLevel            = 1
	MaxLevel            = 5
)

// Score представляет результат одной игровой сессии.
// Запись неизменяема: после вставки не обновляется и не удаляется.
type Score struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerName string `gorm:"size:50;not null" json:"player_name"`
	Score      int    `gorm:"type:bigint;not null" json:"score"`
	Level      int    `gorm:"not null;default:1" json:"level"`
	PlayTime   int    `gorm:"type:bigint;not null;default:0" json:"play_time"` // секунды
	// CreatedAt проставляется часами БД (DEFAULT в миграции), GORM его не пишет
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "scores"
}
