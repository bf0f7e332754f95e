package model

import (
	"time"

	"gorm.io/datatypes"
)

// MedalEvent 一个产生奖牌的小项（如 Men's 100m Freestyle），隶属于一届奥运会
type MedalEvent struct {
	ID         uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	OlympicsID uint64          `gorm:"column:olympics_id;not null;index;comment:所属奥运会" json:"olympics_id"`
	SportID    *uint64         `gorm:"column:sport_id;index;comment:所属大项" json:"sport_id"`
	Name       string          `gorm:"column:name;type:varchar(256);not null;comment:小项名称" json:"name"`
	Gender     *Gender         `gorm:"column:gender;type:varchar(8);comment:men/women/mixed" json:"gender"`
	EventType  EventType       `gorm:"column:event_type;type:varchar(16);not null;default:individual;comment:individual/team" json:"event_type"`
	Venue      *string         `gorm:"column:venue;type:varchar(256);comment:场馆" json:"venue"`
	EventDate  *datatypes.Date `gorm:"column:event_date;comment:决赛日期" json:"event_date"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// EventParticipant 小项 ↔ 国家 报名关系
type EventParticipant struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MedalEventID uint64    `gorm:"column:medal_event_id;not null;uniqueIndex:uq_event_country" json:"medal_event_id"`
	CountryID    uint64    `gorm:"column:country_id;not null;uniqueIndex:uq_event_country;index" json:"country_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MedalEvent) TableName() string       { return "medal_events" }
func (EventParticipant) TableName() string { return "event_participants" }
