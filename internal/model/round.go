package model

import "time"

// EventRound 小项下的一个轮次（预赛/半决赛/决赛等）
type EventRound struct {
	ID           uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	MedalEventID uint64     `gorm:"column:medal_event_id;not null;index;comment:所属小项" json:"medal_event_id"`
	RoundType    RoundType  `gorm:"column:round_type;type:varchar(16);not null;default:heat" json:"round_type"`
	RoundNumber  int        `gorm:"column:round_number;not null;default:1;comment:并行组号" json:"round_number"`
	RoundName    *string    `gorm:"column:round_name;type:varchar(128);comment:自定义名称" json:"round_name"`
	StartTime    time.Time  `gorm:"column:start_time;not null;index;comment:开始时间(UTC)" json:"start_time_utc"`
	EndTime      *time.Time `gorm:"column:end_time;comment:结束时间(UTC)" json:"end_time_utc"`
	Venue        *string    `gorm:"column:venue;type:varchar(256);comment:覆盖小项场馆" json:"venue"`
	Status       Status     `gorm:"column:status;type:varchar(16);not null;default:scheduled;index" json:"status"`
	Notes        *string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// RoundResult 无对阵轮次（如预赛）的名次成绩
type RoundResult struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventRoundID  uint64    `gorm:"column:event_round_id;not null;index" json:"event_round_id"`
	CountryID     *uint64   `gorm:"column:country_id;index" json:"country_id"`
	AthleteName   *string   `gorm:"column:athlete_name;type:varchar(256)" json:"athlete_name"`
	ResultValue   *string   `gorm:"column:result_value;type:varchar(64);comment:原样保存的成绩文本" json:"result_value"`
	FinalPosition *int      `gorm:"column:final_position;comment:最终名次" json:"final_position"`
	Notes         *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EventRound) TableName() string  { return "event_rounds" }
func (RoundResult) TableName() string { return "round_results" }
