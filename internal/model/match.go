package model

import "time"

// Match 轮次内的一场对阵；比分为原样文本（如 "3-2"），不做数值比较
type Match struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	EventRoundID    uint64     `gorm:"column:event_round_id;not null;index;comment:所属轮次" json:"event_round_id"`
	MatchName       *string    `gorm:"column:match_name;type:varchar(128)" json:"match_name"`
	TeamACountryID  *uint64    `gorm:"column:team_a_country_id;index" json:"team_a_country_id"`
	TeamBCountryID  *uint64    `gorm:"column:team_b_country_id;index" json:"team_b_country_id"`
	TeamAName       *string    `gorm:"column:team_a_name;type:varchar(128)" json:"team_a_name"`
	TeamBName       *string    `gorm:"column:team_b_name;type:varchar(128)" json:"team_b_name"`
	TeamAScore      *string    `gorm:"column:team_a_score;type:varchar(32)" json:"team_a_score"`
	TeamBScore      *string    `gorm:"column:team_b_score;type:varchar(32)" json:"team_b_score"`
	WinnerCountryID *uint64    `gorm:"column:winner_country_id;index" json:"winner_country_id"`
	StartTime       *time.Time `gorm:"column:start_time;comment:开始时间(UTC)" json:"start_time_utc"`
	Status          Status     `gorm:"column:status;type:varchar(16);not null;default:scheduled" json:"status"`
	Notes           *string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Involves 对阵任一方是否为该国家
func (m *Match) Involves(countryID uint64) bool {
	return (m.TeamACountryID != nil && *m.TeamACountryID == countryID) ||
		(m.TeamBCountryID != nil && *m.TeamBCountryID == countryID)
}

func (Match) TableName() string { return "matches" }
