package model

import "time"

// Medal 颁发的一枚奖牌；一个小项不限定 3 枚（并列、团体、取消资格都靠增删行表达）
type Medal struct {
	ID           uint64      `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	MedalEventID uint64      `gorm:"column:medal_event_id;not null;index;comment:所属小项" json:"medal_event_id"`
	CountryID    uint64      `gorm:"column:country_id;not null;index;comment:获奖国家" json:"country_id"`
	AthleteName  string      `gorm:"column:athlete_name;type:varchar(256);not null;comment:运动员/队伍" json:"athlete_name"`
	MedalType    MedalType   `gorm:"column:medal_type;type:varchar(8);not null;comment:gold/silver/bronze" json:"medal_type"`
	ResultValue  *string     `gorm:"column:result_value;type:varchar(64);comment:成绩文本" json:"result_value"`
	RecordType   *RecordType `gorm:"column:record_type;type:varchar(4);comment:WR/OR/PB" json:"record_type"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// MedalsPerCompleteEvent 界面约定：满 3 枚视为该小项已完赛
const MedalsPerCompleteEvent = 3

func (Medal) TableName() string { return "medals" }

// All 需要 AutoMigrate 的全部表（按依赖顺序）
func All() []interface{} {
	return []interface{}{
		&Country{},
		&Sport{},
		&Olympics{},
		&Setting{},
		&MedalEvent{},
		&EventParticipant{},
		&EventRound{},
		&RoundResult{},
		&Match{},
		&Medal{},
	}
}
