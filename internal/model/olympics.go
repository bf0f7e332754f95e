package model

import (
	"time"

	"gorm.io/datatypes"
)

// Olympics 一届奥运会；同一时刻最多一届 is_active=true
type Olympics struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Name      string          `gorm:"column:name;type:varchar(128);not null;comment:名称" json:"name"`
	Year      int             `gorm:"column:year;not null;comment:年份" json:"year"`
	Type      OlympicsType    `gorm:"column:type;type:varchar(16);not null;default:summer;comment:summer/winter/youth/paralympics" json:"type"`
	City      *string         `gorm:"column:city;type:varchar(128);comment:举办城市" json:"city"`
	Country   *string         `gorm:"column:country;type:varchar(128);comment:举办国家" json:"country"`
	LogoURL   *string         `gorm:"column:logo_url;type:varchar(512);comment:会徽" json:"logo_url"`
	StartDate *datatypes.Date `gorm:"column:start_date;comment:开幕日期" json:"start_date"`
	EndDate   *datatypes.Date `gorm:"column:end_date;comment:闭幕日期" json:"end_date"`
	IsActive  bool            `gorm:"column:is_active;not null;default:false;index;comment:是否为当前届" json:"is_active"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Setting 进程级 key/value 配置
type Setting struct {
	Key       string    `gorm:"column:key;type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

const (
	SettingActiveOlympicsID = "active_olympics_id"
	SettingDefaultTimezone  = "default_timezone"
)

func (Olympics) TableName() string { return "olympics" }
func (Setting) TableName() string  { return "settings" }
