package model

import "time"

// Country 参赛国家/地区，code 为三位大写代码
type Country struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null;comment:国家名称" json:"name"`
	Code      string    `gorm:"column:code;type:varchar(3);uniqueIndex;not null;comment:三位代码" json:"code"`
	FlagURL   *string   `gorm:"column:flag_url;type:varchar(512);comment:国旗图片" json:"flag_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Sport 运动大项
type Sport struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null;comment:项目名称" json:"name"`
	Icon      *string   `gorm:"column:icon;type:varchar(64);comment:图标" json:"icon"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Country) TableName() string { return "countries" }
func (Sport) TableName() string   { return "sports" }
