package model

import (
	"strconv"
	"strings"
)

// RoundLabel 轮次展示名：自定义名称优先，否则为 "<类型名>[ <组号>]"，组号为 1 时省略
func RoundLabel(roundName *string, roundType RoundType, roundNumber int) string {
	if roundName != nil && strings.TrimSpace(*roundName) != "" {
		return *roundName
	}
	label := roundType.Label()
	if roundNumber > 1 {
		return label + " " + strconv.Itoa(roundNumber)
	}
	return label
}

// Label 见 RoundLabel
func (r *EventRound) Label() string {
	return RoundLabel(r.RoundName, r.RoundType, r.RoundNumber)
}

// EventDisplayName 小项展示名，按性别加前缀；mixed 或未设置不加
func EventDisplayName(gender *Gender, name string) string {
	if gender == nil {
		return name
	}
	switch *gender {
	case GenderMen:
		return "Men's " + name
	case GenderWomen:
		return "Women's " + name
	}
	return name
}

// DisplayName 见 EventDisplayName
func (e *MedalEvent) DisplayName() string {
	return EventDisplayName(e.Gender, e.Name)
}

// SideName 对阵一方展示名：有国家引用时用国家名，否则用自由文本队名
func SideName(country *Country, teamName *string) string {
	if country != nil {
		return country.Name
	}
	if teamName != nil {
		return *teamName
	}
	return ""
}
