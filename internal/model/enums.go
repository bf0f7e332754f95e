package model

// Status 轮次/比赛状态
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusDelayed   Status = "delayed"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses 全部合法状态
var Statuses = []Status{StatusScheduled, StatusDelayed, StatusLive, StatusCompleted, StatusCancelled}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusDelayed, StatusLive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal completed/cancelled 为终态
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forwardTransitions scheduled → delayed ⇄ live → completed；非终态均可 cancelled
var forwardTransitions = map[Status][]Status{
	StatusScheduled: {StatusDelayed, StatusLive, StatusCancelled},
	StatusDelayed:   {StatusLive, StatusCancelled},
	StatusLive:      {StatusDelayed, StatusCompleted, StatusCancelled},
}

// CanTransition 正向状态机是否允许 from → to；同状态视为无变化，总是允许
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RoundType 轮次类型
type RoundType string

const (
	RoundQualification RoundType = "qualification"
	RoundPreliminary   RoundType = "preliminary"
	RoundHeat          RoundType = "heat"
	RoundRepechage     RoundType = "repechage"
	RoundRoundRobin    RoundType = "round_robin"
	RoundGroupStage    RoundType = "group_stage"
	RoundKnockout      RoundType = "knockout"
	RoundQuarterfinal  RoundType = "quarterfinal"
	RoundSemifinal     RoundType = "semifinal"
	RoundBronzeFinal   RoundType = "bronze_final"
	RoundFinal         RoundType = "final"
)

// RoundTypeOrder 赛事阶段顺序（详情页按此分组）
var RoundTypeOrder = []RoundType{
	RoundQualification, RoundPreliminary, RoundHeat, RoundRepechage, RoundRoundRobin,
	RoundGroupStage, RoundKnockout, RoundQuarterfinal, RoundSemifinal, RoundBronzeFinal, RoundFinal,
}

var roundTypeLabels = map[RoundType]string{
	RoundQualification: "Qualification",
	RoundPreliminary:   "Preliminary",
	RoundHeat:          "Heat",
	RoundRepechage:     "Repechage",
	RoundRoundRobin:    "Round Robin",
	RoundGroupStage:    "Group Stage",
	RoundKnockout:      "Knockout",
	RoundQuarterfinal:  "Quarterfinal",
	RoundSemifinal:     "Semifinal",
	RoundBronzeFinal:   "Bronze Final",
	RoundFinal:         "Final",
}

// Valid 是否为合法轮次类型
func (t RoundType) Valid() bool {
	_, ok := roundTypeLabels[t]
	return ok
}

// Label 轮次类型展示名；未知类型原样返回
func (t RoundType) Label() string {
	if l, ok := roundTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Phase 阶段序号，未知类型排在最后
func (t RoundType) Phase() int {
	for i, rt := range RoundTypeOrder {
		if rt == t {
			return i
		}
	}
	return len(RoundTypeOrder)
}

// Gender 项目性别
type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
	GenderMixed Gender = "mixed"
)

func (g Gender) Valid() bool {
	return g == GenderMen || g == GenderWomen || g == GenderMixed
}

// EventType 个人/团体
type EventType string

const (
	EventIndividual EventType = "individual"
	EventTeam       EventType = "team"
)

func (t EventType) Valid() bool {
	return t == EventIndividual || t == EventTeam
}

// OlympicsType 奥运会类型
type OlympicsType string

const (
	OlympicsSummer      OlympicsType = "summer"
	OlympicsWinter      OlympicsType = "winter"
	OlympicsYouth       OlympicsType = "youth"
	OlympicsParalympics OlympicsType = "paralympics"
)

func (t OlympicsType) Valid() bool {
	switch t {
	case OlympicsSummer, OlympicsWinter, OlympicsYouth, OlympicsParalympics:
		return true
	}
	return false
}

// MedalType 奖牌类型
type MedalType string

const (
	MedalGold   MedalType = "gold"
	MedalSilver MedalType = "silver"
	MedalBronze MedalType = "bronze"
)

func (t MedalType) Valid() bool {
	return t == MedalGold || t == MedalSilver || t == MedalBronze
}

// RecordType 纪录类型
type RecordType string

const (
	RecordWorld    RecordType = "WR"
	RecordOlympic  RecordType = "OR"
	RecordPersonal RecordType = "PB"
)

func (t RecordType) Valid() bool {
	return t == RecordWorld || t == RecordOlympic || t == RecordPersonal
}
