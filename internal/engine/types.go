package engine

import (
	"strings"
	"time"
)

// Column identifies which collection of a day an item belongs to.
type Column string

const (
	ColumnPlan    Column = "plan"
	ColumnFact    Column = "fact"
	ColumnPrePlan Column = "pre-plan"
)

func (c Column) IsValid() bool {
	switch c {
	case ColumnPlan, ColumnFact, ColumnPrePlan:
		return true
	default:
		return false
	}
}

type TimeType string

const (
	TimeTypeToGoal TimeType = "to-goal"
	TimeTypeToTime TimeType = "to-time"
)

func (t TimeType) IsValid() bool {
	return t == TimeTypeToGoal || t == TimeTypeToTime
}

// DefaultTimeType is used when user input is missing/invalid.
const DefaultTimeType TimeType = TimeTypeToGoal

func ParseTimeType(input string) TimeType {
	t := TimeType(strings.TrimSpace(strings.ToLower(input)))
	if t.IsValid() {
		return t
	}
	return DefaultTimeType
}

// TaskQuality grades a task A (best) to D.
type TaskQuality string

const (
	QualityA TaskQuality = "A"
	QualityB TaskQuality = "B"
	QualityC TaskQuality = "C"
	QualityD TaskQuality = "D"
)

func (q TaskQuality) IsValid() bool {
	switch q {
	case QualityA, QualityB, QualityC, QualityD:
		return true
	default:
		return false
	}
}

const DefaultQuality TaskQuality = QualityC

func ParseQuality(input string) TaskQuality {
	q := TaskQuality(strings.TrimSpace(strings.ToUpper(input)))
	if q.IsValid() {
		return q
	}
	return DefaultQuality
}

// TimeQuality is "pure" when the task was executed without pausing the timer.
type TimeQuality string

const (
	TimePure    TimeQuality = "pure"
	TimeNotPure TimeQuality = "not-pure"
)

func (t TimeQuality) IsValid() bool {
	return t == TimePure || t == TimeNotPure
}

// Item is a unit of work. A pending plan item and an archived fact item are
// the same shape; Completed tells them apart. A fact item always has both
// CompletedTime and ActualDuration set.
type Item struct {
	ID               string      `json:"id"`
	Description      string      `json:"description"`
	TimeType         TimeType    `json:"timeType"`
	Quality          TaskQuality `json:"taskQuality"`
	Priority         int         `json:"priority"`
	EstimatedMinutes Minutes     `json:"estimatedMinutes"`
	Date             time.Time   `json:"date"`
	ProjectID        string      `json:"projectId,omitempty"`

	ColumnOrigin   Column `json:"columnOrigin"`
	CreationColumn Column `json:"creationColumn"`

	Completed      bool        `json:"completed"`
	XPValue        int         `json:"xpValue"`
	CreatedTime    time.Time   `json:"createdTime"`
	CompletedTime  *time.Time  `json:"completedTime,omitempty"`
	ActualDuration *Minutes    `json:"actualDuration,omitempty"`
	TimeQuality    TimeQuality `json:"timeQuality,omitempty"`
	WasPrePlanned  bool        `json:"wasPrePlanned,omitempty"`
	PlannedDate    *time.Time  `json:"plannedDate,omitempty"`
}

// DayStats are the per-day running totals.
type DayStats struct {
	DayXP          int `json:"dayXP"`
	DayMinutes     int `json:"dayMinutes"`
	DayPureMinutes int `json:"dayPureMinutes"`
	PlanAdherence  int `json:"planAdherence"`
}

// Day is one logical day (boundary hour to boundary hour). Exactly one Day
// is current; archived days are immutable history.
type Day struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	PlanItems    []Item    `json:"planItems"`
	FactItems    []Item    `json:"factItems"`
	PrePlanItems []Item    `json:"prePlanItems,omitempty"`
	Stats        DayStats  `json:"stats"`
	Reflection   string    `json:"reflection,omitempty"`
}

// Records are running all-time maxima; monotonically non-decreasing.
type Records struct {
	HighestDayXP      int `json:"highestDayXP"`
	MostWorkTimeInDay int `json:"mostWorkTimeInDay"`
	MostPureTimeInDay int `json:"mostPureTimeInDay"`
	HighestTaskXP     int `json:"highestTaskXP"`
}

// State is the durable progression blob (one storage key).
type State struct {
	TotalXP              int        `json:"totalXP"`
	CurrentLevel         int        `json:"currentLevel"`
	NextLevelXP          int        `json:"nextLevelXP"`
	Streak               int        `json:"streak"`
	CurrentDay           Day        `json:"currentDay"`
	Days                 []Day      `json:"days"`
	Records              Records    `json:"records"`
	LastReflectionPrompt *time.Time `json:"lastReflectionPrompt,omitempty"`
}

// Reserved project ids. Both always exist and cannot be deleted.
const (
	ProjectAll   = "all-projects"
	ProjectOther = "other-projects"
)

// Project is a per-project XP ledger derived from the fact-item stream.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CurrentXP    int      `json:"currentXP"`
	CurrentLevel int      `json:"currentLevel"`
	NextLevelXP  int      `json:"nextLevelXP"`
	TaskIDs      []string `json:"taskIds"`
}

// ProjectsState is the second durable blob (projects storage key).
type ProjectsState struct {
	Projects []Project `json:"projects"`
	Selected string    `json:"selected,omitempty"`
}

// Stats is the derived dashboard snapshot for the current day.
type Stats struct {
	CurrentXP        int
	NextLevelXP      int
	CurrentLevel     int
	TodayXP          int
	BestDayXP        int
	TodayMinutes     int
	BestMinutes      int
	TodayPureMinutes int
	BestPureMinutes  int
	Streak           int
	PlanAdherence    int
}
