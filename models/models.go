package models

import "time"

// Agency is the responding service type for a call.
type Agency string

const (
	AgencyLaw    Agency = "LAW"
	AgencyEMS    Agency = "EMS"
	AgencyFire   Agency = "FIRE"
	AgencyRescue Agency = "RESCUE"
)

// AllAgencies lists every agency in canonical order.
var AllAgencies = []Agency{AgencyLaw, AgencyEMS, AgencyFire, AgencyRescue}

// DefaultAgencyWeights are used when no agency subset and no weights are given.
var DefaultAgencyWeights = map[Agency]float64{
	AgencyLaw:    0.72,
	AgencyEMS:    0.15,
	AgencyFire:   0.10,
	AgencyRescue: 0.03,
}

// Prefix returns the single letter used in call identifiers.
func (a Agency) Prefix() string {
	switch a {
	case AgencyLaw:
		return "L"
	case AgencyEMS:
		return "M"
	case AgencyFire:
		return "F"
	case AgencyRescue:
		return "R"
	default:
		return "X"
	}
}

// Shift is a 12-hour rotating duty label.
type Shift string

const (
	ShiftA Shift = "A"
	ShiftB Shift = "B"
	ShiftC Shift = "C"
	ShiftD Shift = "D"
)

// AllShifts lists every shift letter.
var AllShifts = []Shift{ShiftA, ShiftB, ShiftC, ShiftD}

// ShiftPart subdivides a shift into three four-hour blocks.
type ShiftPart string

const (
	ShiftPartEarly ShiftPart = "EARLY"
	ShiftPartMids  ShiftPart = "MIDS"
	ShiftPartLate  ShiftPart = "LATE"
)

// DayNight is DAY for hours 06-17 and NIGHT otherwise.
type DayNight string

const (
	Day   DayNight = "DAY"
	Night DayNight = "NIGHT"
)

// Config is the caller-facing generation request.
// Dates use the YYYY-MM-DD layout. Agencies and AgencyProbabilities are
// optional; when both are set they must have the same length.
type Config struct {
	NumRecords          int       `json:"num_records" yaml:"num_records"`
	StartDate           string    `json:"start_date" yaml:"start_date"`
	EndDate             string    `json:"end_date" yaml:"end_date"`
	NumNames            int       `json:"num_names" yaml:"num_names"`
	Locale              string    `json:"locale" yaml:"locale"`
	Agencies            []string  `json:"agencies,omitempty" yaml:"agencies,omitempty"`
	AgencyProbabilities []float64 `json:"agency_probabilities,omitempty" yaml:"agency_probabilities,omitempty"`
	Seed                *uint64   `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Durations holds the sampled timing fields of a call, in seconds.
type Durations struct {
	QueueTime    int `json:"queue_time"`
	DispatchTime int `json:"dispatch_time"`
	PhoneTime    int `json:"phone_time"`
	AckTime      int `json:"ack_time"`
	EnrouteTime  int `json:"enroute_time"`
	OnSceneTime  int `json:"on_scene_time"`
	ProcessTime  int `json:"process_time"`
	TotalTime    int `json:"total_time"`
}

// Timestamps holds the cascade of instants derived from the event time.
type Timestamps struct {
	CallQueued       time.Time `json:"time_call_queued"`
	CallDispatched   time.Time `json:"time_call_dispatched"`
	CallAcknowledged time.Time `json:"time_call_acknowledged"`
	CallDisconnected time.Time `json:"time_call_disconnected"`
	UnitEnroute      time.Time `json:"time_unit_enroute"`
	CallClosed       time.Time `json:"time_call_closed"`
}

// Record is one synthetic dispatch call.
type Record struct {
	CallID         string    `json:"call_id"`
	Agency         Agency    `json:"agency"`
	EventTime      time.Time `json:"event_time"`
	DayOfYear      int       `json:"day_of_year"`
	WeekNo         int       `json:"week_no"`
	Hour           int       `json:"hour"`
	DayNight       DayNight  `json:"day_night"`
	DOW            string    `json:"dow"`
	Shift          Shift     `json:"shift"`
	ShiftPart      ShiftPart `json:"shift_part"`
	Problem        string    `json:"problem"`
	Address        string    `json:"address"`
	PriorityNumber int       `json:"priority_number"`
	CallTaker      string    `json:"call_taker"`
	CallReception  string    `json:"call_reception"`
	Dispatcher     string    `json:"dispatcher"`
	Durations
	Timestamps
	Disposition string `json:"disposition"`
}

// PersonnelPool maps each shift to its roster of "Last, First" names.
type PersonnelPool map[Shift][]string

// Table is the output of a generation run.
type Table struct {
	RunID       string        `json:"run_id"`
	Locale      string        `json:"locale"`
	Seed        uint64        `json:"seed"`
	Records     []Record      `json:"records"`
	CallTakers  PersonnelPool `json:"call_takers"`
	Dispatchers PersonnelPool `json:"dispatchers"`
	Warnings    []error       `json:"-"`
}

// ColumnSummary is a describe()-style digest of one numeric column.
type ColumnSummary struct {
	Column string  `json:"column" yaml:"column"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	P25    float64 `json:"p25" yaml:"p25"`
	P50    float64 `json:"p50" yaml:"p50"`
	P75    float64 `json:"p75" yaml:"p75"`
	Max    float64 `json:"max" yaml:"max"`
}

// AgencyRequirement is the call-taker demand of one agency in one hour.
type AgencyRequirement struct {
	Agency       Agency `json:"agency"`
	Calls        int    `json:"calls"`
	AgentsNeeded int    `json:"agents_needed"`
	// Priority is the most urgent priority number seen for the agency in
	// that hour; lower values are served first when capacity is short.
	Priority int `json:"priority"`
}

// ImpactedAgency represents an agency affected by capacity constraints.
type ImpactedAgency struct {
	Agency          Agency `json:"agency"`
	RequestedAgents int    `json:"requested_agents"`
	AllocatedAgents int    `json:"allocated_agents"`
	UnmetAgents     int    `json:"unmet_agents"`
	Priority        int    `json:"priority"`
}

// UnmetDemand represents capacity shortfall for a specific hour.
type UnmetDemand struct {
	Hour             int              `json:"hour"`
	TotalDemand      int              `json:"total_demand"`
	AllocatedAgents  int              `json:"allocated_agents"`
	UnmetAgents      int              `json:"unmet_agents"`
	ImpactedAgencies []ImpactedAgency `json:"impacted_agencies"`
}

// StaffingPlan is the hour-of-day call-taker demand derived from a table.
type StaffingPlan struct {
	// Days is the number of calendar days the records span.
	Days               int                   `json:"days"`
	HourlyRequirements [][]AgencyRequirement `json:"hourly_requirements"`
	UnmetDemands       []UnmetDemand         `json:"unmet_demands"`
}

// Columns is the order of fields in exported call tables.
var Columns = []string{
	"call_id", "agency", "event_time", "day_of_year", "week_no", "hour",
	"day_night", "dow", "shift", "shift_part", "problem", "address",
	"priority_number", "call_taker", "call_reception", "dispatcher",
	"queue_time", "dispatch_time", "phone_time", "ack_time", "enroute_time",
	"on_scene_time", "process_time", "total_time",
	"time_call_queued", "time_call_dispatched", "time_call_acknowledged",
	"time_call_disconnected", "time_unit_enroute", "time_call_closed",
	"disposition",
}

// TimestampLayout is the layout of every datetime field in exported tables.
const TimestampLayout = "2006-01-02 15:04:05"
