package types

import (
	"strconv"
	"time"
)

// TagValue is the current value of one tag. Values travel as strings and
// are parsed to numbers at evaluation time.
type TagValue struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Float returns the numeric reading of the tag, or false when the value
// does not parse as a number.
func (t TagValue) Float() (float64, bool) {
	v, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type AlarmStatus string

const (
	AlarmStatusVoid AlarmStatus = ""
	AlarmStatusOn   AlarmStatus = "N"
	AlarmStatusOff  AlarmStatus = "NF"
	AlarmStatusAck  AlarmStatus = "NA"
)

type AlarmCategory string

const (
	AlarmHighHigh AlarmCategory = "highhigh"
	AlarmHigh     AlarmCategory = "high"
	AlarmLow      AlarmCategory = "low"
	AlarmInfo     AlarmCategory = "info"
	AlarmAction   AlarmCategory = "action"
)

type AckMode string

const (
	AckModeFloat   AckMode = "float"
	AckModeActive  AckMode = "ackactive"
	AckModePassive AckMode = "ackpassive"
)

// AlarmSubProperty holds the range, debounce and acknowledgment settings
// of an alarm definition.
type AlarmSubProperty struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	CheckDelay int     `json:"checkDelay"`
	OnDelay    int     `json:"timedelay"`
	AckMode    AckMode `json:"ackmode"`
	Text       string  `json:"text,omitempty"`
	Group      string  `json:"group,omitempty"`
}

// AlarmDefinition is the persisted configuration of one alarm. It is
// created and edited by the external CRUD layer and read-only here,
// except for the enabled flag.
type AlarmDefinition struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    AlarmCategory    `json:"type"`
	Enabled     bool             `json:"isEnabled"`
	TagID       string           `json:"tagId"`
	SubProperty AlarmSubProperty `json:"subproperty"`
}

// AlarmSnapshot is the persisted runtime state of one alarm instance.
type AlarmSnapshot struct {
	AlarmID string      `json:"alarmId"`
	Status  AlarmStatus `json:"status"`
	OnTime  *time.Time  `json:"ontime,omitempty"`
	OffTime *time.Time  `json:"offtime,omitempty"`
	AckTime *time.Time  `json:"acktime,omitempty"`
	AckUser string      `json:"ackUser,omitempty"`
}

// AlarmHistoryRecord is an immutable snapshot of one alarm transition.
type AlarmHistoryRecord struct {
	ID         string        `json:"id"`
	AlarmID    string        `json:"alarmId"`
	Name       string        `json:"name"`
	Category   AlarmCategory `json:"type"`
	Status     AlarmStatus   `json:"status"`
	OnTime     *time.Time    `json:"ontime,omitempty"`
	OffTime    *time.Time    `json:"offtime,omitempty"`
	AckTime    *time.Time    `json:"acktime,omitempty"`
	AckUser    string        `json:"ackUser,omitempty"`
	Text       string        `json:"text,omitempty"`
	Group      string        `json:"group,omitempty"`
	RecordedAt time.Time     `json:"recordedAt"`
}

const DeviceTypeWebAPI = "WebAPI"

// DeviceProperty is the connection configuration of a polled device.
type DeviceProperty struct {
	Address string `json:"address"`
	Method  string `json:"method,omitempty"`
	Format  string `json:"format,omitempty"`
}

// DeviceConfig mirrors the device entity owned by the external CRUD
// layer. Only enabled/polling/property changes matter to the runtime.
type DeviceConfig struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Enabled   bool           `json:"enabled"`
	PollingMs int            `json:"polling"`
	Property  DeviceProperty `json:"property"`
}

// Connection status values reported by device pollers.
const (
	ConnectOK     = "connect-ok"
	ConnectFailed = "connect-failed"
	ConnectError  = "connect-error"
	ConnectBusy   = "connect-busy"
	ConnectOff    = "connect-off"
)

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
