package types

import (
	"encoding/json"
	"time"
)

// TagValueChanged is published for every tag whose value changed during a
// poll, and by the CRUD layer whenever it writes a tag directly.
type TagValueChanged struct {
	DeviceID  string    `json:"deviceID"`
	Tag       TagValue  `json:"tag"`
	Timestamp time.Time `json:"timestamp"`
}

func (t *TagValueChanged) ContentType() string {
	return "application/json"
}
func (t *TagValueChanged) TopicName() string {
	return "devices.tagValueChanged"
}
func (t *TagValueChanged) Body() []byte {
	b, _ := json.Marshal(t)
	return b
}

// ReportedValue is one flattened key in a full device snapshot.
type ReportedValue struct {
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
	Changed   bool      `json:"changed"`
}

// DeviceValuesReported carries the full flattened snapshot of one poll,
// changed and unchanged keys alike, for downstream broadcast.
type DeviceValuesReported struct {
	DeviceID  string                   `json:"deviceID"`
	Values    map[string]ReportedValue `json:"values"`
	Timestamp time.Time                `json:"timestamp"`
}

func (d *DeviceValuesReported) ContentType() string {
	return "application/json"
}
func (d *DeviceValuesReported) TopicName() string {
	return "devices.valuesReported"
}
func (d *DeviceValuesReported) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}

type DeviceStatusChanged struct {
	DeviceID  string    `json:"deviceID"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceStatusChanged) ContentType() string {
	return "application/json"
}
func (d *DeviceStatusChanged) TopicName() string {
	return "devices.statusChanged"
}
func (d *DeviceStatusChanged) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}

// DeviceCreated, DeviceUpdated and DeviceDeleted are published by the
// persistence layer's mutation hooks.
type DeviceCreated struct {
	Device    DeviceConfig `json:"device"`
	Timestamp time.Time    `json:"timestamp"`
}

func (d *DeviceCreated) ContentType() string {
	return "application/json"
}
func (d *DeviceCreated) TopicName() string {
	return "device.created"
}
func (d *DeviceCreated) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}

type DeviceUpdated struct {
	Device    DeviceConfig `json:"device"`
	Previous  DeviceConfig `json:"previous"`
	Timestamp time.Time    `json:"timestamp"`
}

func (d *DeviceUpdated) ContentType() string {
	return "application/json"
}
func (d *DeviceUpdated) TopicName() string {
	return "device.updated"
}
func (d *DeviceUpdated) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}

// AlarmChanged is published on every alarm state transition, including
// acknowledgments and removals.
type AlarmChanged struct {
	AlarmID   string        `json:"alarmId"`
	Name      string        `json:"name"`
	Category  AlarmCategory `json:"type"`
	Status    AlarmStatus   `json:"status"`
	Snapshot  AlarmSnapshot `json:"snapshot"`
	Text      string        `json:"text,omitempty"`
	Group     string        `json:"group,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func (a *AlarmChanged) ContentType() string {
	return "application/json"
}
func (a *AlarmChanged) TopicName() string {
	return "alarms.alarmChanged"
}
func (a *AlarmChanged) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

// AlarmsCleared is published after an operator wiped all alarm state.
type AlarmsCleared struct {
	Timestamp time.Time `json:"timestamp"`
}

func (a *AlarmsCleared) ContentType() string {
	return "application/json"
}
func (a *AlarmsCleared) TopicName() string {
	return "alarms.cleared"
}
func (a *AlarmsCleared) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type DeviceDeleted struct {
	DeviceID  string    `json:"deviceID"`
	Timestamp time.Time `json:"timestamp"`
}

func (d *DeviceDeleted) ContentType() string {
	return "application/json"
}
func (d *DeviceDeleted) TopicName() string {
	return "device.deleted"
}
func (d *DeviceDeleted) Body() []byte {
	b, _ := json.Marshal(d)
	return b
}
