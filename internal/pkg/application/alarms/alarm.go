package alarms

import (
	"time"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
)

// Ack requirement values returned by AckRequirement.
const (
	AckNotApplicable = -1
	AckNotRequired   = 0
	AckRequired      = 1
)

// Alarm is the live instance of one alarm definition. It is not safe
// for concurrent use, the owning service serializes access to it.
type Alarm struct {
	Definition types.AlarmDefinition

	Status  types.AlarmStatus
	OnTime  *time.Time
	OffTime *time.Time
	AckTime *time.Time
	AckUser string

	lastCheck      time.Time
	pendingRemoval bool
}

// NewAlarm creates an instance from a definition and its last persisted
// state.
func NewAlarm(definition types.AlarmDefinition, snapshot types.AlarmSnapshot) *Alarm {
	return &Alarm{
		Definition: definition,
		Status:     snapshot.Status,
		OnTime:     snapshot.OnTime,
		OffTime:    snapshot.OffTime,
		AckTime:    snapshot.AckTime,
		AckUser:    snapshot.AckUser,
	}
}

// Evaluate advances the state machine against a tag reading and reports
// whether a transition happened. Evaluation is throttled so that two
// calls closer together than checkDelay are skipped regardless of who
// triggered them.
func (a *Alarm) Evaluate(now time.Time, value float64) bool {
	sub := a.Definition.SubProperty

	if !a.lastCheck.IsZero() && a.lastCheck.Add(time.Duration(sub.CheckDelay)*time.Second).After(now) {
		return false
	}
	a.lastCheck = now

	inRange := value >= sub.Min && value <= sub.Max

	switch a.Status {
	case types.AlarmStatusVoid:
		if !inRange {
			a.OnTime = nil
			return false
		}

		if a.OnTime == nil {
			t := now
			a.OnTime = &t
		}

		if !a.OnTime.Add(time.Duration(sub.OnDelay) * time.Second).After(now) {
			a.Status = types.AlarmStatusOn
			return true
		}

		return false

	case types.AlarmStatusOn:
		if !inRange {
			a.Status = types.AlarmStatusOff
			if a.OffTime == nil {
				t := now
				a.OffTime = &t
			}
			a.pendingRemoval = sub.AckMode == types.AckModeFloat || a.AckTime != nil
			return true
		}

		if a.AckTime != nil {
			a.Status = types.AlarmStatusAck
			return true
		}

		return false

	case types.AlarmStatusOff:
		if inRange {
			a.Status = types.AlarmStatusOn
			t := now
			a.OnTime = &t
			a.OffTime = nil
			a.AckTime = nil
			a.AckUser = ""
			return true
		}

		if (a.AckTime != nil || a.Definition.Category == types.AlarmAction) && !a.pendingRemoval {
			a.pendingRemoval = true
			return true
		}

		return false

	case types.AlarmStatusAck:
		if !inRange {
			a.Status = types.AlarmStatusOn
			if a.OffTime == nil {
				t := now
				a.OffTime = &t
			}
			return true
		}

		return false
	}

	return false
}

// AckRequirement reports whether the alarm currently needs human
// acknowledgment. Float mode alarms never do.
func (a *Alarm) AckRequirement() int {
	switch a.Definition.SubProperty.AckMode {
	case types.AckModeFloat:
		return AckNotApplicable
	case types.AckModeActive:
		if a.Status == types.AlarmStatusOn || a.Status == types.AlarmStatusOff {
			return AckRequired
		}
	default:
		if a.Status == types.AlarmStatusOff {
			return AckRequired
		}
	}

	return AckNotRequired
}

// Acknowledge records the acknowledging user. Repeated acknowledgments
// are no-ops. A successful ack resets the throttle so the next
// evaluation runs immediately.
func (a *Alarm) Acknowledge(now time.Time, user string) bool {
	if a.AckTime != nil {
		return false
	}

	t := now
	a.AckTime = &t
	a.AckUser = user
	a.lastCheck = time.Time{}

	return true
}

// PendingRemoval reports that the alarm has fully cleared and should be
// reset to its inactive state.
func (a *Alarm) PendingRemoval() bool {
	return a.pendingRemoval
}

// Reset returns the instance to the inactive state, clearing all
// timestamps and the throttle.
func (a *Alarm) Reset() {
	a.Status = types.AlarmStatusVoid
	a.OnTime = nil
	a.OffTime = nil
	a.AckTime = nil
	a.AckUser = ""
	a.lastCheck = time.Time{}
	a.pendingRemoval = false
}

// Snapshot returns the persistable runtime state of the instance.
func (a *Alarm) Snapshot() types.AlarmSnapshot {
	return types.AlarmSnapshot{
		AlarmID: a.Definition.ID,
		Status:  a.Status,
		OnTime:  a.OnTime,
		OffTime: a.OffTime,
		AckTime: a.AckTime,
		AckUser: a.AckUser,
	}
}
