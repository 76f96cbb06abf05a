package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/jackc/pgx/v5"
)

// PersistedAlarm couples an alarm definition with its last persisted
// runtime state.
type PersistedAlarm struct {
	Definition types.AlarmDefinition
	Snapshot   types.AlarmSnapshot
}

func (s *Storage) GetAlarms(ctx context.Context, conditions ...ConditionFunc) (types.Collection[PersistedAlarm], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var alarmID, name, alarmType, tagID, status string
	var enabled bool
	var subproperty json.RawMessage
	var onTime, offTime, ackTime *time.Time
	var ackUser *string
	var count int64

	query := fmt.Sprintf(`
		SELECT alarm_id, name, alarm_type, enabled, tag_id, subproperty, status, ontime, offtime, acktime, ackuser, count(*) OVER () AS count
		FROM alarms
		%s
		ORDER BY alarm_id ASC
		%s
	`, where, condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[PersistedAlarm]{}, err
	}

	alarms := make([]PersistedAlarm, 0)

	_, err = pgx.ForEachRow(rows, []any{&alarmID, &name, &alarmType, &enabled, &tagID, &subproperty, &status, &onTime, &offTime, &ackTime, &ackUser, &count}, func() error {
		sub := types.AlarmSubProperty{}
		err := json.Unmarshal(subproperty, &sub)
		if err != nil {
			return err
		}

		a := PersistedAlarm{
			Definition: types.AlarmDefinition{
				ID:          alarmID,
				Name:        name,
				Category:    types.AlarmCategory(alarmType),
				Enabled:     enabled,
				TagID:       tagID,
				SubProperty: sub,
			},
			Snapshot: types.AlarmSnapshot{
				AlarmID: alarmID,
				Status:  types.AlarmStatus(status),
				OnTime:  onTime,
				OffTime: offTime,
				AckTime: ackTime,
			},
		}
		if ackUser != nil {
			a.Snapshot.AckUser = *ackUser
		}

		alarms = append(alarms, a)

		return nil
	})
	if err != nil {
		return types.Collection[PersistedAlarm]{}, err
	}

	return types.Collection[PersistedAlarm]{
		Data:       alarms,
		Count:      uint64(len(alarms)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) UpsertAlarmState(ctx context.Context, snapshot types.AlarmSnapshot) error {
	if snapshot.AlarmID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"alarm_id": snapshot.AlarmID,
		"status":   string(snapshot.Status),
		"ontime":   snapshot.OnTime,
		"offtime":  snapshot.OffTime,
		"acktime":  snapshot.AckTime,
		"ackuser":  snapshot.AckUser,
	}

	_, err := s.pool.Exec(ctx, `
		UPDATE alarms
		SET status = @status, ontime = @ontime, offtime = @offtime, acktime = @acktime, ackuser = @ackuser, modified_on = CURRENT_TIMESTAMP
		WHERE alarm_id = @alarm_id
	`, args)
	if err != nil {
		return ErrStoreFailed
	}

	return nil
}

func (s *Storage) DeleteAlarm(ctx context.Context, alarmID string) error {
	args := pgx.NamedArgs{"alarm_id": alarmID}

	_, err := s.pool.Exec(ctx, `DELETE FROM alarm_history WHERE alarm_id = @alarm_id`, args)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM alarms WHERE alarm_id = @alarm_id`, args)

	return err
}

func (s *Storage) DeleteAllAlarms(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM alarm_history`)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM alarms`)

	return err
}

func (s *Storage) AppendHistory(ctx context.Context, record types.AlarmHistoryRecord) error {
	if record.ID == "" || record.AlarmID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"history_id":  record.ID,
		"alarm_id":    record.AlarmID,
		"name":        record.Name,
		"alarm_type":  string(record.Category),
		"status":      string(record.Status),
		"ontime":      record.OnTime,
		"offtime":     record.OffTime,
		"acktime":     record.AckTime,
		"ackuser":     record.AckUser,
		"text":        record.Text,
		"grp":         record.Group,
		"recorded_on": record.RecordedAt,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alarm_history (history_id, alarm_id, name, alarm_type, status, ontime, offtime, acktime, ackuser, text, grp, recorded_on)
		VALUES (@history_id, @alarm_id, @name, @alarm_type, @status, @ontime, @offtime, @acktime, @ackuser, @text, @grp, @recorded_on)
	`, args)
	if err != nil {
		return ErrStoreFailed
	}

	return nil
}

func (s *Storage) QueryHistory(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AlarmHistoryRecord], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var historyID, alarmID, name, alarmType, status string
	var onTime, offTime, ackTime *time.Time
	var ackUser, text, group *string
	var recordedOn time.Time
	var count int64

	query := fmt.Sprintf(`
		SELECT history_id, alarm_id, name, alarm_type, status, ontime, offtime, acktime, ackuser, text, grp, recorded_on, count(*) OVER () AS count
		FROM alarm_history
		%s
		ORDER BY recorded_on DESC
		%s
	`, where, condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.AlarmHistoryRecord]{}, err
	}

	records := make([]types.AlarmHistoryRecord, 0)

	orEmpty := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	_, err = pgx.ForEachRow(rows, []any{&historyID, &alarmID, &name, &alarmType, &status, &onTime, &offTime, &ackTime, &ackUser, &text, &group, &recordedOn, &count}, func() error {
		records = append(records, types.AlarmHistoryRecord{
			ID:         historyID,
			AlarmID:    alarmID,
			Name:       name,
			Category:   types.AlarmCategory(alarmType),
			Status:     types.AlarmStatus(status),
			OnTime:     onTime,
			OffTime:    offTime,
			AckTime:    ackTime,
			AckUser:    orEmpty(ackUser),
			Text:       orEmpty(text),
			Group:      orEmpty(group),
			RecordedAt: recordedOn,
		})

		return nil
	})
	if err != nil {
		return types.Collection[types.AlarmHistoryRecord]{}, err
	}

	return types.Collection[types.AlarmHistoryRecord]{
		Data:       records,
		Count:      uint64(len(records)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) DeleteHistoryBefore(ctx context.Context, ts time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM alarm_history WHERE recorded_on < @before
	`, pgx.NamedArgs{"before": ts.UTC()})
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
