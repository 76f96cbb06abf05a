package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func testDefinition(ackMode types.AckMode) types.AlarmDefinition {
	return types.AlarmDefinition{
		ID:       "alarm-01",
		Name:     "temperature too high",
		Category: types.AlarmHigh,
		Enabled:  true,
		TagID:    "dev-01.temperature",
		SubProperty: types.AlarmSubProperty{
			Min:     80,
			Max:     100,
			AckMode: ackMode,
			Text:    "check the boiler",
			Group:   "boilers",
		},
	}
}

func testRepository(definition types.AlarmDefinition, snapshot types.AlarmSnapshot, tagValue string) *AlarmRepositoryMock {
	return &AlarmRepositoryMock{
		GetAlarmsFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error) {
			return types.Collection[storage.PersistedAlarm]{
				Data: []storage.PersistedAlarm{{Definition: definition, Snapshot: snapshot}},
			}, nil
		},
		GetTagFunc: func(ctx context.Context, tagID string) (types.TagValue, error) {
			return types.TagValue{ID: tagID, Value: tagValue, UpdatedAt: time.Now()}, nil
		},
		UpsertAlarmStateFunc: func(ctx context.Context, snapshot types.AlarmSnapshot) error {
			return nil
		},
		AppendHistoryFunc: func(ctx context.Context, record types.AlarmHistoryRecord) error {
			return nil
		},
		DeleteAllAlarmsFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

func testMessenger() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			return nil
		},
	}
}

func TestTransitionIsPersistedRecordedAndPublished(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	is.Equal(1, len(r.UpsertAlarmStateCalls()))
	is.Equal(types.AlarmStatusOn, r.UpsertAlarmStateCalls()[0].Snapshot.Status)

	is.Equal(1, len(r.AppendHistoryCalls()))
	record := r.AppendHistoryCalls()[0].Record
	is.Equal(types.AlarmStatusOn, record.Status)
	is.Equal("check the boiler", record.Text)
	is.True(record.ID != "")

	is.Equal(1, len(m.PublishOnTopicCalls()))
	is.Equal("alarms.alarmChanged", m.PublishOnTopicCalls()[0].Message.TopicName())
}

func TestNoTransitionMeansNoWrites(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "50")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	is.Equal(0, len(r.UpsertAlarmStateCalls()))
	is.Equal(0, len(r.AppendHistoryCalls()))
	is.Equal(0, len(m.PublishOnTopicCalls()))
}

func TestFullyClearedAlarmIsResetBeforePersisting(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	onTime := time.Now().UTC().Add(-time.Minute)
	r := testRepository(
		testDefinition(types.AckModeFloat),
		types.AlarmSnapshot{AlarmID: "alarm-01", Status: types.AlarmStatusOn, OnTime: &onTime},
		"50",
	)
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	// history captures the transition to off, persisted state is reset
	is.Equal(types.AlarmStatusOff, r.AppendHistoryCalls()[0].Record.Status)
	is.Equal(types.AlarmStatusVoid, r.UpsertAlarmStateCalls()[0].Snapshot.Status)
	is.True(r.UpsertAlarmStateCalls()[0].Snapshot.OnTime == nil)
}

func TestPersistenceErrorAbortsTick(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	r.AppendHistoryFunc = func(ctx context.Context, record types.AlarmHistoryRecord) error {
		return errors.New("connection lost")
	}
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.True(err != nil)
	is.Equal(0, len(r.UpsertAlarmStateCalls()))
}

func TestAcknowledgeActiveAlarm(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	onTime := time.Now().UTC().Add(-time.Minute)
	r := testRepository(
		testDefinition(types.AckModeActive),
		types.AlarmSnapshot{AlarmID: "alarm-01", Status: types.AlarmStatusOn, OnTime: &onTime},
		"85",
	)
	m := testMessenger()

	svc := New(r, m).(*svc)

	acked, err := svc.Acknowledge(ctx, "alarm-01", "operator")
	is.NoErr(err)
	is.True(acked)

	is.Equal(1, len(r.UpsertAlarmStateCalls()))
	is.Equal("operator", r.UpsertAlarmStateCalls()[0].Snapshot.AckUser)
	is.Equal(1, len(r.AppendHistoryCalls()))
}

func TestAcknowledgeIsRejectedWhenNotRequired(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{AlarmID: "alarm-01"}, "50")
	m := testMessenger()

	svc := New(r, m).(*svc)

	acked, err := svc.Acknowledge(ctx, "alarm-01", "operator")
	is.NoErr(err)
	is.True(!acked)
	is.Equal(0, len(r.UpsertAlarmStateCalls()))
}

func TestAcknowledgeUnknownAlarm(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	r.GetAlarmsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error) {
		return types.Collection[storage.PersistedAlarm]{}, nil
	}
	m := testMessenger()

	svc := New(r, m).(*svc)

	_, err := svc.Acknowledge(ctx, "nosuchalarm", "operator")
	is.True(errors.Is(err, ErrAlarmNotFound))
}

func TestClearAllWipesStateAndPublishes(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	err = svc.ClearAll(ctx)
	is.NoErr(err)

	is.Equal(1, len(r.DeleteAllAlarmsCalls()))
	is.Equal(0, len(svc.instances))

	published := m.PublishOnTopicCalls()
	is.Equal("alarms.cleared", published[len(published)-1].Message.TopicName())
}

func TestClearAllWaitsForInFlightEvaluation(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	// simulate an evaluation holding the lock
	svc.processMu.Lock()

	// ticks give way instead of queueing behind it
	svc.tick(ctx)
	is.Equal(1, len(r.GetAlarmsCalls()))

	done := make(chan struct{})
	go func() {
		svc.ClearAll(ctx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("ClearAll finished while an evaluation was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	is.Equal(0, len(r.DeleteAllAlarmsCalls()))

	svc.processMu.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ClearAll never finished")
	}

	is.Equal(1, len(r.DeleteAllAlarmsCalls()))
	is.Equal(0, len(svc.instances))
}

func TestRetiredAlarmPublishesTransitionNotResetState(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	onTime := time.Now().UTC().Add(-time.Minute)
	r := testRepository(
		testDefinition(types.AckModeFloat),
		types.AlarmSnapshot{AlarmID: "alarm-01", Status: types.AlarmStatusOn, OnTime: &onTime},
		"50",
	)
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	is.Equal(1, len(m.PublishOnTopicCalls()))
	published, ok := m.PublishOnTopicCalls()[0].Message.(*types.AlarmChanged)
	is.True(ok)

	// status and snapshot agree on the off transition even though the
	// persisted state was reset afterwards
	is.Equal(types.AlarmStatusOff, published.Status)
	is.Equal(types.AlarmStatusOff, published.Snapshot.Status)
	is.True(published.Snapshot.OffTime != nil)
}

func TestProcessTagValueEvaluatesBoundAlarms(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeFloat), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)
	is.Equal(types.AlarmStatusOn, r.UpsertAlarmStateCalls()[0].Snapshot.Status)

	svc.ProcessTagValue(ctx, types.TagValue{ID: "dev-01.temperature", Value: "50", UpdatedAt: time.Now()})

	is.Equal(2, len(r.UpsertAlarmStateCalls()))
	is.Equal(types.AlarmStatusOff, r.AppendHistoryCalls()[1].Record.Status)
}

func TestProcessTagValueIgnoresUnboundTags(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeFloat), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	r.GetAlarmsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error) {
		c := &storage.Condition{}
		for _, f := range conditions {
			f(c)
		}
		if c.NamedArgs()["tag_id"] != "dev-01.temperature" {
			return types.Collection[storage.PersistedAlarm]{}, nil
		}
		return types.Collection[storage.PersistedAlarm]{
			Data: []storage.PersistedAlarm{{Definition: testDefinition(types.AckModeFloat)}},
		}, nil
	}

	calls := len(r.UpsertAlarmStateCalls())
	svc.ProcessTagValue(ctx, types.TagValue{ID: "dev-02.pressure", Value: "85", UpdatedAt: time.Now()})
	is.Equal(calls, len(r.UpsertAlarmStateCalls()))
}

func TestProcessTagValueDiscoversAlarmsCreatedSinceLastTick(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeFloat), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	var queriedTag string
	r.GetAlarmsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error) {
		c := &storage.Condition{}
		for _, f := range conditions {
			f(c)
		}
		queriedTag, _ = c.NamedArgs()["tag_id"].(string)
		return types.Collection[storage.PersistedAlarm]{
			Data: []storage.PersistedAlarm{{Definition: testDefinition(types.AckModeFloat)}},
		}, nil
	}

	svc := New(r, m).(*svc)

	// no tick has run yet, so the instance table is empty
	svc.ProcessTagValue(ctx, types.TagValue{ID: "dev-01.temperature", Value: "85", UpdatedAt: time.Now()})

	is.Equal("dev-01.temperature", queriedTag)
	is.Equal(1, len(svc.instances))
	is.Equal(1, len(r.UpsertAlarmStateCalls()))
	is.Equal(types.AlarmStatusOn, r.UpsertAlarmStateCalls()[0].Snapshot.Status)
}

func TestTagValueChangedHandler(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository(testDefinition(types.AckModeFloat), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.TagValueChanged{
				DeviceID:  "dev-01",
				Tag:       types.TagValue{ID: "dev-01.temperature", Value: "50", UpdatedAt: time.Now()},
				Timestamp: time.Now(),
			})
			return b
		},
	}

	handler := NewTagValueChangedHandler(svc)
	handler(ctx, msg, log)

	is.Equal(2, len(r.UpsertAlarmStateCalls()))
	is.Equal(types.AlarmStatusOff, r.AppendHistoryCalls()[1].Record.Status)
}

func TestDisabledAlarmsAreDropped(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository(testDefinition(types.AckModeActive), types.AlarmSnapshot{}, "85")
	m := testMessenger()

	svc := New(r, m).(*svc)

	err := svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)
	is.Equal(1, len(svc.instances))

	r.GetAlarmsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error) {
		return types.Collection[storage.PersistedAlarm]{}, nil
	}

	err = svc.processAll(ctx, time.Now().UTC())
	is.NoErr(err)
	is.Equal(0, len(svc.instances))
}
