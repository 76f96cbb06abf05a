package alarms

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fm-backend/alarms")

var ErrAlarmNotFound = errors.New("alarm not found")

const (
	DefaultCheckInterval    = 3 * time.Second
	DefaultHistoryRetention = 30 * 24 * time.Hour
)

//go:generate moq -rm -out alarmrepository_mock.go . AlarmRepository
type AlarmRepository interface {
	GetAlarms(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[storage.PersistedAlarm], error)
	GetTag(ctx context.Context, tagID string) (types.TagValue, error)
	UpsertAlarmState(ctx context.Context, snapshot types.AlarmSnapshot) error
	DeleteAllAlarms(ctx context.Context) error
	AppendHistory(ctx context.Context, record types.AlarmHistoryRecord) error
	QueryHistory(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlarmHistoryRecord], error)
	DeleteHistoryBefore(ctx context.Context, ts time.Time) (int64, error)
}

// ActionFunc runs the side effect of an action category alarm when it
// activates.
type ActionFunc func(ctx context.Context, definition types.AlarmDefinition) error

type AlarmService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)

	Acknowledge(ctx context.Context, alarmID, user string) (bool, error)
	ClearAll(ctx context.Context) error
	History(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlarmHistoryRecord], error)

	ProcessTagValue(ctx context.Context, tag types.TagValue)
}

type Option func(*svc)

func WithCheckInterval(d time.Duration) Option {
	return func(s *svc) {
		s.checkInterval = d
	}
}

func WithHistoryRetention(d time.Duration) Option {
	return func(s *svc) {
		s.retention = d
	}
}

func WithActionHandler(fn ActionFunc) Option {
	return func(s *svc) {
		s.action = fn
	}
}

func New(storage AlarmRepository, msgCtx messaging.MsgContext, opts ...Option) AlarmService {
	s := &svc{
		storage:       storage,
		msgCtx:        msgCtx,
		checkInterval: DefaultCheckInterval,
		retention:     DefaultHistoryRetention,
		instances:     map[string]*Alarm{},
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type svc struct {
	storage AlarmRepository
	msgCtx  messaging.MsgContext

	checkInterval time.Duration
	retention     time.Duration
	action        ActionFunc

	// processMu serializes periodic ticks, the tag change fast path,
	// acknowledgments and clears. Ticks skip when it is held.
	processMu sync.Mutex
	instances map[string]*Alarm

	stop chan struct{}
	done chan struct{}
}

// Start subscribes to tag value changes and begins the periodic check
// loop and the hourly history cleanup.
func (s *svc) Start(ctx context.Context) error {
	err := s.msgCtx.RegisterTopicMessageHandler((&types.TagValueChanged{}).TopicName(), NewTagValueChangedHandler(s))
	if err != nil {
		return fmt.Errorf("could not register tag value handler: %w", err)
	}

	go s.run(ctx)

	return nil
}

// Stop terminates the check loop and waits for it to drain.
func (s *svc) Stop(ctx context.Context) {
	close(s.stop)
	<-s.done
}

func (s *svc) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick(ctx)
		case <-cleanup.C:
			s.cleanupHistory(ctx)
		}
	}
}

func (s *svc) tick(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	if !s.processMu.TryLock() {
		log.Debug("previous alarm check still running, skipping tick")
		return
	}
	defer s.processMu.Unlock()

	err := s.processAll(ctx, time.Now().UTC())
	if err != nil {
		log.Error("alarm check failed", "err", err.Error())
	}
}

// processAll reloads the enabled definitions, syncs the in-memory
// instances and evaluates every one against its tag. Any persistence
// error aborts the tick so that state and history never diverge.
func (s *svc) processAll(ctx context.Context, now time.Time) error {
	collection, err := s.storage.GetAlarms(ctx, storage.WithEnabled(true))
	if err != nil {
		return fmt.Errorf("could not load alarms: %w", err)
	}

	seen := map[string]struct{}{}

	for _, persisted := range collection.Data {
		seen[persisted.Definition.ID] = struct{}{}

		a, exists := s.instances[persisted.Definition.ID]
		if !exists {
			a = NewAlarm(persisted.Definition, persisted.Snapshot)
			s.instances[persisted.Definition.ID] = a
		} else {
			a.Definition = persisted.Definition
		}
	}

	for id := range s.instances {
		if _, ok := seen[id]; !ok {
			delete(s.instances, id)
		}
	}

	log := logging.GetFromContext(ctx)

	for _, persisted := range collection.Data {
		a := s.instances[persisted.Definition.ID]

		tag, err := s.storage.GetTag(ctx, a.Definition.TagID)
		if err != nil {
			if errors.Is(err, storage.ErrNoRows) {
				continue
			}
			return fmt.Errorf("could not read tag %s: %w", a.Definition.TagID, err)
		}

		value, ok := tag.Float()
		if !ok {
			log.Debug("tag value is not numeric", "tag_id", tag.ID, "value", tag.Value)
			continue
		}

		err = s.evaluate(ctx, a, now, value)
		if err != nil {
			return err
		}
	}

	return nil
}

// evaluate runs one alarm against one reading and persists, records and
// publishes any resulting transition. Callers hold processMu.
func (s *svc) evaluate(ctx context.Context, a *Alarm, now time.Time, value float64) error {
	transitioned := a.Evaluate(now, value)
	if !transitioned {
		return nil
	}

	snapshot := a.Snapshot()
	sub := a.Definition.SubProperty

	err := s.storage.AppendHistory(ctx, types.AlarmHistoryRecord{
		ID:         uuid.NewString(),
		AlarmID:    a.Definition.ID,
		Name:       a.Definition.Name,
		Category:   a.Definition.Category,
		Status:     snapshot.Status,
		OnTime:     snapshot.OnTime,
		OffTime:    snapshot.OffTime,
		AckTime:    snapshot.AckTime,
		AckUser:    snapshot.AckUser,
		Text:       sub.Text,
		Group:      sub.Group,
		RecordedAt: now,
	})
	if err != nil {
		return fmt.Errorf("could not append alarm history: %w", err)
	}

	if a.PendingRemoval() {
		a.Reset()
	}

	err = s.storage.UpsertAlarmState(ctx, a.Snapshot())
	if err != nil {
		return fmt.Errorf("could not persist alarm state: %w", err)
	}

	// the published event describes the transition itself, even when
	// the persisted state was just reset
	err = s.msgCtx.PublishOnTopic(ctx, &types.AlarmChanged{
		AlarmID:   a.Definition.ID,
		Name:      a.Definition.Name,
		Category:  a.Definition.Category,
		Status:    snapshot.Status,
		Snapshot:  snapshot,
		Text:      sub.Text,
		Group:     sub.Group,
		Timestamp: now,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("could not publish alarm change", "alarm_id", a.Definition.ID, "err", err.Error())
	}

	if snapshot.Status == types.AlarmStatusOn && a.Definition.Category == types.AlarmAction && s.action != nil {
		err := s.action(ctx, a.Definition)
		if err != nil {
			logging.GetFromContext(ctx).Error("alarm action failed", "alarm_id", a.Definition.ID, "err", err.Error())
		}
	}

	return nil
}

// ProcessTagValue evaluates the alarms bound to a tag as soon as its
// value changes, without waiting for the next tick. When a tick is in
// flight the change is left for it to pick up.
func (s *svc) ProcessTagValue(ctx context.Context, tag types.TagValue) {
	if !s.processMu.TryLock() {
		return
	}
	defer s.processMu.Unlock()

	value, ok := tag.Float()
	if !ok {
		return
	}

	log := logging.GetFromContext(ctx)
	now := time.Now().UTC()

	matched := false

	for _, a := range s.instances {
		if a.Definition.TagID != tag.ID {
			continue
		}

		matched = true

		err := s.evaluate(ctx, a, now, value)
		if err != nil {
			log.Error("alarm evaluation failed", "alarm_id", a.Definition.ID, "err", err.Error())
		}
	}

	if matched {
		return
	}

	// definitions created since the last tick are not in memory yet,
	// so look them up by tag before dropping the change
	collection, err := s.storage.GetAlarms(ctx, storage.WithTagID(tag.ID), storage.WithEnabled(true))
	if err != nil {
		log.Error("could not load alarms for tag", "tag_id", tag.ID, "err", err.Error())
		return
	}

	for _, persisted := range collection.Data {
		if _, exists := s.instances[persisted.Definition.ID]; exists {
			continue
		}

		a := NewAlarm(persisted.Definition, persisted.Snapshot)
		s.instances[persisted.Definition.ID] = a

		err := s.evaluate(ctx, a, now, value)
		if err != nil {
			log.Error("alarm evaluation failed", "alarm_id", a.Definition.ID, "err", err.Error())
		}
	}
}

// Acknowledge records a user acknowledgment on an alarm. It returns
// false when the alarm does not currently require acknowledgment or was
// already acknowledged.
func (s *svc) Acknowledge(ctx context.Context, alarmID, user string) (bool, error) {
	s.processMu.Lock()
	defer s.processMu.Unlock()

	a, exists := s.instances[alarmID]
	if !exists {
		collection, err := s.storage.GetAlarms(ctx, storage.WithAlarmID(alarmID))
		if err != nil {
			return false, err
		}
		if len(collection.Data) == 0 {
			return false, ErrAlarmNotFound
		}

		a = NewAlarm(collection.Data[0].Definition, collection.Data[0].Snapshot)
		s.instances[alarmID] = a
	}

	if a.AckRequirement() != AckRequired {
		return false, nil
	}

	now := time.Now().UTC()

	if !a.Acknowledge(now, user) {
		return false, nil
	}

	snapshot := a.Snapshot()
	sub := a.Definition.SubProperty

	err := s.storage.UpsertAlarmState(ctx, snapshot)
	if err != nil {
		return false, fmt.Errorf("could not persist alarm state: %w", err)
	}

	err = s.storage.AppendHistory(ctx, types.AlarmHistoryRecord{
		ID:         uuid.NewString(),
		AlarmID:    a.Definition.ID,
		Name:       a.Definition.Name,
		Category:   a.Definition.Category,
		Status:     snapshot.Status,
		OnTime:     snapshot.OnTime,
		OffTime:    snapshot.OffTime,
		AckTime:    snapshot.AckTime,
		AckUser:    snapshot.AckUser,
		Text:       sub.Text,
		Group:      sub.Group,
		RecordedAt: now,
	})
	if err != nil {
		return false, fmt.Errorf("could not append alarm history: %w", err)
	}

	err = s.msgCtx.PublishOnTopic(ctx, &types.AlarmChanged{
		AlarmID:   a.Definition.ID,
		Name:      a.Definition.Name,
		Category:  a.Definition.Category,
		Status:    snapshot.Status,
		Snapshot:  snapshot,
		Text:      sub.Text,
		Group:     sub.Group,
		Timestamp: now,
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("could not publish alarm change", "alarm_id", alarmID, "err", err.Error())
	}

	return true, nil
}

// ClearAll wipes every alarm instance, its persisted state and its
// history. It waits for any in-flight evaluation to finish first.
func (s *svc) ClearAll(ctx context.Context) error {
	s.processMu.Lock()
	defer s.processMu.Unlock()

	s.instances = map[string]*Alarm{}

	err := s.storage.DeleteAllAlarms(ctx)
	if err != nil {
		return err
	}

	err = s.msgCtx.PublishOnTopic(ctx, &types.AlarmsCleared{Timestamp: time.Now().UTC()})
	if err != nil {
		logging.GetFromContext(ctx).Error("could not publish alarms cleared", "err", err.Error())
	}

	return nil
}

func (s *svc) History(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlarmHistoryRecord], error) {
	return s.storage.QueryHistory(ctx, conditions...)
}

func (s *svc) cleanupHistory(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	deleted, err := s.storage.DeleteHistoryBefore(ctx, time.Now().UTC().Add(-s.retention))
	if err != nil {
		log.Error("could not clean up alarm history", "err", err.Error())
		return
	}

	if deleted > 0 {
		log.Info("cleaned up alarm history", "deleted", deleted)
	}
}
