package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetDevices(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.DeviceConfig], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var data json.RawMessage
	var count int64

	query := `
		SELECT data, count(*) OVER () AS count
		FROM devices
	` + where + `
		ORDER BY device_id ASC
	` + condition.OffsetLimit()

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.DeviceConfig]{}, err
	}

	devices := make([]types.DeviceConfig, 0)

	_, err = pgx.ForEachRow(rows, []any{&data, &count}, func() error {
		d := types.DeviceConfig{}
		err := json.Unmarshal(data, &d)
		if err != nil {
			return err
		}

		devices = append(devices, d)

		return nil
	})
	if err != nil {
		return types.Collection[types.DeviceConfig]{}, err
	}

	return types.Collection[types.DeviceConfig]{
		Data:       devices,
		Count:      uint64(len(devices)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) GetDevice(ctx context.Context, deviceID string) (types.DeviceConfig, error) {
	var data json.RawMessage

	err := s.pool.QueryRow(ctx, `
		SELECT data
		FROM devices
		WHERE device_id = @device_id
	`, pgx.NamedArgs{"device_id": deviceID}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DeviceConfig{}, ErrNoRows
		}
		return types.DeviceConfig{}, err
	}

	d := types.DeviceConfig{}
	err = json.Unmarshal(data, &d)
	if err != nil {
		return types.DeviceConfig{}, err
	}

	return d, nil
}

func (s *Storage) CreateOrUpdateDevice(ctx context.Context, device types.DeviceConfig) error {
	if device.ID == "" {
		return ErrNoID
	}

	data, err := json.Marshal(device)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"device_id":   device.ID,
		"device_type": device.Type,
		"enabled":     device.Enabled,
		"polling":     device.PollingMs,
		"data":        string(data),
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO devices (device_id, device_type, enabled, polling, data)
		VALUES (@device_id, @device_type, @enabled, @polling, @data)
		ON CONFLICT (device_id) DO UPDATE SET device_type = EXCLUDED.device_type, enabled = EXCLUDED.enabled,
			polling = EXCLUDED.polling, data = EXCLUDED.data, modified_on = CURRENT_TIMESTAMP
	`, args)
	if err != nil {
		return ErrStoreFailed
	}

	return nil
}
