package devices

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

// The lifecycle handlers persist the device configuration carried by
// the event before touching the supervisor, so that Start can recover
// the registrations after a restart.

func NewDeviceCreatedHandler(repo DeviceRepository, svc Supervisor) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		var err error
		ctx, span := tracer.Start(ctx, "device-created")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		message := types.DeviceCreated{}

		err = json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		err = repo.CreateOrUpdateDevice(ctx, message.Device)
		if err != nil {
			log.Error("could not persist device", "device_id", message.Device.ID, "err", err.Error())
			return
		}

		err = svc.Register(ctx, message.Device)
		if err != nil {
			log.Error("could not register device", "device_id", message.Device.ID, "err", err.Error())
			return
		}
	}
}

func NewDeviceUpdatedHandler(repo DeviceRepository, svc Supervisor) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		var err error
		ctx, span := tracer.Start(ctx, "device-updated")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		message := types.DeviceUpdated{}

		err = json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		err = repo.CreateOrUpdateDevice(ctx, message.Device)
		if err != nil {
			log.Error("could not persist device", "device_id", message.Device.ID, "err", err.Error())
			return
		}

		err = svc.Reconfigure(ctx, message.Device)
		if err != nil {
			log.Error("could not reconfigure device", "device_id", message.Device.ID, "err", err.Error())
			return
		}
	}
}

func NewDeviceDeletedHandler(repo DeviceRepository, svc Supervisor) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		var err error
		ctx, span := tracer.Start(ctx, "device-deleted")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		message := types.DeviceDeleted{}

		err = json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		// the stored copy is disabled so a restart does not resurrect
		// the deleted device
		device, err := repo.GetDevice(ctx, message.DeviceID)
		if err == nil {
			device.Enabled = false

			err = repo.CreateOrUpdateDevice(ctx, device)
			if err != nil {
				log.Error("could not persist device", "device_id", message.DeviceID, "err", err.Error())
				return
			}
		} else if !errors.Is(err, storage.ErrNoRows) {
			log.Error("could not load device", "device_id", message.DeviceID, "err", err.Error())
			return
		}

		err = svc.Unregister(ctx, message.DeviceID)
		if err != nil {
			log.Error("could not unregister device", "device_id", message.DeviceID, "err", err.Error())
			return
		}
	}
}
