package alarms

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

func NewTagValueChangedHandler(svc AlarmService) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		var err error
		ctx, span := tracer.Start(ctx, "tag-value-changed")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		message := types.TagValueChanged{}

		err = json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		if message.Tag.ID == "" {
			log.Warn("ignoring tag value change without tag id")
			return
		}

		svc.ProcessTagValue(ctx, message.Tag)
	}
}
