package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/application/alarms"
	"github.com/RaniaNeuss/FM-Backend/internal/pkg/application/devices"
	"github.com/RaniaNeuss/FM-Backend/internal/pkg/application/events"
	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const serviceName string = "fm-runtime"

type flagType int
type flagMap map[flagType]string

const (
	notificationsFile flagType = iota
	checkInterval
	historyRetention

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode
)

func defaultFlags() flagMap {
	return flagMap{
		notificationsFile: "/opt/fm/config/notifications.yaml",
		checkInterval:     "3s",
		historyRetention:  "720h",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "fm",
		dbSSLMode:  "disable",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	var notifications *events.Config

	f, err := os.Open(flags[notificationsFile])
	if err == nil {
		notifications, err = events.LoadConfiguration(f)
		f.Close()
		exitIf(err, logger, "could not parse notifications file")
	} else {
		logger.Info("no notifications file found, cloud event forwarding disabled", "path", flags[notificationsFile])
	}

	interval, err := time.ParseDuration(flags[checkInterval])
	exitIf(err, logger, "invalid check interval")

	retention, err := time.ParseDuration(flags[historyRetention])
	exitIf(err, logger, "invalid history retention")

	s, err := storage.New(ctx, storage.NewConfig(
		flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode],
	))
	exitIf(err, logger, "could not create or connect to database")

	err = s.Initialize(ctx)
	exitIf(err, logger, "could not initialize database")

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, logger))
	exitIf(err, logger, "failed to init messenger")

	supervisor := devices.New(s, messenger)

	alarmSvc := alarms.New(s, messenger,
		alarms.WithCheckInterval(interval),
		alarms.WithHistoryRetention(retention),
		alarms.WithActionHandler(newAlarmAction(supervisor)),
	)

	if notifications != nil {
		sender := events.New(notifications)

		err = messenger.RegisterTopicMessageHandler((&types.AlarmChanged{}).TopicName(), events.NewAlarmChangedHandler(sender))
		exitIf(err, logger, "failed to register alarm notification handler")

		err = messenger.RegisterTopicMessageHandler((&types.DeviceStatusChanged{}).TopicName(), events.NewDeviceStatusChangedHandler(sender))
		exitIf(err, logger, "failed to register device status notification handler")
	}

	err = supervisor.Start(ctx)
	exitIf(err, logger, "failed to start device supervisor")

	err = alarmSvc.Start(ctx)
	exitIf(err, logger, "failed to start alarm service")

	messenger.Start()

	logger.Info("service started", "version", serviceVersion)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	alarmSvc.Stop(ctx)
	supervisor.Stop(ctx)
	messenger.Close()
	s.Close()
}

// newAlarmAction writes an alarm's configured text back to its tag's
// device when an action alarm activates. Tag ids are device scoped as
// <deviceID>.<key>.
func newAlarmAction(supervisor devices.Supervisor) alarms.ActionFunc {
	return func(ctx context.Context, definition types.AlarmDefinition) error {
		deviceID, key, found := strings.Cut(definition.TagID, ".")
		if !found {
			return fmt.Errorf("tag id %s is not device scoped", definition.TagID)
		}

		return supervisor.SetValue(ctx, deviceID, key, definition.SubProperty.Text)
	}
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[notificationsFile] = envOrDef(ctx, "NOTIFICATIONS_FILE", flags[notificationsFile])
	flags[checkInterval] = envOrDef(ctx, "ALARM_CHECK_INTERVAL", flags[checkInterval])
	flags[historyRetention] = envOrDef(ctx, "ALARM_HISTORY_RETENTION", flags[historyRetention])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("notifications", "subscriber notification configuration file", apply(notificationsFile))
	flag.Func("interval", "alarm check interval", apply(checkInterval))
	flag.Func("retention", "alarm history retention", apply(historyRetention))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
