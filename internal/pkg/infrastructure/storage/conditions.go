package storage

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	AlarmID string
	TagID   string

	Enabled *bool

	From time.Time
	To   time.Time

	offset *int
	limit  *int
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.AlarmID != "" {
		args["alarm_id"] = c.AlarmID
	}
	if c.TagID != "" {
		args["tag_id"] = c.TagID
	}
	if c.Enabled != nil {
		args["enabled"] = *c.Enabled
	}
	if !c.From.IsZero() {
		args["from"] = c.From.UTC()
	}
	if !c.To.IsZero() {
		args["to"] = c.To.UTC()
	}
	if c.offset != nil {
		args["offset"] = *c.offset
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.AlarmID != "" {
		where = append(where, "alarm_id = @alarm_id")
	}
	if c.TagID != "" {
		where = append(where, "tag_id = @tag_id")
	}
	if c.Enabled != nil {
		where = append(where, "enabled = @enabled")
	}
	if !c.From.IsZero() {
		where = append(where, "recorded_on >= @from")
	}
	if !c.To.IsZero() {
		where = append(where, "recorded_on <= @to")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

func (c Condition) OffsetLimit() string {
	offsetLimit := ""

	if c.offset != nil {
		offsetLimit += "OFFSET @offset "
	}
	if c.limit != nil {
		offsetLimit += "LIMIT @limit "
	}

	return offsetLimit
}

func (c Condition) Offset() int {
	if c.offset != nil {
		return *c.offset
	}
	return 0
}

func (c Condition) Limit() int {
	if c.limit != nil {
		return *c.limit
	}
	return 0
}

func WithAlarmID(alarmID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AlarmID = alarmID
		return c
	}
}

func WithTagID(tagID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.TagID = tagID
		return c
	}
}

func WithEnabled(enabled bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Enabled = &enabled
		return c
	}
}

func WithTimeRange(from, to time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.From = from
		c.To = to
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}
