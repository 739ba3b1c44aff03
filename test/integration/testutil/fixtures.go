package testutil

import (
	"insightery/pkg/model"
	"insightery/pkg/timeofday"
)

type ScheduleBuilder struct {
	schedule *model.Schedule
}

func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{schedule: model.DefaultSchedule()}
}

func (b *ScheduleBuilder) WithActiveDay(day string, slots ...model.Slot) *ScheduleBuilder {
	d := b.schedule.Availability.Day(day)
	d.Active = true
	d.Times = append(d.Times, slots...)
	return b
}

func (b *ScheduleBuilder) WithException(date, start, end string) *ScheduleBuilder {
	b.schedule.Exceptions = append(b.schedule.Exceptions, model.AvailabilityException{
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	return b
}

func (b *ScheduleBuilder) Build() *model.Schedule {
	return b.schedule
}

// HourSlot builds a valid one-hour slot starting at the given time.
func HourSlot(start string, rate float64) model.Slot {
	s := timeofday.MustParse(start)
	return model.Slot{
		Start: s,
		End:   s.AddMinutes(60),
		Rate:  rate,
	}
}
