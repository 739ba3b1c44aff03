// Package editor owns one schedule edit session: the mutable week template
// and exception list, dirty tracking, and the save pipeline. It is the
// in-memory counterpart of the stateless service layer, intended for host
// UIs driving a single insighter's schedule at a time.
package editor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"insightery/internal/availability/reconcile"
	"insightery/internal/availability/validator"
	"insightery/pkg/config"
	apperrors "insightery/pkg/errors"
	"insightery/pkg/logger"
	"insightery/pkg/model"
	"insightery/pkg/sanitizer"
	"insightery/pkg/timeofday"
)

// Store is the external schedule store the session loads from and saves to.
// Both the Mongo repository and the HTTP availability client satisfy it.
type Store interface {
	Load(ctx context.Context, insighterID string) (*model.Schedule, error)
	Save(ctx context.Context, insighterID string, schedule *model.Schedule) error
}

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateDirty   State = "dirty"
)

var (
	ErrNotLoaded       = errors.New("schedule not loaded yet")
	ErrSaveInProgress  = errors.New("a save is already in progress")
	ErrUnknownDay      = errors.New("unknown weekday name")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Options carry the seed values for new slots. Zero values fall back to
// 09:00 and a zero rate.
type Options struct {
	DefaultSlotStart timeofday.TimeOfDay
	DefaultSlotRate  float64
}

// OptionsFromConfig derives the slot seed values from service configuration.
// The configured start is validated at load time, so a parse failure here
// just falls back to the zero-value default.
func OptionsFromConfig(cfg *config.Config) Options {
	start, err := timeofday.Parse(cfg.DefaultSlotStart)
	if err != nil {
		return Options{DefaultSlotRate: cfg.DefaultSlotRate}
	}
	return Options{
		DefaultSlotStart: start,
		DefaultSlotRate:  cfg.DefaultSlotRate,
	}
}

type Editor struct {
	sessionID   string
	insighterID string
	store       Store
	validator   *validator.AvailabilityValidator
	log         *logger.Logger
	opts        Options

	state    State
	saving   bool
	schedule *model.Schedule
	onChange func()
}

func NewEditor(insighterID string, store Store, v *validator.AvailabilityValidator, log *logger.Logger, opts Options) *Editor {
	if (opts.DefaultSlotStart == timeofday.TimeOfDay{}) {
		opts.DefaultSlotStart = timeofday.TimeOfDay{Hour: 9}
	}
	return &Editor{
		sessionID:   uuid.New().String(),
		insighterID: insighterID,
		store:       store,
		validator:   v,
		log:         log,
		opts:        opts,
		state:       StateLoading,
		schedule:    model.DefaultSchedule(),
	}
}

func (e *Editor) SessionID() string { return e.sessionID }

func (e *Editor) State() State { return e.state }

// IsDirty reports unsaved mutations. Hosts use it to gate navigation away
// from the session; the interception itself is theirs.
func (e *Editor) IsDirty() bool { return e.state == StateDirty }

func (e *Editor) Saving() bool { return e.saving }

// Schedule exposes the live session state for rendering. Callers must route
// mutations through the editor methods, not the returned pointer.
func (e *Editor) Schedule() *model.Schedule { return e.schedule }

// OnChange registers a callback fired after every applied mutation and state
// transition.
func (e *Editor) OnChange(fn func()) { e.onChange = fn }

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Editor) markDirty() {
	e.state = StateDirty
	e.notify()
}

// Load fetches the schedule once at session start. On store failure the
// session still becomes usable with the default empty week, and the returned
// error is retryable so the host can offer a reload.
func (e *Editor) Load(ctx context.Context) error {
	schedule, err := e.store.Load(ctx, e.insighterID)
	if err != nil {
		e.log.Error("Failed to load schedule, starting from empty template",
			"session_id", e.sessionID,
			"insighter_id", e.insighterID,
			"error", err,
		)
		e.schedule = model.DefaultSchedule()
		e.state = StateReady
		e.notify()
		return apperrors.StoreRead(err)
	}

	schedule.Normalize()
	e.schedule = schedule
	e.state = StateReady
	e.notify()
	return nil
}

func (e *Editor) day(name string) (*model.DayAvailability, error) {
	if e.state == StateLoading {
		return nil, ErrNotLoaded
	}
	day := e.schedule.Availability.Day(name)
	if day == nil {
		return nil, ErrUnknownDay
	}
	return day, nil
}

// ToggleDay flips a day's active flag. Deactivating clears its slots;
// activating an empty day seeds one default slot.
func (e *Editor) ToggleDay(name string) error {
	day, err := e.day(name)
	if err != nil {
		return err
	}

	day.Active = !day.Active
	if !day.Active {
		day.Times = []model.Slot{}
	} else if len(day.Times) == 0 {
		day.Times = []model.Slot{e.defaultSlot()}
	}

	e.markDirty()
	return nil
}

func (e *Editor) defaultSlot() model.Slot {
	start := e.opts.DefaultSlotStart
	return model.Slot{
		Start: start,
		End:   start.AddMinutes(validator.SlotDurationMinutes),
		Rate:  e.opts.DefaultSlotRate,
	}
}

// AddSlot appends a slot chained from the day's last slot: start at the
// previous end, same rate. The first slot of a day uses the defaults.
func (e *Editor) AddSlot(name string) (*model.Slot, error) {
	day, err := e.day(name)
	if err != nil {
		return nil, err
	}

	slot := e.defaultSlot()
	if n := len(day.Times); n > 0 {
		prev := day.Times[n-1]
		slot.Start = prev.End
		slot.End = prev.End.AddMinutes(validator.SlotDurationMinutes)
		slot.Rate = prev.Rate
	}

	day.Times = append(day.Times, slot)
	e.markDirty()
	return &day.Times[len(day.Times)-1], nil
}

func (e *Editor) slot(name string, index int) (*model.Slot, error) {
	day, err := e.day(name)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(day.Times) {
		return nil, ErrIndexOutOfRange
	}
	return &day.Times[index], nil
}

func (e *Editor) RemoveSlot(name string, index int) error {
	day, err := e.day(name)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(day.Times) {
		return ErrIndexOutOfRange
	}

	day.Times = append(day.Times[:index], day.Times[index+1:]...)
	e.markDirty()
	return nil
}

// SetSlotStart parses and applies a new start, then auto-advances the end:
// the end keeps its hour but takes the start's minute; if that leaves it at
// or before the start, the end becomes the start plus one hour. The slot
// stays self-consistent without the user touching both fields.
func (e *Editor) SetSlotStart(name string, index int, value string) error {
	slot, err := e.slot(name, index)
	if err != nil {
		return err
	}

	start, err := timeofday.Parse(value)
	if err != nil {
		return err
	}

	end := timeofday.TimeOfDay{Hour: slot.End.Hour, Minute: start.Minute}
	if end.Minutes() <= start.Minutes() {
		end = start.AddMinutes(validator.SlotDurationMinutes)
	}

	slot.Start = start
	slot.End = end
	e.markDirty()
	return nil
}

func (e *Editor) SetSlotEnd(name string, index int, value string) error {
	slot, err := e.slot(name, index)
	if err != nil {
		return err
	}

	end, err := timeofday.Parse(value)
	if err != nil {
		return err
	}

	slot.End = end
	e.markDirty()
	return nil
}

func (e *Editor) SetSlotRate(name string, index int, rate float64) error {
	slot, err := e.slot(name, index)
	if err != nil {
		return err
	}

	slot.Rate = rate
	e.markDirty()
	return nil
}

// AddException appends a one-off dated slot. Empty fields are allowed so the
// host can build the entry incrementally; incomplete entries are ignored by
// duplicate detection and validated only once complete.
func (e *Editor) AddException(date, start, end string, rate float64) (*model.AvailabilityException, error) {
	if e.state == StateLoading {
		return nil, ErrNotLoaded
	}

	exc := model.AvailabilityException{
		Date:      sanitizer.NormalizeDate(date),
		StartTime: start,
		EndTime:   end,
		Rate:      rate,
	}
	e.schedule.Exceptions = append(e.schedule.Exceptions, exc)
	e.markDirty()
	return &e.schedule.Exceptions[len(e.schedule.Exceptions)-1], nil
}

func (e *Editor) exception(index int) (*model.AvailabilityException, error) {
	if e.state == StateLoading {
		return nil, ErrNotLoaded
	}
	if index < 0 || index >= len(e.schedule.Exceptions) {
		return nil, ErrIndexOutOfRange
	}
	return &e.schedule.Exceptions[index], nil
}

func (e *Editor) RemoveException(index int) error {
	if _, err := e.exception(index); err != nil {
		return err
	}

	e.schedule.Exceptions = append(e.schedule.Exceptions[:index], e.schedule.Exceptions[index+1:]...)
	e.markDirty()
	return nil
}

func (e *Editor) SetExceptionDate(index int, date string) error {
	exc, err := e.exception(index)
	if err != nil {
		return err
	}
	exc.Date = sanitizer.NormalizeDate(date)
	e.markDirty()
	return nil
}

func (e *Editor) SetExceptionStart(index int, value string) error {
	exc, err := e.exception(index)
	if err != nil {
		return err
	}
	exc.StartTime = value
	e.markDirty()
	return nil
}

func (e *Editor) SetExceptionEnd(index int, value string) error {
	exc, err := e.exception(index)
	if err != nil {
		return err
	}
	exc.EndTime = value
	e.markDirty()
	return nil
}

func (e *Editor) SetExceptionRate(index int, rate float64) error {
	exc, err := e.exception(index)
	if err != nil {
		return err
	}
	exc.Rate = rate
	e.markDirty()
	return nil
}

// DuplicateExceptions returns the indexes flagged as later duplicates, for
// live display. Nothing is removed until save.
func (e *Editor) DuplicateExceptions() []int {
	return reconcile.Duplicates(e.schedule.Exceptions)
}

// Save reconciles duplicate exceptions, validates the full state, and writes
// through the store. Duplicates are removed automatically rather than blocking
// the save. Validation failure keeps the session Dirty with the field errors
// and never touches the store. Store failure keeps the session Dirty with a
// retryable error and the state unchanged, so the user can resave. A save
// already in flight rejects the new attempt.
func (e *Editor) Save(ctx context.Context) error {
	if e.state == StateLoading {
		return ErrNotLoaded
	}
	if e.saving {
		return ErrSaveInProgress
	}
	e.saving = true
	defer func() { e.saving = false }()

	reconciled, removed := reconcile.Reconcile(e.schedule.Exceptions)
	if removed > 0 {
		e.log.Info("Removed duplicate exceptions before save",
			"session_id", e.sessionID,
			"insighter_id", e.insighterID,
			"removed", removed,
		)
		e.schedule.Exceptions = reconciled
		e.notify()
	}

	if err := e.validator.ValidateSchedule(e.schedule); err != nil {
		e.log.Warn("Schedule validation failed",
			"session_id", e.sessionID,
			"insighter_id", e.insighterID,
			"error", err,
		)
		return apperrors.Validation("Schedule validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := e.store.Save(ctx, e.insighterID, e.schedule); err != nil {
		e.log.Error("Failed to save schedule",
			"session_id", e.sessionID,
			"insighter_id", e.insighterID,
			"error", err,
		)
		return apperrors.StoreWrite(err)
	}

	e.state = StateReady
	e.notify()
	return nil
}
