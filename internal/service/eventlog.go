package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cnc_simulator/internal/models"
	"cnc_simulator/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var knownEventTypes = map[string]bool{
	models.EventStart:          true,
	models.EventComplete:       true,
	models.EventAlarm:          true,
	models.EventAlarmCleared:   true,
	models.EventEmergencyStop:  true,
	models.EventToolChange:     true,
	models.EventCountersReset:  true,
	models.EventOverrideChange: true,
	models.EventStateChange:    true,
}

func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{
		From: toUTC(f.From),
		To:   toUTC(f.To),
		Type: strings.ToUpper(strings.TrimSpace(f.Type)),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if out.Type != "" && !knownEventTypes[out.Type] {
		return LogFilter{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, f.Type)
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.MachineEvent, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, nf.From, nf.To, nf.Type)
}
