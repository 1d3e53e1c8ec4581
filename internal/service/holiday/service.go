package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/google/uuid"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	now         func() time.Time
}

func NewHolidayService(holidayRepo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		holidayRepo: holidayRepo,
		now:         time.Now,
	}
}

func mapHolidayToResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:        h.ID,
		Date:      calendar.Format(h.Date),
		Name:      h.Name,
		Recurring: h.Recurring,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
		UpdatedAt: h.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	now := s.now().UTC()
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		ID:        id.String(),
		Date:      calendar.Truncate(req.ParsedDate),
		Name:      req.Name,
		Recurring: req.Recurring,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.HolidayResponse{}, err
		}
		slog.Error("Failed to create holiday", "error", err)
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return mapHolidayToResponse(created), nil
}

// GetHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetHoliday(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return mapHolidayToResponse(h), nil
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, year *int) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, mapHolidayToResponse(h))
	}
	return responses, nil
}

// UpdateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) UpdateHoliday(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	existing, err := s.holidayRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to get holiday: %w", err)
	}

	if req.Date != nil {
		date, err := calendar.ParseDate(*req.Date)
		if err != nil {
			return holiday.HolidayResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		existing.Date = date
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Recurring != nil {
		existing.Recurring = *req.Recurring
	}
	existing.UpdatedAt = s.now().UTC()

	updated, err := s.holidayRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) || errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.HolidayResponse{}, err
		}
		slog.Error("Failed to update holiday", "error", err, "holiday_id", req.ID)
		return holiday.HolidayResponse{}, fmt.Errorf("failed to update holiday: %w", err)
	}

	return mapHolidayToResponse(updated), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// Upcoming implements holiday.HolidayService.
func (s *HolidayServiceImpl) Upcoming(ctx context.Context, from time.Time, days int) ([]holiday.NextOccurrence, error) {
	if days <= 0 {
		return []holiday.NextOccurrence{}, nil
	}

	from = calendar.Truncate(from)
	holidays, err := s.holidayRepo.ListForRange(ctx, from, from.AddDate(0, 0, days-1))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holiday.Upcoming(holidays, from, days), nil
}
