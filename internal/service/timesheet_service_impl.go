package service

import (
	"context"
	"fmt"

	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/domain"
)

type timesheetService struct {
	client api.Client
}

func NewTimesheetService(client api.Client) TimesheetService {
	return &timesheetService{client: client}
}

func (s *timesheetService) List(ctx context.Context, userID int64) ([]*domain.Timesheet, error) {
	sheets, err := s.client.ListTimesheets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading timesheets: %w", err)
	}
	return sheets, nil
}

func (s *timesheetService) Get(ctx context.Context, id int64) (*domain.Timesheet, error) {
	ts, err := s.client.GetTimesheet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading timesheet %d: %w", id, err)
	}
	return ts, nil
}

func (s *timesheetService) Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	created, err := s.client.CreateTimesheet(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("creating timesheet: %w", err)
	}
	return created, nil
}

func (s *timesheetService) Update(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	updated, err := s.client.UpdateTimesheet(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("saving timesheet %d: %w", ts.ID, err)
	}
	return updated, nil
}

func (s *timesheetService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteTimesheet(ctx, id); err != nil {
		return fmt.Errorf("deleting timesheet %d: %w", id, err)
	}
	return nil
}
