package usecase

import (
	"context"
	"errors"
	"testing"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/internal/dto/request"
	"blinddate-booking/internal/negotiation"

	"go.uber.org/zap"
)

func TestGetVenues_ForwardsFilters(t *testing.T) {
	var gotCity *string
	var gotActiveOnly bool
	venueRepo := &venueRepoMock{
		findAllFn: func(ctx context.Context, limit, offset int, cityFilter *string, activeOnly bool) ([]*entity.Venue, error) {
			gotCity, gotActiveOnly = cityFilter, activeOnly
			return []*entity.Venue{
				{ID: 1, Name: "Cafe Aurora", City: "Jakarta", IsActive: true},
				{ID: 2, Name: "Warung Kopi", City: "Jakarta", IsActive: true},
			}, nil
		},
		countAllFn: func(ctx context.Context, cityFilter *string, activeOnly bool) (int64, error) {
			return 2, nil
		},
	}
	svc := NewVenueService(testRepos(nil, venueRepo, nil), zap.NewNop())

	city := "Jakarta"
	resp, err := svc.GetVenues(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10}, &city, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotCity == nil || *gotCity != "Jakarta" || !gotActiveOnly {
		t.Fatal("expected city filter and active-only flag forwarded to the repository")
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(resp.Data))
	}
	if resp.Pagination.Total != 2 || resp.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination meta: %+v", resp.Pagination)
	}
}

func TestGetVenueByID_NotFound(t *testing.T) {
	svc := NewVenueService(testRepos(nil, &venueRepoMock{}, nil), zap.NewNop())

	_, err := svc.GetVenueByID(context.Background(), 99)
	if !errors.Is(err, negotiation.ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestGetVenueByID_Found(t *testing.T) {
	rating := 4.5
	venueRepo := &venueRepoMock{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Venue, error) {
			return &entity.Venue{ID: id, Name: "Cafe Aurora", Address: "Jl. Sudirman 1", City: "Jakarta", Rating: &rating, IsActive: true}, nil
		},
	}
	svc := NewVenueService(testRepos(nil, venueRepo, nil), zap.NewNop())

	resp, err := svc.GetVenueByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Name != "Cafe Aurora" || resp.Rating == nil || *resp.Rating != 4.5 {
		t.Fatalf("unexpected venue response: %+v", resp)
	}
}

func TestGetAvailableTimes(t *testing.T) {
	venueRepo := &venueRepoMock{}
	slots := &timeSlotRepoMock{
		findAvailableFn: func(ctx context.Context, venueID int64, date string) ([]*entity.TimeSlot, error) {
			return []*entity.TimeSlot{
				{ID: 1, VenueID: venueID, Date: date, Time: "18:00", Available: true},
				{ID: 2, VenueID: venueID, Date: date, Time: "19:00", Available: true},
			}, nil
		},
	}
	svc := NewVenueService(testRepos(nil, venueRepo, slots), zap.NewNop())

	resp, err := svc.GetAvailableTimes(context.Background(), 3, "2024-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp))
	}
	if resp[0].Time != "18:00" || resp[1].Time != "19:00" {
		t.Fatalf("unexpected slot times: %s, %s", resp[0].Time, resp[1].Time)
	}
}

func TestGetAvailableTimes_UnknownVenue(t *testing.T) {
	venueRepo := &venueRepoMock{
		existsFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewVenueService(testRepos(nil, venueRepo, nil), zap.NewNop())

	_, err := svc.GetAvailableTimes(context.Background(), 99, "2024-06-01")
	if !errors.Is(err, negotiation.ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestCreateTimeSlots(t *testing.T) {
	var gotDates, gotTimes []string
	slots := &timeSlotRepoMock{
		createBatchFn: func(ctx context.Context, venueID int64, dates, times []string) (int64, error) {
			gotDates, gotTimes = dates, times
			return int64(len(dates) * len(times)), nil
		},
	}
	svc := NewVenueService(testRepos(nil, nil, slots), zap.NewNop())

	resp, err := svc.CreateTimeSlots(context.Background(), 3, &request.TimeSlotBulkRequest{
		Dates: []string{"2024-06-01", "2024-06-02"},
		Times: []string{"18:00", "19:00", "20:00"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Created != 6 {
		t.Fatalf("expected 6 slots created, got %d", resp.Created)
	}
	if len(gotDates) != 2 || len(gotTimes) != 3 {
		t.Fatal("expected dates and times forwarded untouched")
	}
}

func TestCreateTimeSlots_InvalidDateRejected(t *testing.T) {
	svc := NewVenueService(testRepos(nil, nil, nil), zap.NewNop())

	_, err := svc.CreateTimeSlots(context.Background(), 3, &request.TimeSlotBulkRequest{
		Dates: []string{"01/06/2024"},
		Times: []string{"18:00"},
	})
	if err == nil {
		t.Fatal("expected validation error for malformed date")
	}
}
