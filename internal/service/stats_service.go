package service

import (
	"context"

	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	recentShowsLimit   = 5
	recentTicketsLimit = 10
)

type StatsService interface {
	GetAdminStats(ctx context.Context) (*model.AdminStats, error)
}

type StatsServiceImpl struct {
	repository       repository.StatsRepository
	ticketRepository repository.TicketRepository
}

func NewStatsService(statsRepository repository.StatsRepository, ticketRepository repository.TicketRepository) StatsService {
	return &StatsServiceImpl{
		repository:       statsRepository,
		ticketRepository: ticketRepository,
	}
}

func (s *StatsServiceImpl) GetAdminStats(ctx context.Context) (*model.AdminStats, error) {
	totals, err := s.repository.Totals(ctx)
	if err != nil {
		return nil, err
	}
	recentShows, err := s.repository.RecentShows(ctx, recentShowsLimit)
	if err != nil {
		return nil, err
	}
	recentTickets, err := s.ticketRepository.ListRecent(ctx, recentTicketsLimit)
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		TotalShows:    totals.Shows,
		TotalTickets:  totals.Tickets,
		TotalUsers:    totals.Users,
		TotalVideos:   totals.Videos,
		TotalRevenue:  CentsToDollars(totals.RevenueCents),
		RecentShows:   recentShows,
		RecentTickets: recentTickets,
	}, nil
}

// CentsToDollars 以 decimal 換算，避免浮點誤差
func CentsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
