package service

import (
	"context"

	"socialbid/internal/domain"
)

// AdminService backs the admin panel: user roster, prompt log review, and
// marketplace totals. Every operation requires the admin role.
type AdminService struct {
	users    domain.UserRepository
	auctions domain.AuctionRepository
	bids     domain.BidRepository
	logs     domain.PromptLogRepository
}

func NewAdminService(
	users domain.UserRepository,
	auctions domain.AuctionRepository,
	bids domain.BidRepository,
	logs domain.PromptLogRepository,
) *AdminService {
	return &AdminService{users: users, auctions: auctions, bids: bids, logs: logs}
}

// Stats are the dashboard totals.
type Stats struct {
	Users      int `json:"users"`
	Auctions   int `json:"auctions"`
	Bids       int `json:"bids"`
	PromptLogs int `json:"prompt_logs"`
}

func (s *AdminService) requireAdmin(caller *domain.User) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// ListUsers returns sanitized profiles of every registered user.
func (s *AdminService) ListUsers(ctx context.Context, caller *domain.User) ([]*domain.PublicProfile, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*domain.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}

// ListPromptLogs returns the most recent generation log entries.
func (s *AdminService) ListPromptLogs(ctx context.Context, caller *domain.User, limit int) ([]*domain.PromptLog, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.logs.List(ctx, limit)
}

// GetStats returns the dashboard totals.
func (s *AdminService) GetStats(ctx context.Context, caller *domain.User) (*Stats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	auctions, err := s.auctions.Count(ctx)
	if err != nil {
		return nil, err
	}
	bids, err := s.bids.Count(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{Users: users, Auctions: auctions, Bids: bids, PromptLogs: logs}, nil
}
