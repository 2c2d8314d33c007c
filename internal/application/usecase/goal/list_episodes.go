package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
)

const (
	defaultEpisodeLimit = 20
	maxEpisodeLimit     = 200
)

// ListEpisodesInput represents the input for listing a user's episodic events.
type ListEpisodesInput struct {
	UserID string
	Limit  int
}

// ListEpisodesOutput represents the output of listing episodic events.
type ListEpisodesOutput struct {
	Events []*entity.EpisodicEvent
}

// ListEpisodesUseCase handles listing a user's most recent episodic events.
type ListEpisodesUseCase struct {
	repo adapter.EpisodicRepository
}

// NewListEpisodesUseCase creates a new ListEpisodesUseCase instance.
func NewListEpisodesUseCase(repo adapter.EpisodicRepository) *ListEpisodesUseCase {
	return &ListEpisodesUseCase{
		repo: repo,
	}
}

// Execute returns the newest events first. The limit is clamped to [1, 200] and defaults to 20.
func (uc *ListEpisodesUseCase) Execute(ctx context.Context, input ListEpisodesInput) (*ListEpisodesOutput, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingUserID,
			"user_id required",
			domainerror.ErrMissingUserID,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultEpisodeLimit
	}
	if limit > maxEpisodeLimit {
		limit = maxEpisodeLimit
	}

	events, err := uc.repo.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodic events: %w", err)
	}

	return &ListEpisodesOutput{Events: events}, nil
}
