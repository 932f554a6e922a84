package generation_test

import (
	"context"
	"testing"

	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestTracker_ByGenerationValidation(t *testing.T) {
	tracker := generation.NewTracker(&mocks.ProjectRepository{}, "studio", nil)

	_, err := tracker.ByGeneration(context.Background(), 0)
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestTracker_ByGeneration(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("ListByGeneration", ctx, "studio", 2).Return([]project.Project{{ID: "b"}, {ID: "a"}}, nil)

	tracker := generation.NewTracker(repo, "studio", nil)
	projects, err := tracker.ByGeneration(ctx, 2)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "b", projects[0].ID)
}

func TestTracker_Summary(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("GenerationSummary", ctx, "studio").Return([]generation.Summary{
		{Generation: 1, TotalCount: 4, ActiveCount: 2, PendingCount: 1, GraduatedCount: 1},
		{Generation: 2, TotalCount: 1, ActiveCount: 1},
	}, nil)

	tracker := generation.NewTracker(repo, "studio", nil)
	summaries, err := tracker.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 1, summaries[0].Generation)
	require.Equal(t, 4, summaries[0].TotalCount)
	require.Equal(t, 2, summaries[1].Generation)
}
