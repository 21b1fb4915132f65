package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/talentlens/talentlens/internal/domain"
)

type mockForge struct {
	mock.Mock
}

func (m *mockForge) ListContributors(ctx context.Context, ref domain.RepositoryRef) ([]domain.Contributor, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contributor), args.Error(1)
}

func (m *mockForge) SearchMergedPullRequests(ctx context.Context, login string, ref *domain.RepositoryRef, limit int) ([]domain.PullRequestRef, error) {
	args := m.Called(ctx, login, ref, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequestRef), args.Error(1)
}

func (m *mockForge) GetPullRequest(ctx context.Context, ref domain.RepositoryRef, number int) (*domain.PullRequest, error) {
	args := m.Called(ctx, ref, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PullRequest), args.Error(1)
}

func (m *mockForge) ListPullRequestFiles(ctx context.Context, ref domain.RepositoryRef, number int) ([]domain.FileDiff, error) {
	args := m.Called(ctx, ref, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FileDiff), args.Error(1)
}

func (m *mockForge) CountPullRequestCommits(ctx context.Context, ref domain.RepositoryRef, number int) (int, error) {
	args := m.Called(ctx, ref, number)
	return args.Int(0), args.Error(1)
}

func (m *mockForge) GetUser(ctx context.Context, login string) (*domain.UserProfile, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *mockForge) ListAuthoredMergedPullRequests(ctx context.Context, login string) ([]domain.PullRequest, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PullRequest), args.Error(1)
}
