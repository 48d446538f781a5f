package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock for versioninfo.Source
type mockSource struct {
	mock.Mock
}

func (m *mockSource) CommitHash(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

func (m *mockSource) CommitDate(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}
