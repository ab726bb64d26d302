package usecase_test

import (
	"context"
	"net/url"
	"time"

	"github.com/stretchr/testify/mock"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
)

// Mock implementations

type MockGraph struct {
	mock.Mock
}

// settings collapses variadic call options into a comparable value so
// expectations can assert the token and version that were threaded through.
func settings(opts []repository.CallOption) repository.CallSettings {
	var s repository.CallSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (m *MockGraph) Do(ctx context.Context, method, endpoint string, params url.Values, body url.Values, opts ...repository.CallOption) (map[string]interface{}, error) {
	args := m.Called(ctx, method, endpoint, params, body, settings(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockGraph) AccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGraph) InstagramUserID(ctx context.Context, provided string) (string, error) {
	args := m.Called(ctx, provided)
	return args.String(0), args.Error(1)
}

func (m *MockGraph) PageForIGAccount(ctx context.Context, igUserID string) model.PageBinding {
	args := m.Called(ctx, igUserID)
	return args.Get(0).(model.PageBinding)
}

func (m *MockGraph) ContainerStatus(ctx context.Context, creationID string, opts ...repository.CallOption) (model.ContainerStatus, error) {
	args := m.Called(ctx, creationID, settings(opts))
	return args.Get(0).(model.ContainerStatus), args.Error(1)
}

func (m *MockGraph) WaitAndPublish(ctx context.Context, igUserID, creationID string, opts ...repository.CallOption) (map[string]interface{}, error) {
	args := m.Called(ctx, igUserID, creationID, settings(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockGraph) PublishWithBudget(ctx context.Context, igUserID, creationID string, budget, interval time.Duration, opts ...repository.CallOption) (map[string]interface{}, error) {
	args := m.Called(ctx, igUserID, creationID, budget, interval, settings(opts))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockGraph) ExchangeCode(ctx context.Context, code string) (model.TokenRecord, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.TokenRecord), args.Error(1)
}

func (m *MockGraph) RefreshToken(ctx context.Context, refreshToken string) string {
	args := m.Called(ctx, refreshToken)
	return args.String(0)
}

func (m *MockGraph) NeedsRefreshSoon(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type MockMediaCache struct {
	mock.Mock
}

func (m *MockMediaCache) Get(ctx context.Context, key string) (map[string]interface{}, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(map[string]interface{}), args.Bool(1)
}

func (m *MockMediaCache) Set(ctx context.Context, key string, value map[string]interface{}, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}
