package usecase_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
	"instagram-gateway/usecase"
)

func TestUserInsightsJoinsMetrics(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1/insights",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("metric") == "reach,profile_views" &&
				params.Get("period") == "day" &&
				params.Get("metric_type") == "total_value"
		}), url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewInsightsUsecase(mockGraph)
	_, err := uc.UserInsights(context.Background(), &dto.UserInsightsRequest{
		Metrics:    []string{"reach", "profile_views"},
		MetricType: "total_value",
	})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestUserInsightsRequireMetric(t *testing.T) {
	uc := usecase.NewInsightsUsecase(new(MockGraph))
	_, err := uc.UserInsights(context.Background(), &dto.UserInsightsRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metric")
}

func TestMediaInsightsSwapImpressionsOnV22(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "media-1/insights",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("metric") == "likes,reach" &&
				params.Get("period") == "lifetime"
		}), url.Values(nil), repository.CallSettings{Version: "v22.0"}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewInsightsUsecase(mockGraph)
	_, err := uc.MediaInsights(context.Background(), &dto.MediaInsightsRequest{
		MediaID:      "media-1",
		Metrics:      []string{"impressions", "likes"},
		GraphVersion: "v22.0",
	})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestMediaInsightsKeepImpressionsOnV21(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "media-1/insights",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("metric") == "impressions,reach"
		}), url.Values(nil), repository.CallSettings{Version: "v21.0"}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewInsightsUsecase(mockGraph)
	_, err := uc.MediaInsights(context.Background(), &dto.MediaInsightsRequest{
		MediaID:      "media-1",
		Metrics:      []string{"impressions", "reach"},
		GraphVersion: "v21.0",
	})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestMediaInsightsNoDuplicateReach(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "media-1/insights",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("metric") == "reach,saved"
		}), url.Values(nil), repository.CallSettings{Version: "v23.0"}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewInsightsUsecase(mockGraph)
	_, err := uc.MediaInsights(context.Background(), &dto.MediaInsightsRequest{
		MediaID:      "media-1",
		Metrics:      []string{"impressions", "reach", "saved"},
		GraphVersion: "v23.0",
	})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}
