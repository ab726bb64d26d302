package usecase_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
	"instagram-gateway/usecase"
)

func TestUserMediaAppliesDefaultFields(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1/media",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("fields") == "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,username" &&
				params.Get("limit") == "25" &&
				params.Get("after") == "cursor-1"
		}), url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewMediaUsecase(mockGraph)
	_, err := uc.UserMedia(context.Background(), &dto.MediaListRequest{Limit: 25, After: "cursor-1"})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestMediaServedFromCache(t *testing.T) {
	mockGraph := new(MockGraph)
	mockCache := new(MockMediaCache)
	cached := map[string]interface{}{"id": "media-1", "caption": "cached"}
	mockCache.On("Get", mock.Anything, mock.Anything).Return(cached, true)

	uc := usecase.NewMediaUsecaseWithCache(mockGraph, mockCache)
	res, err := uc.Media(context.Background(), &dto.MediaRequest{MediaID: "media-1"})
	require.NoError(t, err)
	assert.Equal(t, "cached", res["caption"])
	mockGraph.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaCacheMissFetchesAndStores(t *testing.T) {
	mockGraph := new(MockGraph)
	mockCache := new(MockMediaCache)
	fetched := map[string]interface{}{"id": "media-1"}
	mockCache.On("Get", mock.Anything, mock.Anything).Return(nil, false)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "media-1", mock.Anything, url.Values(nil), repository.CallSettings{}).
		Return(fetched, nil)
	mockCache.On("Set", mock.Anything, mock.Anything, fetched, 10*time.Minute).Return()

	uc := usecase.NewMediaUsecaseWithCache(mockGraph, mockCache)
	res, err := uc.Media(context.Background(), &dto.MediaRequest{MediaID: "media-1"})
	require.NoError(t, err)
	assert.Equal(t, "media-1", res["id"])
	mockCache.AssertExpectations(t)
	mockGraph.AssertExpectations(t)
}

func TestMediaRequiresID(t *testing.T) {
	uc := usecase.NewMediaUsecase(new(MockGraph))
	_, err := uc.Media(context.Background(), &dto.MediaRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media_id")
}

func TestMediaChildrenUsesChildFields(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "media-1/children",
		url.Values{"fields": {"id,media_type,media_url,permalink,timestamp"}}, url.Values(nil),
		repository.CallSettings{}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewMediaUsecase(mockGraph)
	_, err := uc.MediaChildren(context.Background(), &dto.MediaRequest{MediaID: "media-1"})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestStoriesThreadsVersion(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1/stories",
		mock.MatchedBy(func(params url.Values) bool {
			return params.Get("fields") == "id,media_type,media_url,permalink,timestamp"
		}), url.Values(nil), repository.CallSettings{Version: "v23.0"}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil)

	uc := usecase.NewMediaUsecase(mockGraph)
	_, err := uc.Stories(context.Background(), &dto.MediaListRequest{GraphVersion: "v23.0"})
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}

func TestTaggedAndLiveEdges(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1/tags", mock.Anything, url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil).Once()
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1/live_media", mock.Anything, url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"data": []interface{}{}}, nil).Once()

	uc := usecase.NewMediaUsecase(mockGraph)
	_, err := uc.TaggedMedia(context.Background(), nil)
	require.NoError(t, err)
	_, err = uc.LiveMedia(context.Background(), nil)
	require.NoError(t, err)
	mockGraph.AssertExpectations(t)
}
