package usecase_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"instagram-gateway/domain/repository"
	"instagram-gateway/usecase"
)

func TestUserInfoDefaultFields(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1",
		url.Values{"fields": {"id,username,website,biography,profile_picture_url,followers_count,follows_count,media_count"}},
		url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"id": "ig-1", "username": "creator"}, nil)

	uc := usecase.NewAccountUsecase(mockGraph)
	res, err := uc.UserInfo(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "creator", res["username"])
	mockGraph.AssertExpectations(t)
}

func TestUserByUsernameStripsAtAndRemaps(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1",
		mock.MatchedBy(func(params url.Values) bool {
			fields := params.Get("fields")
			return fields == "business_discovery.username(otheruser){id,username,name,profile_picture_url,biography,followers_count,follows_count,media_count}"
		}), url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{
			"business_discovery": map[string]interface{}{
				"id":              "ig-77",
				"username":        "otheruser",
				"followers_count": float64(1200),
			},
		}, nil)

	uc := usecase.NewAccountUsecase(mockGraph)
	res, err := uc.UserByUsername(context.Background(), "@otheruser", "", "")
	require.NoError(t, err)
	assert.Equal(t, "ig-77", res["instagram_user_id"])
	assert.Equal(t, float64(1200), res["followers_count"])
	mockGraph.AssertExpectations(t)
}

func TestUserByUsernameNotDiscoverable(t *testing.T) {
	mockGraph := new(MockGraph)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockGraph.On("Do", mock.Anything, http.MethodGet, "ig-1", mock.Anything, url.Values(nil), repository.CallSettings{}).
		Return(map[string]interface{}{"id": "ig-1"}, nil)

	uc := usecase.NewAccountUsecase(mockGraph)
	_, err := uc.UserByUsername(context.Background(), "privateuser", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Business/Creator")
}

func TestUserByUsernameServedFromCache(t *testing.T) {
	mockGraph := new(MockGraph)
	mockCache := new(MockMediaCache)
	mockGraph.On("InstagramUserID", mock.Anything, "").Return("ig-1", nil)
	mockCache.On("Get", mock.Anything, "discovery::otheruser").
		Return(map[string]interface{}{"instagram_user_id": "ig-77"}, true)

	uc := usecase.NewAccountUsecaseWithCache(mockGraph, mockCache)
	res, err := uc.UserByUsername(context.Background(), "otheruser", "", "")
	require.NoError(t, err)
	assert.Equal(t, "ig-77", res["instagram_user_id"])
	mockGraph.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserByUsernameRequiresName(t *testing.T) {
	uc := usecase.NewAccountUsecase(new(MockGraph))
	_, err := uc.UserByUsername(context.Background(), "  @  ", "", "")
	require.Error(t, err)
}
