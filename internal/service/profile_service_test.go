package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/internal/service"
	"github.com/limbo/cherries/internal/service/mocks"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRequesterI(ctrl)
	session := mocks.NewMockSessionUpdaterI(ctrl)
	serv := service.NewProfileService(client, session)
	username := "cherry"
	empty := ""
	testCases := []struct {
		Desc         string
		Update       *entity.UserUpdate
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:   "username",
			Update: &entity.UserUpdate{Username: &username},
			Error:  nil,
			MockPrepFunc: func() {
				client.EXPECT().Patch(gomock.Any(), "/profile", gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, path string, body, out any) error {
						*out.(*entity.User) = entity.User{ID: "u-1", Username: &username}
						return nil
					})
				session.EXPECT().UpdateUser(gomock.Any(), &entity.User{ID: "u-1", Username: &username}).Return(nil)
			},
		},
		{
			Desc:   "emoji avatar",
			Update: &entity.UserUpdate{Avatar: &entity.Avatar{Type: entity.AvatarEmoji, Value: "🍒"}},
			Error:  nil,
			MockPrepFunc: func() {
				client.EXPECT().Patch(gomock.Any(), "/profile", gomock.Any(), gomock.Any()).Return(nil)
				session.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			Desc:         "nothing to update",
			Update:       &entity.UserUpdate{},
			Error:        errorvalues.ErrInvalidRequest,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "empty username",
			Update:       &entity.UserUpdate{Username: &empty},
			Error:        errorvalues.ErrInvalidRequest,
			MockPrepFunc: func() {},
		},
		{
			Desc:         "unknown avatar type",
			Update:       &entity.UserUpdate{Avatar: &entity.Avatar{Type: "sticker", Value: "x"}},
			Error:        errorvalues.ErrInvalidRequest,
			MockPrepFunc: func() {},
		},
		{
			Desc:   "unauthorized",
			Update: &entity.UserUpdate{Username: &username},
			Error:  errorvalues.ErrUnauthorized,
			MockPrepFunc: func() {
				client.EXPECT().Patch(gomock.Any(), "/profile", gomock.Any(), gomock.Any()).Return(errorvalues.Unauthorized(errorvalues.ReasonTokenExpired))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			_, err := serv.UpdateProfile(ctx, tc.Update)
			assert.ErrorIs(t, err, tc.Error)
		})
	}
}
