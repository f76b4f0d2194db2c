package service

import (
	"context"
	"log"

	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
)

type ProfileService struct {
	client  RequesterI
	session SessionUpdaterI
}

type profileUpdate struct {
	Username   *string `validate:"omitempty,min=1,max=50"`
	AvatarType *string `validate:"omitempty,oneof=emoji preset custom"`
	AvatarVal  *string `validate:"omitempty,min=1"`
}

func NewProfileService(client RequesterI, session SessionUpdaterI) *ProfileService {
	if client == nil || session == nil {
		log.Fatal("provided nil dependency for profile service")
	}
	return &ProfileService{
		client:  client,
		session: session,
	}
}

func (ps *ProfileService) UpdateProfile(ctx context.Context, update *entity.UserUpdate) (*entity.User, error) {
	if update == nil || (update.Username == nil && update.Avatar == nil) {
		return nil, errorvalues.InvalidRequest("nothing to update", nil)
	}
	check := profileUpdate{Username: update.Username}
	if update.Avatar != nil {
		check.AvatarType = &update.Avatar.Type
		check.AvatarVal = &update.Avatar.Value
	}
	if err := validateStruct(check); err != nil {
		return nil, err
	}
	var user entity.User
	if err := ps.client.Patch(ctx, "/profile", update, &user); err != nil {
		return nil, err
	}
	if err := ps.session.UpdateUser(ctx, &user); err != nil {
		return &user, err
	}
	return &user, nil
}
