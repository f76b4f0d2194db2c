package service

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/limbo/cherries/pkg/entity"
)

type CheckInService struct {
	client RequesterI
}

func NewCheckInService(client RequesterI) *CheckInService {
	if client == nil {
		log.Fatal("provided nil requester")
	}
	return &CheckInService{
		client: client,
	}
}

func (cs *CheckInService) Increment(ctx context.Context, questID, dailyTaskID string, date time.Time) (*entity.CheckIn, error) {
	var checkIn entity.CheckIn
	err := cs.client.Post(ctx, "/checkins/increment", checkInBody(questID, dailyTaskID, date), &checkIn)
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

// Decrement returns nil when the count reached zero and the record is gone.
func (cs *CheckInService) Decrement(ctx context.Context, questID, dailyTaskID string, date time.Time) (*entity.CheckIn, error) {
	var checkIn *entity.CheckIn
	err := cs.client.Post(ctx, "/checkins/decrement", checkInBody(questID, dailyTaskID, date), &checkIn)
	if err != nil {
		return nil, err
	}
	return checkIn, nil
}

func (cs *CheckInService) GetCheckIns(ctx context.Context, questID string, month *time.Time) ([]entity.CheckIn, error) {
	path := "/checkins/quest/" + url.PathEscape(questID)
	if month != nil {
		path += "?" + url.Values{"date": {entity.DayKey(*month)}}.Encode()
	}
	var checkIns []entity.CheckIn
	if err := cs.client.Get(ctx, path, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (cs *CheckInService) GetStats(ctx context.Context, questID string) (*entity.CheckInStats, error) {
	var stats entity.CheckInStats
	if err := cs.client.Get(ctx, "/checkins/stats/"+url.PathEscape(questID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func checkInBody(questID, dailyTaskID string, date time.Time) entity.CheckInCreate {
	return entity.CheckInCreate{
		QuestID:     questID,
		DailyTaskID: dailyTaskID,
		CheckInDate: entity.DayKey(date),
	}
}
