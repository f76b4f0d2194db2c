package service

import (
	"context"
	"log"
	"net/url"

	"github.com/limbo/cherries/pkg/entity"
)

type QuestService struct {
	client RequesterI
}

func NewQuestService(client RequesterI) *QuestService {
	if client == nil {
		log.Fatal("provided nil requester")
	}
	return &QuestService{
		client: client,
	}
}

func (qs *QuestService) GetQuests(ctx context.Context) ([]entity.Quest, error) {
	var quests []entity.Quest
	if err := qs.client.Get(ctx, "/quests", &quests); err != nil {
		return nil, err
	}
	return quests, nil
}

func (qs *QuestService) CreateQuest(ctx context.Context, req *CreateQuestRequest) (*entity.Quest, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	body := entity.QuestCreate{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   entity.DayKey(req.StartDate),
		EndDate:     entity.DayKey(req.EndDate),
	}
	for _, task := range req.DailyTasks {
		body.DailyTasks = append(body.DailyTasks, entity.DailyTaskCreate{
			Title:       task.Title,
			Description: task.Description,
			Points:      task.Points,
		})
	}
	var quest entity.Quest
	if err := qs.client.Post(ctx, "/quests", body, &quest); err != nil {
		return nil, err
	}
	return &quest, nil
}

func (qs *QuestService) JoinQuest(ctx context.Context, shareCode string) (*entity.Quest, error) {
	req := entity.QuestJoinRequest{
		ShareCode: NormalizeShareCode(shareCode),
	}
	if err := validateStruct(struct {
		ShareCode string `validate:"share_code"`
	}{req.ShareCode}); err != nil {
		return nil, err
	}
	var quest entity.Quest
	if err := qs.client.Post(ctx, "/quests/join", req, &quest); err != nil {
		return nil, err
	}
	return &quest, nil
}

func (qs *QuestService) DeleteQuest(ctx context.Context, questID string) error {
	return qs.client.Delete(ctx, "/quests/"+url.PathEscape(questID), nil)
}
