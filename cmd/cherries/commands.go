package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/limbo/cherries/internal/questdetail"
	"github.com/limbo/cherries/internal/service"
	"github.com/limbo/cherries/pkg/entity"
	"go.uber.org/zap"
)

var errNotLoggedIn = errors.New("not logged in, run -cmd login first")

func (a *app) run(ctx context.Context, f *flags) error {
	switch f.cmd {
	case "login":
		return a.login(ctx, f)
	case "signup":
		return a.signup(ctx, f)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami()
	}
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	switch f.cmd {
	case "profile":
		return a.updateProfile(ctx, f)
	case "delete-account":
		if err := a.session.DeleteAccount(ctx); err != nil {
			return err
		}
		fmt.Println("account deleted")
		return nil
	case "quests":
		return a.listQuests(ctx)
	case "create":
		return a.createQuest(ctx, f)
	case "join":
		quest, err := a.quests.JoinQuest(ctx, f.code)
		if err != nil {
			return err
		}
		fmt.Printf("joined %q (%s)\n", quest.Name, quest.ID)
		return nil
	case "delete":
		if err := a.quests.DeleteQuest(ctx, f.quest); err != nil {
			return err
		}
		fmt.Println("deleted", f.quest)
		return nil
	case "checkin", "uncheck", "toggle":
		return a.mutate(ctx, f)
	case "stats":
		return a.stats(ctx, f)
	case "watch":
		return a.watch(ctx, f)
	default:
		return errors.New("unknown command: " + f.cmd)
	}
}

func (a *app) login(ctx context.Context, f *flags) error {
	if err := a.session.Login(ctx, f.email, f.password); err != nil {
		return err
	}
	return a.whoami()
}

func (a *app) signup(ctx context.Context, f *flags) error {
	if err := a.session.Signup(ctx, f.email, f.username, f.password); err != nil {
		return err
	}
	return a.whoami()
}

func (a *app) whoami() error {
	user := a.session.CurrentUser()
	if user == nil {
		return errNotLoggedIn
	}
	name := "-"
	if user.Username != nil {
		name = *user.Username
	}
	fmt.Printf("%s (%s) id=%s\n", name, user.Email, user.ID)
	return nil
}

func (a *app) updateProfile(ctx context.Context, f *flags) error {
	var update entity.UserUpdate
	if f.username != "" {
		update.Username = &f.username
	}
	if f.avatarType != "" || f.avatar != "" {
		update.Avatar = &entity.Avatar{Type: f.avatarType, Value: f.avatar}
	}
	if _, err := a.profile.UpdateProfile(ctx, &update); err != nil {
		return err
	}
	return a.whoami()
}

func (a *app) listQuests(ctx context.Context) error {
	quests, err := a.quests.GetQuests(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFROM\tTO\tCODE\tPARTICIPANTS")
	for _, q := range quests {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", q.ID, q.Name,
			entity.DayKey(q.StartDate.Time), entity.DayKey(q.EndDate.Time), q.ShareCode, len(q.Participants))
	}
	return tw.Flush()
}

func (a *app) createQuest(ctx context.Context, f *flags) error {
	start, err := parseDay(f.start)
	if err != nil {
		return err
	}
	end, err := parseDay(f.end)
	if err != nil {
		return err
	}
	tasks, err := parseTasks(f.tasks)
	if err != nil {
		return err
	}
	quest, err := a.quests.CreateQuest(ctx, &service.CreateQuestRequest{
		Name:       f.name,
		StartDate:  start,
		EndDate:    end,
		DailyTasks: tasks,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created %q id=%s share code %s\n", quest.Name, quest.ID, quest.ShareCode)
	for _, t := range quest.DailyTasks {
		fmt.Printf("  task %s %q (%d pts)\n", t.ID, t.Title, t.Points)
	}
	return nil
}

func (a *app) mutate(ctx context.Context, f *flags) error {
	engine, err := a.engine(ctx, f.quest)
	if err != nil {
		return err
	}
	defer engine.Wait()
	defer engine.Release()
	day, err := parseDay(f.date)
	if err != nil {
		return err
	}
	switch f.cmd {
	case "checkin":
		err = engine.Increment(ctx, f.task, day)
	case "uncheck":
		err = engine.Decrement(ctx, f.task, day)
	default:
		engine.SelectDate(day)
		err = engine.Toggle(ctx, f.task)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s on %s: count %d, day %s\n", f.task, entity.DayKey(day), engine.Count(f.task, day), engine.CompletionStatus(day))
	return nil
}

func (a *app) stats(ctx context.Context, f *flags) error {
	engine, err := a.engine(ctx, f.quest)
	if err != nil {
		return err
	}
	engine.Release()
	printState(engine.State())
	return nil
}

func (a *app) watch(ctx context.Context, f *flags) error {
	engine, err := a.engine(ctx, f.quest)
	if err != nil {
		return err
	}
	defer engine.Wait()
	defer engine.Release()
	printState(engine.State())

	updates := make(chan string, 1)
	lis, err := a.listener(func(questID string) {
		select {
		case updates <- questID:
		default:
		}
	})
	if err != nil {
		return err
	}
	lis.Connect(ctx, f.quest)
	defer lis.Disconnect()
	for {
		select {
		case <-ctx.Done():
			return nil
		case questID := <-updates:
			if err := engine.HandleScoreboardUpdate(ctx, questID); err != nil {
				a.logger.Warn("refreshing scoreboard failed", zap.Error(err))
				continue
			}
			printState(engine.State())
		}
	}
}

func (a *app) engine(ctx context.Context, questID string) (*questdetail.Engine, error) {
	quests, err := a.quests.GetQuests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range quests {
		if quests[i].ID != questID {
			continue
		}
		engine := questdetail.New(&quests[i], a.checkIns, a.quests, questdetail.WithLogger(a.logger))
		if err = engine.LoadData(ctx); err != nil {
			engine.Release()
			return nil, err
		}
		return engine, nil
	}
	return nil, errors.New("quest not found: " + questID)
}

func printState(st questdetail.State) {
	fmt.Printf("%s, month %s\n", st.Quest.Name, st.CurrentMonth.Format("January 2006"))
	if st.Stats != nil {
		fmt.Printf("  check-ins %d, points %d, streak %d (best %d)\n",
			st.Stats.TotalCheckIns, st.Stats.TotalPoints, st.Stats.CurrentStreak, st.Stats.LongestStreak)
	}
	for _, p := range st.Quest.Participants {
		name := p.UserID
		if p.Username != nil {
			name = *p.Username
		}
		fmt.Printf("  %-20s %d pts\n", name, p.TotalPoints)
	}
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return entity.StartOfDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, errors.New("date must be yyyy-mm-dd: " + s)
	}
	return t, nil
}

func parseTasks(s string) ([]service.DailyTaskRequest, error) {
	if s == "" {
		return nil, nil
	}
	var tasks []service.DailyTaskRequest
	for _, item := range strings.Split(s, ",") {
		title, points, ok := strings.Cut(item, ":")
		if !ok {
			return nil, errors.New("task must be title:points: " + item)
		}
		n, err := strconv.Atoi(strings.TrimSpace(points))
		if err != nil {
			return nil, errors.New("task points must be a number: " + item)
		}
		tasks = append(tasks, service.DailyTaskRequest{Title: strings.TrimSpace(title), Points: n})
	}
	return tasks, nil
}
