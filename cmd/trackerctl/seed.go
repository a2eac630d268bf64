package main

import (
	"context"
	"fmt"
	"time"

	"tasktracker/internal/achievement"
	"tasktracker/internal/app"
	"tasktracker/internal/config"
	"tasktracker/internal/domain"
	"tasktracker/internal/events"
	"tasktracker/internal/insights"
	"tasktracker/internal/service"

	"github.com/spf13/cobra"
)

type seedTask struct {
	title    string
	priority domain.Priority
	project  int // index into seedProjects, -1 for none
	dueIn    int // days from today
}

var seedProjects = []domain.ProjectInput{
	{Name: "Work", Color: "#4ECDC4", Icon: "Briefcase"},
	{Name: "Personal", Color: "#FF6B6B", Icon: "Heart"},
	{Name: "Learning", Color: "#FFE66D", Icon: "BookOpen"},
}

var seedTasks = []seedTask{
	{"Prepare sprint demo", domain.PriorityHigh, 0, 0},
	{"Review pull requests", domain.PriorityMedium, 0, 0},
	{"Book dentist appointment", domain.PriorityLow, 1, 0},
	{"Plan weekend hike", domain.PriorityLow, 1, 2},
	{"Finish Go concurrency chapter", domain.PriorityMedium, 2, 1},
	{"Renew passport", domain.PriorityHigh, -1, 5},
}

func seedCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample projects and tasks",
		Long: `Creates a few projects and open tasks, and completes one task per
day over the last --days days so the insights and archive have history.
Achievements are awarded along the way as they would be live.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			stores, err := app.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer stores.Close()

			s := &seeder{cfg: cfg, stores: stores, now: time.Now().In(cfg.Location)}
			return s.run(ctx, cmd, days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Days of completion history to generate")
	return cmd
}

type seeder struct {
	cfg    *config.Config
	stores *app.Stores
	now    time.Time
	at     time.Time
}

// services are built on a movable clock so history lands on past days
func (s *seeder) services() (*service.TaskService, *service.ProjectService) {
	clock := service.Clock{Location: s.cfg.Location, Now: func() time.Time { return s.at }}
	pub := events.Noop{}
	tasks := service.NewTaskService(s.stores.Tasks, s.stores.Projects, pub, clock)
	projects := service.NewProjectService(s.stores.Projects, s.stores.Tasks, pub, clock)
	achievements := service.NewAchievementService(s.stores.Achievements, s.stores.Tasks, achievement.NewEvaluator(s.cfg.AchievementTrigger), pub, clock)
	tasks.SetAwarder(achievements)
	return tasks, projects
}

func (s *seeder) run(ctx context.Context, cmd *cobra.Command, days int) error {
	out := cmd.OutOrStdout()
	tasks, projects := s.services()
	today := insights.StartOfDay(s.now)

	s.at = s.now
	ids := make([]int64, 0, len(seedProjects))
	for _, in := range seedProjects {
		p, err := projects.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("create project %q: %w", in.Name, err)
		}
		ids = append(ids, p.ID)
		fmt.Fprintf(out, "project #%d %s\n", p.ID, p.Name)
	}

	for i := days; i >= 1; i-- {
		s.at = today.AddDate(0, 0, -i).Add(10 * time.Hour)
		t, err := tasks.Create(ctx, domain.TaskInput{
			Title:     fmt.Sprintf("Daily review %s", s.at.Format("Jan 2")),
			Priority:  domain.PriorityMedium,
			ProjectID: &ids[i%len(ids)],
		})
		if err != nil {
			return err
		}
		s.at = s.at.Add(2 * time.Hour)
		if _, err := tasks.Complete(ctx, t.ID); err != nil {
			return err
		}
	}
	if days > 0 {
		fmt.Fprintf(out, "completed %d tasks over the last %d days\n", days, days)
	}

	s.at = s.now
	for _, st := range seedTasks {
		due := today.AddDate(0, 0, st.dueIn).Add(17 * time.Hour).Format(time.RFC3339)
		in := domain.TaskInput{Title: st.title, Priority: st.priority, DueDate: &due}
		if st.project >= 0 {
			in.ProjectID = &ids[st.project]
		}
		t, err := tasks.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("create task %q: %w", st.title, err)
		}
		fmt.Fprintf(out, "task #%d %s\n", t.ID, t.Title)
	}
	return nil
}
