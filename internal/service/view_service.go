package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tasktracker/internal/domain"
	"tasktracker/internal/insights"
	"tasktracker/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Collection names reported in a view's unavailable list
const (
	CollectionTasks        = "tasks"
	CollectionProjects     = "projects"
	CollectionAchievements = "achievements"
)

// ViewService assembles the page-level reads. Independent collections load in
// parallel; a collection that fails to load is served empty and named in the
// view's Unavailable list. Cancellation aborts the whole load.
type ViewService struct {
	tasks        *TaskService
	projects     *ProjectService
	achievements *AchievementService
	clock        Clock
}

func NewViewService(tasks *TaskService, projects *ProjectService, achievements *AchievementService, clock Clock) *ViewService {
	return &ViewService{
		tasks:        tasks,
		projects:     projects,
		achievements: achievements,
		clock:        clock,
	}
}

// TodayStats summarizes today's tasks
type TodayStats struct {
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	Remaining      int    `json:"remaining"`
	CompletionRate int    `json:"completionRate"`
	Message        string `json:"message"`
}

type TodayView struct {
	Greeting           string                `json:"greeting"`
	Date               string                `json:"date"`
	Tasks              []*domain.Task        `json:"tasks"`
	CompletedTasks     []*domain.Task        `json:"completedTasks"`
	Projects           []*domain.Project     `json:"projects"`
	RecentAchievements []*domain.Achievement `json:"recentAchievements"`
	Stats              TodayStats            `json:"stats"`
	Unavailable        []string              `json:"unavailable,omitempty"`
}

type ProjectView struct {
	Project     *domain.Project `json:"project"`
	Tasks       []*domain.Task  `json:"tasks"`
	Unavailable []string        `json:"unavailable,omitempty"`
}

// ArchiveFilter narrows the archive listing
type ArchiveFilter struct {
	Query string
	Range insights.DateRange
}

type ArchiveView struct {
	Groups            []insights.DayGroup   `json:"groups"`
	Projects          []*domain.Project     `json:"projects"`
	Achievements      []*domain.Achievement `json:"achievements"`
	TotalCompleted    int                   `json:"totalCompleted"`
	TotalAchievements int                   `json:"totalAchievements"`
	// BestDay is the largest day bucket after filtering.
	BestDay     int      `json:"bestDay"`
	Unavailable []string `json:"unavailable,omitempty"`
}

type InsightsView struct {
	insights.Report
	Unavailable []string `json:"unavailable,omitempty"`
}

// RecentOnToday is how many achievements the Today page shows
const RecentOnToday = 3

// Greeting picks the salutation for the hour of day
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	}
	return "Good evening"
}

// ProgressMessage is the encouragement line under today's progress bar
func ProgressMessage(total, remaining int) string {
	switch {
	case remaining == 0 && total > 0:
		return "Amazing! You've completed all your tasks for today! 🎉"
	case remaining == 1:
		return "Just 1 more task to go! You're almost there! 💪"
	case remaining > 0:
		return fmt.Sprintf("%d tasks remaining. You've got this! ⭐", remaining)
	}
	return "Ready to tackle some tasks? Add one to get started! 🚀"
}

func (s *ViewService) Today(ctx context.Context) (*TodayView, error) {
	now := s.clock.Current()
	v := &TodayView{
		Greeting:           Greeting(now.Hour()),
		Date:               now.Format("Monday, January 2"),
		Tasks:              []*domain.Task{},
		CompletedTasks:     []*domain.Task{},
		Projects:           []*domain.Project{},
		RecentAchievements: []*domain.Achievement{},
	}

	// stats count what was done today too, so load the whole day
	var scheduled []*domain.Task
	l := newViewLoad(ctx)
	l.load(CollectionTasks, func(ctx context.Context) error {
		tasks, err := s.tasks.ListScheduledToday(ctx)
		if err == nil {
			scheduled = tasks
		}
		return err
	})
	l.load(CollectionProjects, func(ctx context.Context) error {
		projects, err := s.projects.ListAll(ctx)
		if err == nil {
			v.Projects = projects
		}
		return err
	})
	l.load(CollectionAchievements, func(ctx context.Context) error {
		recent, err := s.achievements.ListRecent(ctx, RecentOnToday)
		if err == nil {
			v.RecentAchievements = recent
		}
		return err
	})
	unavailable, err := l.wait()
	if err != nil {
		return nil, err
	}
	v.Unavailable = unavailable

	for _, t := range scheduled {
		if t.Completed {
			v.CompletedTasks = append(v.CompletedTasks, t)
		} else {
			v.Tasks = append(v.Tasks, t)
		}
	}
	done := len(v.CompletedTasks)
	v.Stats = TodayStats{
		Total:          len(scheduled),
		Completed:      done,
		Remaining:      len(v.Tasks),
		CompletionRate: insights.CompletionRate(scheduled),
		Message:        ProgressMessage(len(scheduled), len(v.Tasks)),
	}
	return v, nil
}

// ProjectTasks returns the project with its tasks. A missing project is an
// error; a task listing failure degrades.
func (s *ViewService) ProjectTasks(ctx context.Context, id int64) (*ProjectView, error) {
	v := &ProjectView{Tasks: []*domain.Task{}}

	l := newViewLoad(ctx)
	l.require(func(ctx context.Context) error {
		p, err := s.projects.GetByID(ctx, id)
		if err == nil {
			v.Project = p
		}
		return err
	})
	l.load(CollectionTasks, func(ctx context.Context) error {
		tasks, err := s.tasks.ListByProject(ctx, id)
		if err == nil {
			v.Tasks = tasks
		}
		return err
	})
	unavailable, err := l.wait()
	if err != nil {
		return nil, err
	}
	v.Unavailable = unavailable
	return v, nil
}

func (s *ViewService) Archive(ctx context.Context, f ArchiveFilter) (*ArchiveView, error) {
	if f.Range == "" {
		f.Range = insights.RangeAll
	}
	completed := []*domain.Task{}
	v := &ArchiveView{
		Projects:     []*domain.Project{},
		Achievements: []*domain.Achievement{},
	}

	l := newViewLoad(ctx)
	l.load(CollectionTasks, func(ctx context.Context) error {
		tasks, err := s.tasks.ListCompleted(ctx)
		if err == nil {
			completed = tasks
		}
		return err
	})
	l.load(CollectionProjects, func(ctx context.Context) error {
		projects, err := s.projects.ListAll(ctx)
		if err == nil {
			v.Projects = projects
		}
		return err
	})
	l.load(CollectionAchievements, func(ctx context.Context) error {
		all, err := s.achievements.ListAll(ctx)
		if err == nil {
			v.Achievements = all
		}
		return err
	})
	unavailable, err := l.wait()
	if err != nil {
		return nil, err
	}
	v.Unavailable = unavailable

	now := s.clock.Current()
	v.Groups = insights.GroupByDay(insights.FilterArchive(completed, f.Query, f.Range, now), now.Location())
	v.TotalCompleted = len(completed)
	v.TotalAchievements = len(v.Achievements)
	for _, g := range v.Groups {
		if len(g.Tasks) > v.BestDay {
			v.BestDay = len(g.Tasks)
		}
	}
	return v, nil
}

func (s *ViewService) Insights(ctx context.Context) (*InsightsView, error) {
	tasks := []*domain.Task{}
	projects := []*domain.Project{}

	l := newViewLoad(ctx)
	l.load(CollectionTasks, func(ctx context.Context) error {
		all, err := s.tasks.ListAll(ctx)
		if err == nil {
			tasks = all
		}
		return err
	})
	l.load(CollectionProjects, func(ctx context.Context) error {
		all, err := s.projects.ListAll(ctx)
		if err == nil {
			projects = all
		}
		return err
	})
	unavailable, err := l.wait()
	if err != nil {
		return nil, err
	}

	return &InsightsView{
		Report:      insights.BuildReport(tasks, projects, s.clock.Current()),
		Unavailable: unavailable,
	}, nil
}

// viewLoad runs collection loads in parallel and records the ones that failed
type viewLoad struct {
	g   *errgroup.Group
	ctx context.Context

	mu     sync.Mutex
	failed []string
}

func newViewLoad(ctx context.Context) *viewLoad {
	g, gctx := errgroup.WithContext(ctx)
	return &viewLoad{g: g, ctx: gctx}
}

// load degrades failures of fn to an unavailable collection
func (l *viewLoad) load(name string, fn func(ctx context.Context) error) {
	l.g.Go(func() error {
		err := fn(l.ctx)
		if err == nil || isCanceled(err) {
			return err
		}
		logger.WithContext(l.ctx).Warn("view collection unavailable", "collection", name, "error", err)
		l.mu.Lock()
		l.failed = append(l.failed, name)
		l.mu.Unlock()
		return nil
	})
}

// require fails the whole load when fn fails
func (l *viewLoad) require(fn func(ctx context.Context) error) {
	l.g.Go(func() error {
		return fn(l.ctx)
	})
}

func (l *viewLoad) wait() ([]string, error) {
	if err := l.g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(l.failed)
	return l.failed, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
