package alignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/metrics"
)

/* ------------------------------------------------------------------ */
/*  Logger                                                            */
/* ------------------------------------------------------------------ */

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "AlignmentService"),
)

/* ------------------------------------------------------------------ */
/*  Service definition & constructor                                  */
/* ------------------------------------------------------------------ */

type Service struct {
	goals    GoalDirectory
	tasks    TaskLedger
	blocks   BlockLedger
	checkins CheckinLedger
	records  DayRecordStore

	settings Settings
	now      func() time.Time
}

func NewService(sources Sources, settings Settings) *Service {
	return &Service{
		goals:    sources.Goals,
		tasks:    sources.Tasks,
		blocks:   sources.Blocks,
		checkins: sources.Checkins,
		records:  sources.Records,
		settings: settings,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to resolve "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Settings returns the engine settings the service was built with.
func (s *Service) Settings() Settings {
	return s.settings
}

/* ------------------------------------------------------------------ */
/*  Read models                                                       */
/* ------------------------------------------------------------------ */

// StreakSummary is the streak state of the most recent computed day.
type StreakSummary struct {
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	TargetHours   float64 `json:"targetHours"`
	LastDay       string  `json:"lastDay"`
}

// DayScore is one point of the weekly series.
type DayScore struct {
	Date            string  `json:"date"`
	Score24         float64 `json:"score24"`
	ScorePercentage float64 `json:"scorePercentage"`
	TotalMinutes    float64 `json:"totalMinutes"`
}

// WeeklySummary is the Sunday..Saturday series of stored day records.
type WeeklySummary struct {
	WeekStart      string     `json:"weekStart"`
	WeekEnd        string     `json:"weekEnd"`
	Days           []DayScore `json:"days"`
	AverageScore24 float64    `json:"averageScore24"`
	QualifyingDays int        `json:"qualifyingDays"`
}

/* ------------------------------------------------------------------ */
/*  Daily metrics                                                     */
/* ------------------------------------------------------------------ */

// ComputeDailyMetrics recomputes and stores the aligned-time record of userID
// for the day named by date (empty means today). Nothing is stored when any
// source fails.
func (s *Service) ComputeDailyMetrics(
	ctx context.Context,
	userID string,
	date string,
) (*db.GoalAlignedDay, error) {
	started := time.Now()
	log.Info("compute-daily-metrics:start", "userID", userID, "date", date)

	if userID == "" {
		log.Warn("compute-daily-metrics:missing-user")
		metrics.RecordComputation(metrics.OutcomeInvalidInput, time.Since(started))
		return nil, ErrMissingUser
	}

	window, err := ResolveDay(date, s.now(), s.settings.Offset)
	if err != nil {
		log.Warn("compute-daily-metrics:invalid-date", "date", date, "err", err)
		metrics.RecordComputation(metrics.OutcomeInvalidDate, time.Since(started))
		return nil, err
	}

	inputs, err := s.load(ctx, userID, window)
	if err != nil {
		log.Error("compute-daily-metrics:load-failed", "userID", userID, "day", window.Date, "err", err)
		metrics.RecordComputation(metrics.OutcomeSourceError, time.Since(started))
		return nil, err
	}

	tally := Aggregate(inputs, s.settings)

	record, err := s.persist(ctx, userID, window, tally)
	if err != nil {
		log.Error("compute-daily-metrics:persist-failed", "userID", userID, "day", window.Date, "err", err)
		metrics.RecordComputation(metrics.OutcomeStoreError, time.Since(started))
		return nil, err
	}

	metrics.RecordComputation(metrics.OutcomeOK, time.Since(started))
	log.Info("compute-daily-metrics:success", "userID", userID, "day", window.Date,
		"totalMinutes", record.TotalGoalAlignedMinutes, "score24", record.Score24,
		"currentStreak", record.CurrentStreak)
	return record, nil
}

// load queries the goal directory and the three ledgers concurrently.
func (s *Service) load(ctx context.Context, userID string, w DayWindow) (Inputs, error) {
	var (
		goals    []db.Goal
		tasks    []db.Task
		blocks   []db.ScheduledBlock
		checkins []db.HabitCheckin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return timed("goals", func() (err error) {
			goals, err = s.goals.ListActiveGoals(gctx, userID)
			return err
		})
	})
	g.Go(func() error {
		return timed("tasks", func() (err error) {
			tasks, err = s.tasks.FindCompletedTasks(gctx, userID, w.Start, w.End)
			return err
		})
	})
	g.Go(func() error {
		return timed("blocks", func() (err error) {
			blocks, err = s.blocks.FindBlocks(gctx, userID, w.Start, w.End)
			return err
		})
	})
	g.Go(func() error {
		return timed("checkins", func() (err error) {
			checkins, err = s.checkins.FindCheckins(gctx, userID, w.Start, w.End)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return Inputs{}, err
	}

	return Inputs{
		Window:   w,
		Goals:    goals,
		Tasks:    tasks,
		Blocks:   blocks,
		Checkins: checkins,
	}, nil
}

func timed(source string, query func() error) error {
	started := time.Now()
	err := query()
	metrics.RecordSourceQuery(source, err == nil, time.Since(started))
	if err != nil {
		return sourceError(source, err)
	}
	return nil
}

// persist merges the tally into the day's record, applies the streak and
// replaces the stored row in one statement. UpdatedAt only moves when a
// computed field changed, so recomputing unchanged activity returns the
// stored record as is.
func (s *Service) persist(
	ctx context.Context,
	userID string,
	w DayWindow,
	tally Tally,
) (*db.GoalAlignedDay, error) {
	existing, err := s.records.GetRecord(ctx, userID, w.Date)
	if err != nil {
		return nil, fmt.Errorf("load day record: %w", err)
	}
	earlier, err := s.records.LatestRecordBefore(ctx, userID, w.Date)
	if err != nil {
		return nil, fmt.Errorf("load earlier day record: %w", err)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	record := &db.GoalAlignedDay{
		ID:                      uuid.NewString(),
		UserID:                  userID,
		Day:                     w.Date,
		TasksGoalAligned:        tally.TasksGoalAligned,
		BlockMinutes:            tally.BlockMinutes,
		HabitMinutes:            tally.HabitMinutes,
		TaskMinutes:             tally.TaskMinutes,
		TotalGoalAlignedMinutes: tally.TotalGoalAlignedMinutes,
		Score24:                 tally.Score24,
		ScorePercentage:         tally.ScorePercentage,
		GoalBreakdown:           tally.GoalBreakdown,
		MindfulTaskCount:        tally.MindfulTaskCount,
		MindfulMinutes:          tally.MindfulMinutes,
		AverageMindfulRating:    tally.AverageMindfulRating,
		TargetHours:             s.settings.DefaultTargetHours,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if existing.TargetHours > 0 {
			record.TargetHours = existing.TargetHours
		}
	}

	ApplyStreak(record, existing, earlier, w.Previous().Date, s.settings)
	if existing != nil && sameComputation(record, existing) {
		record.UpdatedAt = existing.UpdatedAt
	}

	if err := s.records.UpsertRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert day record: %w", err)
	}
	return record, nil
}

// sameComputation reports whether a and b carry the same computed values,
// ignoring row identity and timestamps.
func sameComputation(a, b *db.GoalAlignedDay) bool {
	x, y := *a, *b
	x.ID, y.ID = "", ""
	x.CreatedAt, y.CreatedAt = time.Time{}, time.Time{}
	x.UpdatedAt, y.UpdatedAt = time.Time{}, time.Time{}
	x.GoalBreakdown, y.GoalBreakdown = nil, nil
	return reflect.DeepEqual(x, y) && slices.Equal(a.GoalBreakdown, b.GoalBreakdown)
}

/* ------------------------------------------------------------------ */
/*  Streak & weekly read paths                                        */
/* ------------------------------------------------------------------ */

// Streak returns the streak fields of the latest stored record, or a zeroed
// summary when the user has none yet.
func (s *Service) Streak(ctx context.Context, userID string) (*StreakSummary, error) {
	log.Debug("get-streak", "userID", userID)

	if userID == "" {
		return nil, ErrMissingUser
	}

	latest, err := s.records.LatestRecord(ctx, userID)
	if err != nil {
		log.Error("get-streak:query-failed", "userID", userID, "err", err)
		return nil, fmt.Errorf("failed to load latest day record: %w", err)
	}
	if latest == nil {
		return &StreakSummary{TargetHours: s.settings.DefaultTargetHours}, nil
	}

	return &StreakSummary{
		CurrentStreak: latest.CurrentStreak,
		LongestStreak: latest.LongestStreak,
		TargetHours:   latest.TargetHours,
		LastDay:       latest.Day,
	}, nil
}

// WeeklySummary lists the stored records of the Sunday..Saturday week that
// contains date. Days never computed are left out.
func (s *Service) WeeklySummary(ctx context.Context, userID, date string) (*WeeklySummary, error) {
	log.Debug("get-weekly-summary", "userID", userID, "date", date)

	if userID == "" {
		return nil, ErrMissingUser
	}

	window, err := ResolveDay(date, s.now(), s.settings.Offset)
	if err != nil {
		return nil, err
	}
	week := window.Week()

	records, err := s.records.ListRecords(ctx, userID, week.Start, week.End)
	if err != nil {
		log.Error("get-weekly-summary:query-failed", "userID", userID, "err", err)
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}

	summary := &WeeklySummary{
		WeekStart: week.Start,
		WeekEnd:   week.Saturday,
		Days:      make([]DayScore, 0, len(records)),
	}
	total := 0.0
	for _, record := range records {
		summary.Days = append(summary.Days, DayScore{
			Date:            record.Day,
			Score24:         record.Score24,
			ScorePercentage: record.ScorePercentage,
			TotalMinutes:    record.TotalGoalAlignedMinutes,
		})
		total += record.Score24
		if Qualifies(record.TotalGoalAlignedMinutes, s.settings) {
			summary.QualifyingDays++
		}
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})
	if len(summary.Days) > 0 {
		summary.AverageScore24 = round1(total / float64(len(summary.Days)))
	}

	log.Info("get-weekly-summary:success", "userID", userID, "weekStart", week.Start, "days", len(summary.Days))
	return summary, nil
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrMissingUser)
}
