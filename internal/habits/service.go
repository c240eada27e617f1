// Package habits is the completion and streak engine. It orchestrates the
// habit registry and log store, keeps the cached derived fields consistent
// with the log history, and owns the engine's error taxonomy.
package habits

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/dates"
	"github.com/habitkit/habit-api/internal/models"
	"github.com/habitkit/habit-api/internal/queue"
	"github.com/habitkit/habit-api/internal/schedule"
	"github.com/habitkit/habit-api/internal/streak"
	"go.uber.org/zap"
)

// repairDebounce delays repair jobs slightly so a burst of failing writes for
// the same habit collapses into one recompute.
const repairDebounce = 5 * time.Second

// Service is the habit completion and streak engine
type Service struct {
	habits database.HabitRepositoryInterface
	logs   database.HabitLogRepositoryInterface
	repair queue.Enqueuer
	logger *zap.Logger
}

// Option configures optional service collaborators
type Option func(*Service)

// WithRepairQueue wires the out-of-band streak repair queue. Without it,
// recompute failures are logged but not repaired automatically.
func WithRepairQueue(q queue.Enqueuer) Option {
	return func(s *Service) { s.repair = q }
}

// NewService creates the engine service
func NewService(habits database.HabitRepositoryInterface, logs database.HabitLogRepositoryInterface, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		habits: habits,
		logs:   logs,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateHabitInput carries the caller-editable habit fields
type CreateHabitInput struct {
	Name           string
	FrequencyType  models.FrequencyType
	FrequencyValue int
	TargetCount    int
	Color          string
}

// UpdateHabitInput carries optional field updates; nil means unchanged
type UpdateHabitInput struct {
	Name           *string
	FrequencyType  *models.FrequencyType
	FrequencyValue *int
	TargetCount    *int
	Color          *string
}

// LogInput carries a completion record for one calendar day
type LogInput struct {
	Date            string
	Status          models.LogStatus
	CompletionCount *int
	QualityRating   *int
	MoodBefore      *int
	MoodAfter       *int
	Notes           *string
}

// HabitDetail is a habit together with its derived schedule view
type HabitDetail struct {
	*models.Habit
	NextDueDate string `json:"next_due_date"`
	IsDueToday  bool   `json:"is_due_today"`
}

// CreateHabit registers a new habit for the owner
func (s *Service) CreateHabit(ctx context.Context, ownerID uuid.UUID, input CreateHabitInput) (*models.Habit, error) {
	if input.Name == "" {
		return nil, invalidInputf("name is required")
	}
	if err := validateFrequency(input.FrequencyType, input.FrequencyValue); err != nil {
		return nil, err
	}
	if input.TargetCount < 1 {
		return nil, invalidInputf("target_count must be a positive integer")
	}

	habit := &models.Habit{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           input.Name,
		FrequencyType:  input.FrequencyType,
		FrequencyValue: input.FrequencyValue,
		TargetCount:    input.TargetCount,
		Color:          input.Color,
	}

	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, storeErr(err)
	}

	return habit, nil
}

// GetHabit fetches an owned habit (archived included) with its schedule view
func (s *Service) GetHabit(ctx context.Context, ownerID, habitID uuid.UUID, today time.Time) (*HabitDetail, error) {
	habit, err := s.getOwned(ctx, ownerID, habitID, true)
	if err != nil {
		return nil, err
	}
	return s.withSchedule(ctx, habit, today)
}

// ListHabits lists an owner's habits with pagination and schedule views
func (s *Service) ListHabits(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, pageSize int, today time.Time) ([]*HabitDetail, int, error) {
	habits, total, err := s.habits.GetByOwnerPaginated(ctx, ownerID, includeArchived, page, pageSize)
	if err != nil {
		return nil, 0, storeErr(err)
	}

	details := make([]*HabitDetail, 0, len(habits))
	for _, habit := range habits {
		detail, err := s.withSchedule(ctx, habit, today)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}

	return details, total, nil
}

// UpdateHabit applies field updates to an owned, active habit. Derived fields
// cannot be set through this path.
func (s *Service) UpdateHabit(ctx context.Context, ownerID, habitID uuid.UUID, input UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.getOwned(ctx, ownerID, habitID, false)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, invalidInputf("name cannot be empty")
		}
		habit.Name = *input.Name
	}
	if input.FrequencyType != nil {
		habit.FrequencyType = *input.FrequencyType
	}
	if input.FrequencyValue != nil {
		habit.FrequencyValue = *input.FrequencyValue
	}
	if err := validateFrequency(habit.FrequencyType, habit.FrequencyValue); err != nil {
		return nil, err
	}
	if input.TargetCount != nil {
		if *input.TargetCount < 1 {
			return nil, invalidInputf("target_count must be a positive integer")
		}
		habit.TargetCount = *input.TargetCount
	}
	if input.Color != nil {
		habit.Color = *input.Color
	}

	if err := s.habits.Update(ctx, habit); err != nil {
		return nil, storeErr(err)
	}

	return habit, nil
}

// ArchiveHabit soft-deletes a habit, preserving its logs
func (s *Service) ArchiveHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, habitID, true); err != nil {
		return err
	}
	if err := s.habits.Archive(ctx, habitID); err != nil {
		return storeErr(err)
	}
	return nil
}

// RestoreHabit reverses an archive
func (s *Service) RestoreHabit(ctx context.Context, ownerID, habitID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, habitID, true); err != nil {
		return err
	}
	if err := s.habits.Restore(ctx, habitID); err != nil {
		return storeErr(err)
	}
	return nil
}

// DeleteHabit permanently removes a habit and all of its logs. Hard deletion
// is never the default: callers must pass permanent=true, otherwise they are
// pointed at archive.
func (s *Service) DeleteHabit(ctx context.Context, ownerID, habitID uuid.UUID, permanent bool) error {
	if !permanent {
		return invalidInputf("refusing to hard-delete without permanent=true; use archive instead")
	}
	if _, err := s.getOwned(ctx, ownerID, habitID, true); err != nil {
		return err
	}
	if err := s.habits.Delete(ctx, habitID); err != nil {
		return storeErr(err)
	}
	return nil
}

// LogCompletion upserts the completion record for (habit, day) and then
// synchronously recomputes the habit's derived fields. Writing the same day
// twice overwrites the first record; it is never an error.
//
// The log write and the recompute are deliberately not one transaction: a
// recompute failure leaves the log recorded and the cached streak stale, which
// is logged as an inconsistency and handed to the repair queue.
func (s *Service) LogCompletion(ctx context.Context, ownerID, habitID uuid.UUID, input LogInput) (*models.HabitLog, error) {
	habit, err := s.getOwned(ctx, ownerID, habitID, false)
	if err != nil {
		return nil, err
	}

	if err := validateLogInput(input); err != nil {
		return nil, err
	}

	completionCount := 0
	if input.CompletionCount != nil {
		completionCount = *input.CompletionCount
	} else if input.Status == models.LogStatusCompleted {
		completionCount = habit.TargetCount
	}

	log := &models.HabitLog{
		ID:              uuid.New(),
		HabitID:         habit.ID,
		OwnerID:         ownerID,
		Date:            input.Date,
		Status:          input.Status,
		CompletionCount: completionCount,
		TargetCount:     habit.TargetCount,
		QualityRating:   input.QualityRating,
		MoodBefore:      input.MoodBefore,
		MoodAfter:       input.MoodAfter,
		Notes:           input.Notes,
	}

	if err := s.logs.Upsert(ctx, log); err != nil {
		return nil, storeErr(err)
	}

	s.recomputeOrRepair(ctx, habit)
	return log, nil
}

// ListLogs returns an owned habit's logs, newest day first
func (s *Service) ListLogs(ctx context.Context, ownerID, habitID uuid.UUID, startDate, endDate *string, status *models.LogStatus) ([]*models.HabitLog, error) {
	if _, err := s.getOwned(ctx, ownerID, habitID, false); err != nil {
		return nil, err
	}

	for _, d := range []*string{startDate, endDate} {
		if d == nil {
			continue
		}
		if _, err := dates.Parse(*d); err != nil {
			return nil, invalidInputf("%v", err)
		}
	}
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
	}

	logs, err := s.logs.GetByHabit(ctx, habitID, startDate, endDate, status)
	if err != nil {
		return nil, storeErr(err)
	}
	return logs, nil
}

// GetLogForDay returns the log for (habit, day), or nil when the day is unlogged
func (s *Service) GetLogForDay(ctx context.Context, ownerID, habitID uuid.UUID, date string) (*models.HabitLog, error) {
	if _, err := s.getOwned(ctx, ownerID, habitID, false); err != nil {
		return nil, err
	}
	if _, err := dates.Parse(date); err != nil {
		return nil, invalidInputf("%v", err)
	}

	log, err := s.logs.GetForDay(ctx, habitID, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return log, nil
}

// DeleteLog hard-deletes a single day's log (undo) and recomputes
func (s *Service) DeleteLog(ctx context.Context, ownerID, habitID, logID uuid.UUID) error {
	habit, err := s.getOwned(ctx, ownerID, habitID, false)
	if err != nil {
		return err
	}

	log, err := s.logs.GetByID(ctx, logID)
	if err != nil {
		return storeErr(err)
	}
	if log.HabitID != habitID || log.OwnerID != ownerID {
		return notFoundf("log %s not found", logID)
	}

	if err := s.logs.Delete(ctx, logID); err != nil {
		return storeErr(err)
	}

	s.recomputeOrRepair(ctx, habit)
	return nil
}

// RecomputeHabit recomputes and persists a habit's derived fields from its
// full log history. Used by the repair worker and habitctl; does no owner check.
func (s *Service) RecomputeHabit(ctx context.Context, habitID uuid.UUID) error {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return storeErr(err)
	}
	if err := s.recompute(ctx, habit); err != nil {
		return storeErr(err)
	}
	return nil
}

// RecomputeOwner recomputes derived fields for every habit an owner has,
// archived included
func (s *Service) RecomputeOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	habits, err := s.habits.GetByOwner(ctx, ownerID, true)
	if err != nil {
		return 0, storeErr(err)
	}

	repaired := 0
	for _, habit := range habits {
		if err := s.recompute(ctx, habit); err != nil {
			return repaired, storeErr(err)
		}
		repaired++
	}
	return repaired, nil
}

// getOwned fetches a habit and enforces ownership. Archived habits count as
// absent unless includeArchived is set; registry operations (archive/restore/
// delete) need to see them, log operations must not.
func (s *Service) getOwned(ctx context.Context, ownerID, habitID uuid.UUID, includeArchived bool) (*models.Habit, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, storeErr(err)
	}
	// Indistinguishable from a missing habit on purpose: existence must not
	// leak across owners, and archived habits are absent to log operations.
	if habit.OwnerID != ownerID {
		return nil, notFoundf("habit %s not found", habitID)
	}
	if !includeArchived && !habit.IsActive {
		return nil, notFoundf("habit %s not found", habitID)
	}
	return habit, nil
}

// recomputeOrRepair runs the synchronous recompute after a log write. On
// failure the write stands; the inconsistency is logged and a repair job is
// enqueued so the cache converges out-of-band.
func (s *Service) recomputeOrRepair(ctx context.Context, habit *models.Habit) {
	err := s.recompute(ctx, habit)
	if err == nil {
		return
	}

	s.logger.Error("streak_recompute_failed",
		zap.String("habit_id", habit.ID.String()),
		zap.String("owner_id", habit.OwnerID.String()),
		zap.Error(err),
	)

	if s.repair == nil {
		s.logger.Warn("repair_queue_not_configured",
			zap.String("habit_id", habit.ID.String()),
		)
		return
	}

	job := queue.NewJob(queue.JobTypeStreakRepair, habit.OwnerID, &habit.ID)
	notBefore := time.Now().Add(repairDebounce)
	job.NotBefore = &notBefore

	if err := s.repair.Enqueue(ctx, job); err != nil {
		s.logger.Error("failed_to_enqueue_streak_repair_job",
			zap.String("habit_id", habit.ID.String()),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("enqueued_streak_repair_job",
		zap.String("habit_id", habit.ID.String()),
		zap.Duration("debounce_delay", repairDebounce),
	)
}

// recompute derives streak_count, best_streak and total_completions from the
// full log history and persists them through the single derived-field writer.
func (s *Service) recompute(ctx context.Context, habit *models.Habit) error {
	logs, err := s.logs.GetByHabit(ctx, habit.ID, nil, nil, nil)
	if err != nil {
		return err
	}

	asOf := latestLoggedDay(logs)
	current := 0
	if asOf != nil {
		current = streak.Current(logs, *asOf)
	}
	best := streak.Best(habit.BestStreak, current)
	total := streak.TotalCompletions(logs)

	if err := s.habits.UpdateDerivedFields(ctx, habit.ID, current, best, total); err != nil {
		return err
	}

	habit.StreakCount = current
	habit.BestStreak = best
	habit.TotalCompletions = total
	return nil
}

// latestLoggedDay returns the most recent logged day; the streak walk uses the
// caller's last-written "today" as its reference point since the engine never
// resolves timezones itself.
func latestLoggedDay(logs []*models.HabitLog) *time.Time {
	var latest *time.Time
	for _, l := range logs {
		day, err := dates.Parse(l.Date)
		if err != nil {
			continue
		}
		if latest == nil || day.After(*latest) {
			latest = &day
		}
	}
	return latest
}

func (s *Service) withSchedule(ctx context.Context, habit *models.Habit, today time.Time) (*HabitDetail, error) {
	lastDay, err := s.logs.LastQualifyingDay(ctx, habit.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	var last *time.Time
	if lastDay != nil {
		day, err := dates.Parse(*lastDay)
		if err == nil {
			last = &day
		}
	}

	return &HabitDetail{
		Habit:       habit,
		NextDueDate: dates.Format(schedule.NextDue(habit, last, today)),
		IsDueToday:  habit.IsActive && schedule.IsDueToday(habit, last, today),
	}, nil
}

func validateFrequency(ft models.FrequencyType, value int) error {
	switch ft {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyCustom:
	default:
		return invalidInputf("invalid frequency_type: %s (must be 'daily', 'weekly', 'monthly', or 'custom')", ft)
	}
	if value < 1 {
		return invalidInputf("frequency_value must be a positive integer")
	}
	return nil
}

func validateStatus(status models.LogStatus) error {
	switch status {
	case models.LogStatusCompleted, models.LogStatusPartial, models.LogStatusSkipped, models.LogStatusFailed:
		return nil
	default:
		return invalidInputf("invalid status: %s (must be 'completed', 'partial', 'skipped', or 'failed')", status)
	}
}

func validateLogInput(input LogInput) error {
	if _, err := dates.Parse(input.Date); err != nil {
		return invalidInputf("%v", err)
	}
	if err := validateStatus(input.Status); err != nil {
		return err
	}
	if input.CompletionCount != nil && *input.CompletionCount < 0 {
		return invalidInputf("completion_count cannot be negative")
	}
	for name, rating := range map[string]*int{
		"quality_rating": input.QualityRating,
		"mood_before":    input.MoodBefore,
		"mood_after":     input.MoodAfter,
	} {
		if rating == nil {
			continue
		}
		if *rating < models.MinRating || *rating > models.MaxRating {
			return invalidInputf("%s must be between %d and %d", name, models.MinRating, models.MaxRating)
		}
	}
	return nil
}
