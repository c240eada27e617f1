package habits

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/models"
	"github.com/habitkit/habit-api/internal/queue"
	"go.uber.org/zap"
)

// fakeHabitRepo is an in-memory HabitRepositoryInterface
type fakeHabitRepo struct {
	habits       map[uuid.UUID]*models.Habit
	failDerived  bool
	derivedCalls int
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{habits: make(map[uuid.UUID]*models.Habit)}
}

func (r *fakeHabitRepo) Create(_ context.Context, habit *models.Habit) error {
	h := *habit
	h.IsActive = true
	r.habits[habit.ID] = &h
	habit.IsActive = true
	return nil
}

func (r *fakeHabitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Habit, error) {
	habit, ok := r.habits[id]
	if !ok {
		return nil, fmt.Errorf("habit %s: %w", id, database.ErrNotFound)
	}
	h := *habit
	return &h, nil
}

func (r *fakeHabitRepo) GetByOwner(_ context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.Habit, error) {
	var out []*models.Habit
	for _, habit := range r.habits {
		if habit.OwnerID != ownerID {
			continue
		}
		if !includeArchived && !habit.IsActive {
			continue
		}
		h := *habit
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeHabitRepo) GetByOwnerPaginated(ctx context.Context, ownerID uuid.UUID, includeArchived bool, page, pageSize int) ([]*models.Habit, int, error) {
	all, err := r.GetByOwner(ctx, ownerID, includeArchived)
	if err != nil {
		return nil, 0, err
	}
	return all, len(all), nil
}

func (r *fakeHabitRepo) Update(_ context.Context, habit *models.Habit) error {
	stored, ok := r.habits[habit.ID]
	if !ok {
		return database.ErrNotFound
	}
	stored.Name = habit.Name
	stored.FrequencyType = habit.FrequencyType
	stored.FrequencyValue = habit.FrequencyValue
	stored.TargetCount = habit.TargetCount
	stored.Color = habit.Color
	return nil
}

func (r *fakeHabitRepo) UpdateDerivedFields(_ context.Context, id uuid.UUID, streak, bestStreak, totalCompletions int) error {
	r.derivedCalls++
	if r.failDerived {
		return errors.New("connection reset")
	}
	stored, ok := r.habits[id]
	if !ok {
		return database.ErrNotFound
	}
	stored.StreakCount = streak
	stored.BestStreak = bestStreak
	stored.TotalCompletions = totalCompletions
	return nil
}

func (r *fakeHabitRepo) Archive(_ context.Context, id uuid.UUID) error {
	stored, ok := r.habits[id]
	if !ok {
		return database.ErrNotFound
	}
	stored.IsActive = false
	return nil
}

func (r *fakeHabitRepo) Restore(_ context.Context, id uuid.UUID) error {
	stored, ok := r.habits[id]
	if !ok {
		return database.ErrNotFound
	}
	stored.IsActive = true
	return nil
}

func (r *fakeHabitRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.habits[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.habits, id)
	return nil
}

func (r *fakeHabitRepo) DeleteArchivedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// fakeLogRepo is an in-memory HabitLogRepositoryInterface keyed by (habit, day)
type fakeLogRepo struct {
	logs map[string]*models.HabitLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string]*models.HabitLog)}
}

func logKey(habitID uuid.UUID, date string) string {
	return habitID.String() + "|" + date
}

func (r *fakeLogRepo) Upsert(_ context.Context, log *models.HabitLog) error {
	key := logKey(log.HabitID, log.Date)
	if existing, ok := r.logs[key]; ok {
		log.ID = existing.ID
	}
	l := *log
	r.logs[key] = &l
	return nil
}

func (r *fakeLogRepo) GetByID(_ context.Context, id uuid.UUID) (*models.HabitLog, error) {
	for _, log := range r.logs {
		if log.ID == id {
			l := *log
			return &l, nil
		}
	}
	return nil, fmt.Errorf("log %s: %w", id, database.ErrNotFound)
}

func (r *fakeLogRepo) GetForDay(_ context.Context, habitID uuid.UUID, date string) (*models.HabitLog, error) {
	log, ok := r.logs[logKey(habitID, date)]
	if !ok {
		return nil, nil
	}
	l := *log
	return &l, nil
}

func (r *fakeLogRepo) GetByHabit(_ context.Context, habitID uuid.UUID, startDate, endDate *string, status *models.LogStatus) ([]*models.HabitLog, error) {
	var out []*models.HabitLog
	for _, log := range r.logs {
		if log.HabitID != habitID {
			continue
		}
		if startDate != nil && log.Date < *startDate {
			continue
		}
		if endDate != nil && log.Date > *endDate {
			continue
		}
		if status != nil && log.Status != *status {
			continue
		}
		l := *log
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *fakeLogRepo) GetByOwnerRange(_ context.Context, ownerID uuid.UUID, startDate, endDate string) ([]*models.HabitLog, error) {
	var out []*models.HabitLog
	for _, log := range r.logs {
		if log.OwnerID != ownerID || log.Date < startDate || log.Date > endDate {
			continue
		}
		l := *log
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *fakeLogRepo) LastQualifyingDay(_ context.Context, habitID uuid.UUID) (*string, error) {
	var last *string
	for _, log := range r.logs {
		if log.HabitID != habitID || !log.Qualifies() {
			continue
		}
		d := log.Date
		if last == nil || d > *last {
			last = &d
		}
	}
	return last, nil
}

func (r *fakeLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	for key, log := range r.logs {
		if log.ID == id {
			delete(r.logs, key)
			return nil
		}
	}
	return database.ErrNotFound
}

// fakeEnqueuer records enqueued repair jobs
type fakeEnqueuer struct {
	jobs []*queue.Job
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, job *queue.Job) error {
	e.jobs = append(e.jobs, job)
	return nil
}

type testEnv struct {
	svc     *Service
	habits  *fakeHabitRepo
	logs    *fakeLogRepo
	repair  *fakeEnqueuer
	ownerID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	habits := newFakeHabitRepo()
	logs := newFakeLogRepo()
	repair := &fakeEnqueuer{}
	return &testEnv{
		svc:     NewService(habits, logs, zap.NewNop(), WithRepairQueue(repair)),
		habits:  habits,
		logs:    logs,
		repair:  repair,
		ownerID: uuid.New(),
	}
}

func (e *testEnv) mustCreate(t *testing.T, input CreateHabitInput) *models.Habit {
	t.Helper()
	habit, err := e.svc.CreateHabit(context.Background(), e.ownerID, input)
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	return habit
}

func dailyHabit() CreateHabitInput {
	return CreateHabitInput{
		Name:           "Morning run",
		FrequencyType:  models.FrequencyDaily,
		FrequencyValue: 1,
		TargetCount:    1,
	}
}

func TestCreateHabit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreateHabitInput
	}{
		{
			name:  "empty name",
			input: CreateHabitInput{FrequencyType: models.FrequencyDaily, FrequencyValue: 1, TargetCount: 1},
		},
		{
			name:  "unknown frequency type",
			input: CreateHabitInput{Name: "x", FrequencyType: "hourly", FrequencyValue: 1, TargetCount: 1},
		},
		{
			name:  "zero frequency value",
			input: CreateHabitInput{Name: "x", FrequencyType: models.FrequencyWeekly, FrequencyValue: 0, TargetCount: 1},
		},
		{
			name:  "zero target count",
			input: CreateHabitInput{Name: "x", FrequencyType: models.FrequencyDaily, FrequencyValue: 1, TargetCount: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			_, err := env.svc.CreateHabit(context.Background(), env.ownerID, tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("CreateHabit() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLogCompletion_UpdatesDerivedFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	days := []string{"2024-06-01", "2024-06-02", "2024-06-03"}
	for _, day := range days {
		_, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
			Date:   day,
			Status: models.LogStatusCompleted,
		})
		if err != nil {
			t.Fatalf("LogCompletion(%s) error = %v", day, err)
		}
	}

	stored := env.habits.habits[habit.ID]
	if stored.StreakCount != 3 {
		t.Errorf("StreakCount = %d, want 3", stored.StreakCount)
	}
	if stored.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", stored.BestStreak)
	}
	if stored.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", stored.TotalCompletions)
	}
}

func TestLogCompletion_SameDayOverwrites(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	first, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	second, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusSkipped,
	})
	if err != nil {
		t.Fatalf("LogCompletion() second write error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("overwrite produced a new log id %s, want %s", second.ID, first.ID)
	}

	stored := env.habits.habits[habit.ID]
	if stored.StreakCount != 0 {
		t.Errorf("StreakCount after skip overwrite = %d, want 0", stored.StreakCount)
	}
	if stored.TotalCompletions != 0 {
		t.Errorf("TotalCompletions after skip overwrite = %d, want 0", stored.TotalCompletions)
	}
}

func TestLogCompletion_BestStreakNeverDecreases(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	for _, day := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		if _, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
			Date:   day,
			Status: models.LogStatusCompleted,
		}); err != nil {
			t.Fatalf("LogCompletion(%s) error = %v", day, err)
		}
	}

	// A failed day after a gap resets the current streak but not the best.
	if _, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-10",
		Status: models.LogStatusFailed,
	}); err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	stored := env.habits.habits[habit.ID]
	if stored.StreakCount != 0 {
		t.Errorf("StreakCount = %d, want 0", stored.StreakCount)
	}
	if stored.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", stored.BestStreak)
	}
}

func TestLogCompletion_DefaultsCompletionCount(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	input := dailyHabit()
	input.TargetCount = 5
	habit := env.mustCreate(t, input)

	log, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	if log.CompletionCount != 5 {
		t.Errorf("CompletionCount = %d, want target snapshot 5", log.CompletionCount)
	}
	if log.TargetCount != 5 {
		t.Errorf("TargetCount = %d, want 5", log.TargetCount)
	}
}

func TestLogCompletion_TargetSnapshotSurvivesHabitEdit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	input := dailyHabit()
	input.TargetCount = 3
	habit := env.mustCreate(t, input)

	log, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	newTarget := 10
	if _, err := env.svc.UpdateHabit(context.Background(), env.ownerID, habit.ID, UpdateHabitInput{
		TargetCount: &newTarget,
	}); err != nil {
		t.Fatalf("UpdateHabit() error = %v", err)
	}

	stored, err := env.logs.GetByID(context.Background(), log.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.TargetCount != 3 {
		t.Errorf("log TargetCount after habit edit = %d, want original snapshot 3", stored.TargetCount)
	}
}

func TestLogCompletion_Validation(t *testing.T) {
	t.Parallel()

	badRating := 11
	negativeCount := -1

	tests := []struct {
		name  string
		input LogInput
	}{
		{name: "malformed date", input: LogInput{Date: "June 1st", Status: models.LogStatusCompleted}},
		{name: "impossible date", input: LogInput{Date: "2024-02-30", Status: models.LogStatusCompleted}},
		{name: "unknown status", input: LogInput{Date: "2024-06-01", Status: "done"}},
		{name: "rating out of range", input: LogInput{Date: "2024-06-01", Status: models.LogStatusCompleted, QualityRating: &badRating}},
		{name: "negative completion count", input: LogInput{Date: "2024-06-01", Status: models.LogStatusCompleted, CompletionCount: &negativeCount}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			habit := env.mustCreate(t, dailyHabit())
			_, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("LogCompletion() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLogCompletion_ArchivedHabitIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	if err := env.svc.ArchiveHabit(context.Background(), env.ownerID, habit.ID); err != nil {
		t.Fatalf("ArchiveHabit() error = %v", err)
	}

	_, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LogCompletion() on archived habit error = %v, want ErrNotFound", err)
	}
}

func TestLogCompletion_OtherOwnerIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	stranger := uuid.New()
	_, err := env.svc.LogCompletion(context.Background(), stranger, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LogCompletion() as other owner error = %v, want ErrNotFound", err)
	}
}

func TestLogCompletion_RecomputeFailureEnqueuesRepair(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	env.habits.failDerived = true

	log, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v, want success despite recompute failure", err)
	}
	if log == nil {
		t.Fatal("LogCompletion() returned nil log")
	}

	// The log write must stand even though the recompute failed.
	stored, err := env.logs.GetForDay(context.Background(), habit.ID, "2024-06-01")
	if err != nil || stored == nil {
		t.Fatalf("GetForDay() = (%v, %v), want stored log", stored, err)
	}

	if len(env.repair.jobs) != 1 {
		t.Fatalf("repair jobs enqueued = %d, want 1", len(env.repair.jobs))
	}
	job := env.repair.jobs[0]
	if job.Type != queue.JobTypeStreakRepair {
		t.Errorf("job.Type = %s, want %s", job.Type, queue.JobTypeStreakRepair)
	}
	if job.HabitID == nil || *job.HabitID != habit.ID {
		t.Errorf("job.HabitID = %v, want %s", job.HabitID, habit.ID)
	}
	if job.NotBefore == nil {
		t.Error("job.NotBefore = nil, want debounce delay")
	}
}

func TestDeleteLog_Recomputes(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	log, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	if err := env.svc.DeleteLog(context.Background(), env.ownerID, habit.ID, log.ID); err != nil {
		t.Fatalf("DeleteLog() error = %v", err)
	}

	stored := env.habits.habits[habit.ID]
	if stored.StreakCount != 0 || stored.TotalCompletions != 0 {
		t.Errorf("after undo StreakCount = %d, TotalCompletions = %d, want 0, 0",
			stored.StreakCount, stored.TotalCompletions)
	}
}

func TestDeleteLog_WrongHabitIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habitA := env.mustCreate(t, dailyHabit())
	inputB := dailyHabit()
	inputB.Name = "Read"
	habitB := env.mustCreate(t, inputB)

	log, err := env.svc.LogCompletion(context.Background(), env.ownerID, habitA.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	})
	if err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	err = env.svc.DeleteLog(context.Background(), env.ownerID, habitB.ID, log.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteLog() across habits error = %v, want ErrNotFound", err)
	}
}

func TestDeleteHabit_RequiresPermanent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	err := env.svc.DeleteHabit(context.Background(), env.ownerID, habit.ID, false)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("DeleteHabit(permanent=false) error = %v, want ErrInvalidInput", err)
	}
	if _, ok := env.habits.habits[habit.ID]; !ok {
		t.Error("habit was deleted without permanent=true")
	}

	if err := env.svc.DeleteHabit(context.Background(), env.ownerID, habit.ID, true); err != nil {
		t.Fatalf("DeleteHabit(permanent=true) error = %v", err)
	}
	if _, ok := env.habits.habits[habit.ID]; ok {
		t.Error("habit still present after permanent delete")
	}
}

func TestArchiveRestore_Roundtrip(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habit := env.mustCreate(t, dailyHabit())

	if _, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2024-06-01",
		Status: models.LogStatusCompleted,
	}); err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	if err := env.svc.ArchiveHabit(context.Background(), env.ownerID, habit.ID); err != nil {
		t.Fatalf("ArchiveHabit() error = %v", err)
	}
	// Archiving again is a no-op, not an error.
	if err := env.svc.ArchiveHabit(context.Background(), env.ownerID, habit.ID); err != nil {
		t.Fatalf("ArchiveHabit() repeat error = %v", err)
	}

	if err := env.svc.RestoreHabit(context.Background(), env.ownerID, habit.ID); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}

	logs, err := env.svc.ListLogs(context.Background(), env.ownerID, habit.ID, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListLogs() after restore error = %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("logs after archive/restore = %d, want 1 (history preserved)", len(logs))
	}
}

func TestGetHabit_ScheduleView(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	input := dailyHabit()
	input.Name = "Review budget"
	input.FrequencyType = models.FrequencyMonthly
	input.FrequencyValue = 1
	habit := env.mustCreate(t, input)

	if _, err := env.svc.LogCompletion(context.Background(), env.ownerID, habit.ID, LogInput{
		Date:   "2023-01-31",
		Status: models.LogStatusCompleted,
	}); err != nil {
		t.Fatalf("LogCompletion() error = %v", err)
	}

	today := time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC)
	detail, err := env.svc.GetHabit(context.Background(), env.ownerID, habit.ID, today)
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}

	if detail.NextDueDate != "2023-02-28" {
		t.Errorf("NextDueDate = %s, want clamped 2023-02-28", detail.NextDueDate)
	}
	if detail.IsDueToday {
		t.Error("IsDueToday = true before the clamped due date")
	}
}

func TestRecomputeOwner_RepairsEveryHabit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	habitA := env.mustCreate(t, dailyHabit())
	inputB := dailyHabit()
	inputB.Name = "Stretch"
	habitB := env.mustCreate(t, inputB)

	for _, id := range []uuid.UUID{habitA.ID, habitB.ID} {
		if _, err := env.svc.LogCompletion(context.Background(), env.ownerID, id, LogInput{
			Date:   "2024-06-01",
			Status: models.LogStatusCompleted,
		}); err != nil {
			t.Fatalf("LogCompletion() error = %v", err)
		}
	}

	// Corrupt the cached fields, then repair.
	env.habits.habits[habitA.ID].StreakCount = 99
	env.habits.habits[habitB.ID].TotalCompletions = -4

	repaired, err := env.svc.RecomputeOwner(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("RecomputeOwner() error = %v", err)
	}
	if repaired != 2 {
		t.Errorf("repaired = %d, want 2", repaired)
	}

	if got := env.habits.habits[habitA.ID].StreakCount; got != 1 {
		t.Errorf("habitA StreakCount = %d, want 1", got)
	}
	if got := env.habits.habits[habitB.ID].TotalCompletions; got != 1 {
		t.Errorf("habitB TotalCompletions = %d, want 1", got)
	}
}
