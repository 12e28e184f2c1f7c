package conflicts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var errFakeQuery = errors.New("fake query failure")

// fakeParticipation mirrors the join row the lesson repository produces.
type fakeParticipation struct {
	StudentID int64
	LessonID  int64
	Status    domain.LessonStatus
	Start     time.Time
	End       time.Time
}

// fakePorts implements every engine port over in-memory fixtures, applying
// the same filters the SQL layer applies (non-cancelled, overlap window,
// exclude id).
type fakePorts struct {
	mu    sync.Mutex
	calls map[string]int

	policy    *domain.OrgPolicy
	policyErr error

	closures      []domain.Closure
	closuresErr   error
	closuresPanic bool
	closuresBlock bool

	windows    map[int][]domain.AvailabilityWindow
	windowsErr error

	timeOff    []domain.TimeOff
	timeOffErr error

	busyBlocks []domain.BusyBlock
	busyErr    error

	teacherLessons    []domain.Lesson
	standaloneLessons []domain.Lesson
	roomLessons       []domain.Lesson
	lessonsErr        error
	roomLessonsErr    error

	participations      []fakeParticipation
	participationsErr   error
	participationsBlock bool

	room    *domain.Room
	roomErr error

	students    []domain.Student
	studentsErr error
}

func newFakePorts() *fakePorts {
	return &fakePorts{calls: make(map[string]int)}
}

func (f *fakePorts) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakePorts) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// blockUntilDone parks the caller until the check deadline expires, then
// lingers briefly so the timeout branch is the one the orchestrator sees.
func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	return ctx.Err()
}

func (f *fakePorts) GetPolicy(ctx context.Context, orgID int64) (*domain.OrgPolicy, error) {
	f.record("GetPolicy")
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	if f.policy == nil {
		policy := domain.DefaultOrgPolicy()
		return &policy, nil
	}
	return f.policy, nil
}

func (f *fakePorts) ListClosuresByDate(ctx context.Context, orgID int64, date time.Time) ([]domain.Closure, error) {
	f.record("ListClosuresByDate")
	if f.closuresPanic {
		panic("closure port exploded")
	}
	if f.closuresBlock {
		return nil, blockUntilDone(ctx)
	}
	if f.closuresErr != nil {
		return nil, f.closuresErr
	}
	return f.closures, nil
}

func (f *fakePorts) ListAvailability(ctx context.Context, orgID, teacherUserID int64, dayOfWeek int) ([]domain.AvailabilityWindow, error) {
	f.record("ListAvailability")
	if f.windowsErr != nil {
		return nil, f.windowsErr
	}
	return f.windows[dayOfWeek], nil
}

func (f *fakePorts) ListTimeOff(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.TimeOff, error) {
	f.record("ListTimeOff")
	if f.timeOffErr != nil {
		return nil, f.timeOffErr
	}
	var out []domain.TimeOff
	for _, record := range f.timeOff {
		if domain.TimeRangesOverlap(record.Start, record.End, start, end) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakePorts) ListBusyBlocks(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.BusyBlock, error) {
	f.record("ListBusyBlocks")
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	var out []domain.BusyBlock
	for _, block := range f.busyBlocks {
		if domain.TimeRangesOverlap(block.Start, block.End, start, end) {
			out = append(out, block)
		}
	}
	return out, nil
}

func (f *fakePorts) ListByLinkedTeacher(ctx context.Context, orgID, teacherUserID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	f.record("ListByLinkedTeacher")
	if f.lessonsErr != nil {
		return nil, f.lessonsErr
	}
	return filterLessons(f.teacherLessons, start, end, excludeID), nil
}

func (f *fakePorts) ListByStandaloneTeacher(ctx context.Context, orgID, teacherID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	f.record("ListByStandaloneTeacher")
	if f.lessonsErr != nil {
		return nil, f.lessonsErr
	}
	return filterLessons(f.standaloneLessons, start, end, excludeID), nil
}

func (f *fakePorts) ListByRoom(ctx context.Context, orgID, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error) {
	f.record("ListByRoom")
	if f.roomLessonsErr != nil {
		return nil, f.roomLessonsErr
	}
	return filterLessons(f.roomLessons, start, end, excludeID), nil
}

func (f *fakePorts) ListParticipations(ctx context.Context, orgID int64, studentIDs []int64, excludeID *int64) ([]domain.Participation, error) {
	f.record("ListParticipations")
	if f.participationsBlock {
		return nil, blockUntilDone(ctx)
	}
	if f.participationsErr != nil {
		return nil, f.participationsErr
	}

	wanted := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}

	var out []domain.Participation
	for _, p := range f.participations {
		if !wanted[p.StudentID] || p.Status.IsCancelled() {
			continue
		}
		if excludeID != nil && p.LessonID == *excludeID {
			continue
		}
		out = append(out, domain.Participation{StudentID: p.StudentID, Start: p.Start, End: p.End})
	}
	return out, nil
}

func (f *fakePorts) GetByID(ctx context.Context, roomID int64) (*domain.Room, error) {
	f.record("GetByID")
	if f.roomErr != nil {
		return nil, f.roomErr
	}
	if f.room == nil {
		return nil, errFakeQuery
	}
	return f.room, nil
}

func (f *fakePorts) ListByIDs(ctx context.Context, ids []int64) ([]domain.Student, error) {
	f.record("ListByIDs")
	if f.studentsErr != nil {
		return nil, f.studentsErr
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.Student
	for _, s := range f.students {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func filterLessons(lessons []domain.Lesson, start, end time.Time, excludeID *int64) []domain.Lesson {
	var out []domain.Lesson
	for _, l := range lessons {
		if l.Status.IsCancelled() {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		if !domain.TimeRangesOverlap(l.Start, l.End, start, end) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func newTestService(f *fakePorts) *Service {
	return NewService(f, f, f, f, f, f, nopLogger{})
}

// at builds an instant on a fixed Monday in UTC.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func ptrInt64(v int64) *int64 { return &v }

func ptrInt(v int) *int { return &v }
