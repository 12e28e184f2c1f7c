// Package conflicts implements the booking conflict-detection engine: seven
// independent constraint checks fanned out concurrently over read-only data
// ports, merged into one classified conflict list.
//
// The engine is deliberately fail-open. A failed, panicking or timed-out
// check degrades to "no conflicts from that check"; nothing here ever blocks
// a booking because a data source is slow or broken.
package conflicts

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// Default deadlines: one for the six-check group, a separate one for the
// student check, which can fan out to every booking of every listed student.
const (
	DefaultGroupTimeout   = 10 * time.Second
	DefaultStudentTimeout = 10 * time.Second
)

// Service сервис проверки конфликтов бронирования
type Service struct {
	settings        SettingsPort
	closures        ClosurePort
	teacherSchedule TeacherSchedulePort
	lessons         LessonPort
	rooms           RoomPort
	students        StudentPort
	logger          Logger

	groupTimeout   time.Duration
	studentTimeout time.Duration
}

// NewService создает новый экземпляр сервиса проверки конфликтов
func NewService(
	settings SettingsPort,
	closures ClosurePort,
	teacherSchedule TeacherSchedulePort,
	lessons LessonPort,
	rooms RoomPort,
	students StudentPort,
	logger Logger,
) *Service {
	return &Service{
		settings:        settings,
		closures:        closures,
		teacherSchedule: teacherSchedule,
		lessons:         lessons,
		rooms:           rooms,
		students:        students,
		logger:          logger,
		groupTimeout:    DefaultGroupTimeout,
		studentTimeout:  DefaultStudentTimeout,
	}
}

// SetTimeouts overrides the group and student deadlines (used from config).
func (s *Service) SetTimeouts(group, student time.Duration) {
	if group > 0 {
		s.groupTimeout = group
	}
	if student > 0 {
		s.studentTimeout = student
	}
}

// CheckConflicts evaluates the proposed booking against all seven scheduling
// constraints and returns the merged conflict list in a fixed order:
// closure, availability, time_off, teacher, room, external_calendar, student.
// The list is never nil and the call never returns an error: internal
// failures and timeouts degrade to fewer detected conflicts.
func (s *Service) CheckConflicts(ctx context.Context, req *domain.BookingRequest, orgID int64) (conflicts []domain.Conflict) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("CheckConflicts: unexpected failure for org=%d: %v", orgID, r)
			conflicts = []domain.Conflict{}
		}
	}()

	conflicts = []domain.Conflict{}
	if req == nil || orgID <= 0 {
		return conflicts
	}

	s.logger.Info("CheckConflicts: org=%d, window=%s..%s, teacher=%v, room=%v, students=%d",
		orgID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339),
		req.Teacher.Kind, req.RoomID != nil, len(req.StudentIDs))

	policy := s.loadPolicy(ctx, orgID)

	groupCtx, cancelGroup := context.WithTimeout(ctx, s.groupTimeout)
	defer cancelGroup()
	studentCtx, cancelStudent := context.WithTimeout(ctx, s.studentTimeout)
	defer cancelStudent()

	// The six-check group, in merge order. A check whose precondition is
	// unmet contributes an empty result without running.
	checks := []struct {
		name    string
		enabled bool
		fn      checkFunc
	}{
		{"closure", true, func(c context.Context) ([]domain.Conflict, error) {
			return s.checkClosures(c, req, orgID, policy)
		}},
		{"availability", req.Teacher.IsLinked(), func(c context.Context) ([]domain.Conflict, error) {
			return s.checkAvailability(c, req, orgID, policy)
		}},
		{"time_off", req.Teacher.IsLinked(), func(c context.Context) ([]domain.Conflict, error) {
			return s.checkTimeOff(c, req, orgID)
		}},
		{"teacher", req.Teacher.IsPresent(), func(c context.Context) ([]domain.Conflict, error) {
			return s.checkTeacherOverlap(c, req, orgID, policy)
		}},
		{"room", req.RoomID != nil, func(c context.Context) ([]domain.Conflict, error) {
			return s.checkRoom(c, req, orgID)
		}},
		{"external_calendar", req.Teacher.IsLinked(), func(c context.Context) ([]domain.Conflict, error) {
			return s.checkExternalCalendar(c, req, orgID)
		}},
	}

	results := make([][]domain.Conflict, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		if !check.enabled {
			continue
		}
		wg.Add(1)
		go func(i int, name string, fn checkFunc) {
			defer wg.Done()
			results[i] = s.runChecked(groupCtx, name, fn)
		}(i, check.name, check.fn)
	}

	groupDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(groupDone)
	}()

	// The student check runs outside the group under its own deadline, so
	// the heaviest read can neither delay nor invalidate the other six.
	studentCh := make(chan []domain.Conflict, 1)
	if len(req.StudentIDs) > 0 {
		go func() {
			studentCh <- s.runChecked(studentCtx, "student", func(c context.Context) ([]domain.Conflict, error) {
				return s.checkStudents(c, req, orgID)
			})
		}()
	} else {
		studentCh <- nil
	}

	select {
	case <-groupDone:
		for _, result := range results {
			conflicts = append(conflicts, result...)
		}
	case <-groupCtx.Done():
		s.logger.Warn("CheckConflicts: check group timed out after %s for org=%d, proceeding without its results",
			s.groupTimeout, orgID)
	}

	select {
	case studentConflicts := <-studentCh:
		conflicts = append(conflicts, studentConflicts...)
	case <-studentCtx.Done():
		s.logger.Warn("CheckConflicts: student check timed out after %s for org=%d, proceeding without its results",
			s.studentTimeout, orgID)
	}

	s.logger.Info("CheckConflicts: org=%d, %d conflict(s) detected", orgID, len(conflicts))
	return conflicts
}

// loadPolicy resolves the org policy once before dispatch. Lookup failure is
// itself fail-open: the checks run with the zero-valued defaults.
func (s *Service) loadPolicy(ctx context.Context, orgID int64) domain.OrgPolicy {
	policy, err := s.settings.GetPolicy(ctx, orgID)
	if err != nil {
		s.logger.Warn("CheckConflicts: org policy unavailable for org=%d, using defaults: %v", orgID, err)
		return domain.DefaultOrgPolicy()
	}
	if policy.Timezone == "" {
		policy.Timezone = domain.DefaultTimezone
	}
	return *policy
}
