package conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

func fullRequest() *domain.BookingRequest {
	return &domain.BookingRequest{
		Start:      at(10, 0),
		End:        at(10, 30),
		Teacher:    domain.LinkedTeacher(7),
		RoomID:     ptrInt64(5),
		LocationID: ptrInt64(1),
		StudentIDs: []int64{1},
	}
}

func TestCheckConflictsMergeOrder(t *testing.T) {
	f := newFakePorts()
	f.policy = &domain.OrgPolicy{BlockOnClosure: true, TravelBufferMinutes: 15, Timezone: "UTC"}
	f.closures = []domain.Closure{{Reason: "Holiday", AppliesToAllLocations: true}}
	f.timeOff = []domain.TimeOff{{Reason: "Sick", Start: at(9, 0), End: at(11, 0)}}
	f.windows = map[int][]domain.AvailabilityWindow{1: {{
		StartTime: mustTimeString(t, "14:00"),
		EndTime:   mustTimeString(t, "17:00"),
	}}}
	f.teacherLessons = []domain.Lesson{{
		ID: 11, Title: "Piano", Start: at(10, 0), End: at(10, 30),
		LocationID: ptrInt64(1), Status: domain.StatusScheduled,
	}}
	f.room = &domain.Room{ID: 5, Name: "Studio 1", MaxCapacity: ptrInt(0)}
	f.busyBlocks = []domain.BusyBlock{{Title: "Dentist", Start: at(10, 0), End: at(10, 30)}}
	f.participations = []fakeParticipation{
		{StudentID: 1, LessonID: 99, Status: domain.StatusScheduled, Start: at(10, 0), End: at(10, 30)},
	}
	f.students = []domain.Student{{ID: 1, FirstName: "Ada", LastName: "Lehto"}}

	s := newTestService(f)
	conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)

	var types []domain.ConflictType
	for _, c := range conflicts {
		types = append(types, c.Type)
	}
	assert.Equal(t, []domain.ConflictType{
		domain.ConflictClosure,
		domain.ConflictAvailability,
		domain.ConflictTimeOff,
		domain.ConflictTeacher,
		domain.ConflictRoom,
		domain.ConflictExternalCalendar,
		domain.ConflictStudent,
	}, types)
}

func TestCheckConflictsCleanBooking(t *testing.T) {
	f := newFakePorts()
	s := newTestService(f)

	conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
	require.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsPreconditions(t *testing.T) {
	t.Run("no teacher skips the teacher-bound checks", func(t *testing.T) {
		f := newFakePorts()
		s := newTestService(f)

		req := fullRequest()
		req.Teacher = domain.TeacherIdentity{}
		s.CheckConflicts(context.Background(), req, 1)

		assert.Equal(t, 1, f.callCount("ListClosuresByDate"))
		assert.Zero(t, f.callCount("ListAvailability"))
		assert.Zero(t, f.callCount("ListTimeOff"))
		assert.Zero(t, f.callCount("ListBusyBlocks"))
		assert.Zero(t, f.callCount("ListByLinkedTeacher"))
		assert.Zero(t, f.callCount("ListByStandaloneTeacher"))
	})

	t.Run("standalone teacher skips linked-only checks but not overlap", func(t *testing.T) {
		f := newFakePorts()
		s := newTestService(f)

		req := fullRequest()
		req.Teacher = domain.StandaloneTeacher(3)
		s.CheckConflicts(context.Background(), req, 1)

		assert.Zero(t, f.callCount("ListAvailability"))
		assert.Zero(t, f.callCount("ListTimeOff"))
		assert.Zero(t, f.callCount("ListBusyBlocks"))
		assert.Equal(t, 1, f.callCount("ListByStandaloneTeacher"))
	})

	t.Run("no room skips the room check", func(t *testing.T) {
		f := newFakePorts()
		s := newTestService(f)

		req := fullRequest()
		req.RoomID = nil
		s.CheckConflicts(context.Background(), req, 1)

		assert.Zero(t, f.callCount("GetByID"))
		assert.Zero(t, f.callCount("ListByRoom"))
	})

	t.Run("no students skips the student check", func(t *testing.T) {
		f := newFakePorts()
		s := newTestService(f)

		req := fullRequest()
		req.StudentIDs = nil
		s.CheckConflicts(context.Background(), req, 1)

		assert.Zero(t, f.callCount("ListParticipations"))
	})
}

func TestCheckConflictsInvalidInput(t *testing.T) {
	f := newFakePorts()
	s := newTestService(f)

	assert.Empty(t, s.CheckConflicts(context.Background(), nil, 1))
	assert.Empty(t, s.CheckConflicts(context.Background(), fullRequest(), 0))
	assert.Zero(t, f.callCount("ListClosuresByDate"))
}

func TestCheckConflictsExcludeLesson(t *testing.T) {
	// Rescheduling must not make a lesson conflict with itself.
	f := newFakePorts()
	f.teacherLessons = []domain.Lesson{{
		ID: 11, Title: "Piano", Start: at(10, 0), End: at(10, 30),
		LocationID: ptrInt64(1), Status: domain.StatusScheduled,
	}}
	f.participations = []fakeParticipation{
		{StudentID: 1, LessonID: 11, Status: domain.StatusScheduled, Start: at(10, 0), End: at(10, 30)},
	}
	s := newTestService(f)

	req := fullRequest()
	req.ExcludeLessonID = ptrInt64(11)
	conflicts := s.CheckConflicts(context.Background(), req, 1)
	assert.Empty(t, conflicts)
}

func TestCheckConflictsCheckIsolation(t *testing.T) {
	t.Run("failed closure check leaves the others intact", func(t *testing.T) {
		f := newFakePorts()
		f.closuresErr = errFakeQuery
		f.teacherLessons = []domain.Lesson{{
			ID: 11, Title: "Piano", Start: at(10, 0), End: at(10, 30),
			LocationID: ptrInt64(1), Status: domain.StatusScheduled,
		}}
		s := newTestService(f)

		conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
		require.Len(t, conflicts, 1)
		assert.Equal(t, domain.ConflictTeacher, conflicts[0].Type)
	})

	t.Run("panicking closure check leaves the others intact", func(t *testing.T) {
		f := newFakePorts()
		f.closuresPanic = true
		f.teacherLessons = []domain.Lesson{{
			ID: 11, Title: "Piano", Start: at(10, 0), End: at(10, 30),
			LocationID: ptrInt64(1), Status: domain.StatusScheduled,
		}}
		s := newTestService(f)

		conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
		require.Len(t, conflicts, 1)
		assert.Equal(t, domain.ConflictTeacher, conflicts[0].Type)
	})

	t.Run("policy lookup failure falls back to defaults", func(t *testing.T) {
		f := newFakePorts()
		f.policyErr = errFakeQuery
		f.closures = []domain.Closure{{Reason: "Holiday", AppliesToAllLocations: true}}
		s := newTestService(f)

		conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
		require.Len(t, conflicts, 1)
		// Default policy does not block on closure.
		assert.Equal(t, domain.SeverityWarning, conflicts[0].Severity)
	})
}

func TestCheckConflictsGroupTimeout(t *testing.T) {
	f := newFakePorts()
	f.closuresBlock = true
	f.participations = []fakeParticipation{
		{StudentID: 1, LessonID: 99, Status: domain.StatusScheduled, Start: at(10, 0), End: at(10, 30)},
	}
	s := newTestService(f)
	s.SetTimeouts(40*time.Millisecond, 2*time.Second)

	started := time.Now()
	conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
	elapsed := time.Since(started)

	// The group result is abandoned wholesale, but the independently
	// scheduled student check still reports.
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictStudent, conflicts[0].Type)
	assert.Less(t, elapsed, time.Second)
}

func TestCheckConflictsStudentTimeout(t *testing.T) {
	f := newFakePorts()
	f.participationsBlock = true
	f.teacherLessons = []domain.Lesson{{
		ID: 11, Title: "Piano", Start: at(10, 0), End: at(10, 30),
		LocationID: ptrInt64(1), Status: domain.StatusScheduled,
	}}
	s := newTestService(f)
	s.SetTimeouts(2*time.Second, 40*time.Millisecond)

	started := time.Now()
	conflicts := s.CheckConflicts(context.Background(), fullRequest(), 1)
	elapsed := time.Since(started)

	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictTeacher, conflicts[0].Type)
	assert.Less(t, elapsed, time.Second)
}

func TestSetTimeoutsIgnoresNonPositive(t *testing.T) {
	s := newTestService(newFakePorts())
	s.SetTimeouts(0, -time.Second)
	assert.Equal(t, DefaultGroupTimeout, s.groupTimeout)
	assert.Equal(t, DefaultStudentTimeout, s.studentTimeout)
}
