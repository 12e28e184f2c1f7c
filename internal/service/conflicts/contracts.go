package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/MSH-ConflictService/internal/domain"
)

// SettingsPort читает политику организации (напрямую или через кэш)
type SettingsPort interface {
	GetPolicy(ctx context.Context, orgID int64) (*domain.OrgPolicy, error)
}

// ClosurePort reads whole-day closure records
type ClosurePort interface {
	ListClosuresByDate(ctx context.Context, orgID int64, date time.Time) ([]domain.Closure, error)
}

// TeacherSchedulePort reads a linked teacher's declared schedule
type TeacherSchedulePort interface {
	ListAvailability(ctx context.Context, orgID, teacherUserID int64, dayOfWeek int) ([]domain.AvailabilityWindow, error)
	ListTimeOff(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.TimeOff, error)
	ListBusyBlocks(ctx context.Context, orgID, teacherUserID int64, start, end time.Time) ([]domain.BusyBlock, error)
}

// LessonPort reads existing bookings and student participations
type LessonPort interface {
	ListByLinkedTeacher(ctx context.Context, orgID, teacherUserID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error)
	ListByStandaloneTeacher(ctx context.Context, orgID, teacherID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error)
	ListByRoom(ctx context.Context, orgID, roomID int64, start, end time.Time, excludeID *int64) ([]domain.Lesson, error)
	ListParticipations(ctx context.Context, orgID int64, studentIDs []int64, excludeID *int64) ([]domain.Participation, error)
}

// RoomPort reads room metadata
type RoomPort interface {
	GetByID(ctx context.Context, roomID int64) (*domain.Room, error)
}

// StudentPort resolves student display names
type StudentPort interface {
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Student, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
