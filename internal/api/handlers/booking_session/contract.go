package booking_session

import (
	"context"
	"time"

	"github.com/dkoval85/appointment-service/internal/booking"
	"github.com/dkoval85/appointment-service/pkg/types"
)

// BookingFlow интерфейс пошагового сценария публичной записи
type BookingFlow interface {
	Start(ctx context.Context) (*booking.Session, error)
	Get(ctx context.Context, sessionID string) (*booking.Session, error)
	SelectService(ctx context.Context, sessionID string, serviceID int64) (*booking.Session, error)
	SelectEmployee(ctx context.Context, sessionID string, employeeID int64) (*booking.Session, error)
	SelectDateTime(ctx context.Context, sessionID string, date time.Time, startTime types.TimeString) (*booking.Session, error)
	SetContact(ctx context.Context, sessionID string, name, email, phone string, notes *string) (*booking.Session, error)
	Confirm(ctx context.Context, sessionID string) (*booking.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
