package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const bookingColumns = "id, user_id, room_id, start_date, end_date, guest_count, special_requests, total_price, status, created_at, updated_at"

// BookingRepo encapsulates queries against the bookings table.  Nothing
// here checks for overlapping stays; the table accepts any number of
// bookings per room and date range.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(s rowScanner) (*model.Booking, error) {
	var (
		b   model.Booking
		req sql.NullString
	)
	if err := s.Scan(&b.ID, &b.UserID, &b.RoomID, &b.StartDate, &b.EndDate, &b.GuestCount, &req,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.SpecialRequests = stringPtr(req)
	b.StartDate = b.StartDate.UTC()
	b.EndDate = b.EndDate.UTC()
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.NewString()
	b.StartDate = stored(b.StartDate)
	b.EndDate = stored(b.EndDate)
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		b.ID, b.UserID, b.RoomID, b.StartDate, b.EndDate, b.GuestCount, nullString(b.SpecialRequests),
		b.TotalPrice, b.Status, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// ListByUser returns the bookings owned by userID.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return r.query(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY created_at, id", userID)
}

// ListByRooms returns the bookings of any of the given rooms.  An empty
// id list yields an empty result without touching the database.
func (r *BookingRepo) ListByRooms(ctx context.Context, roomIDs []string) ([]*model.Booking, error) {
	if len(roomIDs) == 0 {
		return []*model.Booking{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(roomIDs)), ",")
	args := make([]any, len(roomIDs))
	for i, id := range roomIDs {
		args[i] = id
	}
	return r.query(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE room_id IN ("+placeholders+") ORDER BY created_at, id",
		args...)
}

func (r *BookingRepo) query(ctx context.Context, q string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update applies p and returns the post-update booking.
func (r *BookingRepo) Update(ctx context.Context, id string, p model.BookingPatch) (*model.Booking, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(b)
	b.StartDate = stored(b.StartDate)
	b.EndDate = stored(b.EndDate)
	b.UpdatedAt = now()
	if _, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET start_date = ?, end_date = ?, guest_count = ?, special_requests = ?,
		        total_price = ?, status = ?, updated_at = ?
		  WHERE id = ?`,
		b.StartDate, b.EndDate, b.GuestCount, nullString(b.SpecialRequests),
		b.TotalPrice, b.Status, b.UpdatedAt, id); err != nil {
		return nil, err
	}
	return b, nil
}
