package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const roomColumns = "id, hotel_id, room_type, price, features, is_available, created_at, updated_at"

// RoomRepo encapsulates queries against the rooms table.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

func scanRoom(s rowScanner) (*model.Room, error) {
	var (
		rm       model.Room
		features []byte
	)
	if err := s.Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Price, &features, &rm.IsAvailable,
		&rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if rm.Features, err = decodeList(features); err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	features, err := encodeList(rm.Features)
	if err != nil {
		return err
	}
	rm.ID = uuid.NewString()
	rm.Features = model.CloneStrings(rm.Features)
	rm.CreatedAt = now()
	rm.UpdatedAt = rm.CreatedAt
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO rooms ("+roomColumns+") VALUES (?,?,?,?,?,?,?,?)",
		rm.ID, rm.HotelID, rm.RoomType, rm.Price, features, rm.IsAvailable, rm.CreatedAt, rm.UpdatedAt)
	return err
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rm, err
}

func (r *RoomRepo) List(ctx context.Context) ([]*model.Room, error) {
	return r.query(ctx, "SELECT "+roomColumns+" FROM rooms ORDER BY created_at, id")
}

// ListByHotel returns the rooms whose hotel_id equals hotelID.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return r.query(ctx, "SELECT "+roomColumns+" FROM rooms WHERE hotel_id = ? ORDER BY created_at, id", hotelID)
}

func (r *RoomRepo) query(ctx context.Context, q string, args ...any) ([]*model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// Update applies p and returns the post-update room.
func (r *RoomRepo) Update(ctx context.Context, id string, p model.RoomPatch) (*model.Room, error) {
	rm, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(rm)
	features, err := encodeList(rm.Features)
	if err != nil {
		return nil, err
	}
	rm.UpdatedAt = now()
	if _, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET hotel_id = ?, room_type = ?, price = ?, features = ?, is_available = ?, updated_at = ? WHERE id = ?",
		rm.HotelID, rm.RoomType, rm.Price, features, rm.IsAvailable, rm.UpdatedAt, id); err != nil {
		return nil, err
	}
	return rm, nil
}
