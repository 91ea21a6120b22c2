package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

const hotelColumns = "id, user_id, name, description, price, address, phone_number, amenities, images, total_rooms, is_deleted, created_at, updated_at"

// HotelRepo encapsulates all queries against the hotels table.  String
// lists are stored in JSON columns.
type HotelRepo struct {
	db *sql.DB
}

func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

func scanHotel(s rowScanner) (*model.Hotel, error) {
	var (
		h         model.Hotel
		amenities []byte
		images    []byte
	)
	if err := s.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Price, &h.Address, &h.PhoneNumber,
		&amenities, &images, &h.TotalRooms, &h.IsDeleted, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if h.Amenities, err = decodeList(amenities); err != nil {
		return nil, err
	}
	if h.Images, err = decodeList(images); err != nil {
		return nil, err
	}
	return &h, nil
}

// Create assigns an id and timestamps to h and inserts it.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	amenities, err := encodeList(h.Amenities)
	if err != nil {
		return err
	}
	images, err := encodeList(h.Images)
	if err != nil {
		return err
	}
	h.ID = uuid.NewString()
	h.Amenities = model.CloneStrings(h.Amenities)
	h.Images = model.CloneStrings(h.Images)
	h.CreatedAt = now()
	h.UpdatedAt = h.CreatedAt
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO hotels ("+hotelColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)",
		h.ID, h.UserID, h.Name, h.Description, h.Price, h.Address, h.PhoneNumber,
		amenities, images, h.TotalRooms, h.IsDeleted, h.CreatedAt, h.UpdatedAt)
	return err
}

// GetByID returns ErrNotFound when no hotel has the id.
func (r *HotelRepo) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, "SELECT "+hotelColumns+" FROM hotels WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return h, err
}

// List returns every hotel in creation order, deleted flag or not.
func (r *HotelRepo) List(ctx context.Context) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hotelColumns+" FROM hotels ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update applies p to the stored hotel and writes every column back.
// It returns the post-update record.
func (r *HotelRepo) Update(ctx context.Context, id string, p model.HotelPatch) (*model.Hotel, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(h)
	amenities, err := encodeList(h.Amenities)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(h.Images)
	if err != nil {
		return nil, err
	}
	h.UpdatedAt = now()
	if _, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name = ?, description = ?, price = ?, address = ?, phone_number = ?,
		        amenities = ?, images = ?, total_rooms = ?, is_deleted = ?, updated_at = ?
		  WHERE id = ?`,
		h.Name, h.Description, h.Price, h.Address, h.PhoneNumber,
		amenities, images, h.TotalRooms, h.IsDeleted, h.UpdatedAt, id); err != nil {
		return nil, err
	}
	return h, nil
}

// Delete removes the hotel and returns the record as it was.  Rooms and
// bookings that reference it are left in place.
func (r *HotelRepo) Delete(ctx context.Context, id string) (*model.Hotel, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return h, nil
}
