package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL using dsn and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema creates the four tables used by the MySQL store.  There are no
// foreign keys: a room may outlive its hotel and a booking may outlive
// its room, matching the document-store behaviour.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'user',
		created_at    DATETIME     NOT NULL,
		updated_at    DATETIME     NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		user_id      CHAR(36)     NOT NULL,
		name         VARCHAR(255) NOT NULL,
		description  TEXT         NOT NULL,
		price        DOUBLE       NOT NULL,
		address      VARCHAR(512) NOT NULL DEFAULT '',
		phone_number VARCHAR(64)  NOT NULL DEFAULT '',
		amenities    JSON         NOT NULL,
		images       JSON         NOT NULL,
		total_rooms  INT          NOT NULL DEFAULT 0,
		is_deleted   TINYINT(1)   NOT NULL DEFAULT 0,
		created_at   DATETIME     NOT NULL,
		updated_at   DATETIME     NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id           CHAR(36)     NOT NULL PRIMARY KEY,
		hotel_id     CHAR(36)     NOT NULL,
		room_type    VARCHAR(64)  NOT NULL,
		price        DOUBLE       NOT NULL,
		features     JSON         NOT NULL,
		is_available TINYINT(1)   NOT NULL DEFAULT 1,
		created_at   DATETIME     NOT NULL,
		updated_at   DATETIME     NOT NULL,
		KEY idx_rooms_hotel (hotel_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id               CHAR(36)    NOT NULL PRIMARY KEY,
		user_id          CHAR(36)    NOT NULL,
		room_id          CHAR(36)    NOT NULL,
		start_date       DATETIME    NOT NULL,
		end_date         DATETIME    NOT NULL,
		guest_count      INT         NOT NULL,
		special_requests TEXT        NULL,
		total_price      DOUBLE      NOT NULL,
		status           VARCHAR(16) NOT NULL DEFAULT 'PENDING',
		created_at       DATETIME    NOT NULL,
		updated_at       DATETIME    NOT NULL,
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_room (room_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates missing tables.  It is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
