package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// encodeList stores a string list in a JSON column.  A nil list is
// written as [] so reads always yield a non-nil slice.
func encodeList(list []string) (string, error) {
	b, err := json.Marshal(model.CloneStrings(list))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// now returns the current time truncated to the DATETIME precision so
// the value handed back to callers equals what a later read returns.
func now() time.Time {
	return stored(time.Now())
}

// stored converts t to the UTC, whole-second value a DATETIME column keeps.
func stored(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
