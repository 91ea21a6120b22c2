// Package repository holds the MySQL-backed stores and the sentinel
// errors shared by every store implementation (MySQL, MongoDB and the
// in-memory store).  Services compare against these values with
// errors.Is and translate them into API errors.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a record with the requested id does not
// exist.  Services decide whether absence is an error or a null result.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by user stores when the unique email
// constraint rejects an insert.
var ErrEmailExists = errors.New("email already exists")

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return strings.Contains(err.Error(), "1062")
}
