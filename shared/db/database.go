package db

import (
	"database/sql"
)

// Database abstracts the lifecycle of the backing store connection.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
