package sql

import (
	"context"
	"errors"
)

var ErrDatabaseClosed = errors.New("database is not open")

type Database interface {
	Open(context.Context) error
	Ping(context.Context) error
	Close()
}
