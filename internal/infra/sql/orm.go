package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orm.go -destination=../../../test/unit/doubles/infra/sql/orm_mock.go -package=sql -mock_names=ORM=MockORM

type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Offset(offset int) ORM
	Order(value any) ORM
	Preload(query string, args ...any) ORM
	Transaction(fc func(tx ORM) error, opts ...*sql.TxOptions) error
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM
	WithTimeout(ctx context.Context, timeout time.Duration) ORM

	Error() error
}

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
	timeout              time.Duration
}

var (
	ErrRecordNotFound = errors.New("record not found")
)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}

	return nil
}

func (d DB) Count(value *int64) ORM {
	d.setSpanAttributes("count")
	d.DB = d.DB.Count(value)
	return &d
}

func (d DB) Create(value any) ORM {
	d.setSpanAttributes("create")
	d.DB = d.DB.Create(value)
	return &d
}

func (d DB) Find(value any, conds ...any) ORM {
	d.setSpanAttributes("find")
	d.DB = d.DB.Find(value, conds...)
	return &d
}

func (d DB) First(value any, conds ...any) ORM {
	d.setSpanAttributes("first")
	d.DB = d.DB.First(value, conds...)
	return &d
}

func (d DB) Limit(value int) ORM {
	d.DB = d.DB.Limit(value)
	return &d
}

func (d DB) Model(value any) ORM {
	d.DB = d.DB.Model(value)
	return &d
}

func (d DB) Offset(value int) ORM {
	d.DB = d.DB.Offset(value)
	return &d
}

func (d DB) Order(value any) ORM {
	d.DB = d.DB.Order(value)
	return &d
}

func (d DB) Preload(value string, conds ...any) ORM {
	d.DB = d.DB.Preload(value, conds...)
	return &d
}

func (d DB) Where(value any, conds ...any) ORM {
	d.DB = d.DB.Where(value, conds...)
	return &d
}

func (d DB) WithContext(value context.Context) ORM {
	if d.timeout > 0 {
		return d.WithTimeout(value, d.timeout)
	}

	d.DB = d.DB.WithContext(value)
	return &d
}

// WithTimeout bounds every statement issued through the returned ORM.
// The cancel func is released once the derived context is done.
func (d DB) WithTimeout(ctx context.Context, timeout time.Duration) ORM {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	go func() {
		<-timeoutCtx.Done()
		cancel()
	}()
	d.DB = d.DB.WithContext(timeoutCtx)
	return &d
}

func (d DB) Transaction(f func(ORM) error, opts ...*sql.TxOptions) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return f(&DB{tx, d.autoMigrationEnabled, d.timeout})
	}, opts...)
}

func (d DB) setSpanAttributes(operation string) {
	if ctx := d.DB.Statement.Context; ctx != nil {
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(
				attribute.String("span.kind", "client"),
				attribute.String("component", "database"),
				attribute.String("db.system", d.DB.Dialector.Name()),
				attribute.String("db.operation", operation),
			)
		}
	}
}
