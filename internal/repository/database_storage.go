package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// QueryObserver receives the duration of every query, labelled by operation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// DatabaseStorage implements Storage on PostgreSQL through sqlx.
type DatabaseStorage struct {
	db       *sqlx.DB
	observer QueryObserver
	now      func() time.Time
}

// NewDatabaseStorage creates a PostgreSQL backed Storage. observer may be nil.
func NewDatabaseStorage(db *sqlx.DB, observer QueryObserver) *DatabaseStorage {
	return &DatabaseStorage{db: db, observer: observer, now: func() time.Time { return time.Now().UTC() }}
}

var _ Storage = (*DatabaseStorage)(nil)

// Ping checks that the database is reachable.
func (s *DatabaseStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return backendErr("ping", err)
	}
	return nil
}

func (s *DatabaseStorage) observe(op string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveDBQuery(op, time.Since(start))
	}
}

func getOne[T any](ctx context.Context, s *DatabaseStorage, op, query string, args ...interface{}) (*T, error) {
	defer s.observe(op, time.Now())
	var out T
	if err := s.db.GetContext(ctx, &out, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, backendErr(op, err)
	}
	return &out, nil
}

func selectMany[T any](ctx context.Context, s *DatabaseStorage, op, query string, args ...interface{}) ([]T, error) {
	defer s.observe(op, time.Now())
	out := []T{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, backendErr(op, err)
	}
	return out, nil
}

func insertOne[T any](ctx context.Context, s *DatabaseStorage, op, query string, args ...interface{}) (*T, error) {
	defer s.observe(op, time.Now())
	var out T
	if err := s.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, backendErr(op, err)
	}
	return &out, nil
}

// updateOne applies the non-nil fields of patch to the row with id. An empty
// patch degrades to a plain lookup.
func updateOne[T any](ctx context.Context, s *DatabaseStorage, op, table, columns string, id int64, patch interface{}) (*T, error) {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 {
		return getOne[T](ctx, s, op, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", columns, table), id)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s", table, strings.Join(sets, ", "), len(args), columns)
	return getOne[T](ctx, s, op, query, args...)
}

func deleteOne(ctx context.Context, s *DatabaseStorage, op, table string, id int64) (bool, error) {
	defer s.observe(op, time.Now())
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return false, backendErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, backendErr(op, err)
	}
	return affected > 0, nil
}

// patchAssignments turns the set pointer fields of a patch struct into
// "column = $n" fragments using their db tags, in declaration order.
func patchAssignments(patch interface{}) ([]string, []interface{}) {
	v := reflect.Indirect(reflect.ValueOf(patch))
	t := v.Type()
	var sets []string
	var args []interface{}
	for i := 0; i < t.NumField(); i++ {
		column := t.Field(i).Tag.Get("db")
		field := v.Field(i)
		if column == "" || column == "-" || field.Kind() != reflect.Ptr || field.IsNil() {
			continue
		}
		args = append(args, field.Elem().Interface())
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	return sets, args
}
