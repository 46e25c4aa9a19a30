package controllers

import (
	"database/sql"
	"errors"

	"gateway/models"

	"github.com/jmoiron/sqlx"
)

// pointStore resolves a raw stored geography value to an (x, y) pair.
type pointStore interface {
	Point(raw string) (x float64, y float64, err error)
}

// dbPointStore asks Postgres for the coordinates, the same store that wrote
// the value. No assumption is made about the encoding beyond that.
type dbPointStore struct {
	q sqlx.Queryer
}

func (s dbPointStore) Point(raw string) (float64, float64, error) {
	var x, y sql.NullFloat64
	row := s.q.QueryRowx("SELECT ST_X($1::geometry), ST_Y($1::geometry)", raw)
	if err := row.Scan(&x, &y); err != nil {
		return 0, 0, err
	}
	if !x.Valid || !y.Valid {
		return 0, 0, errors.New("empty coordinates")
	}
	return x.Float64, y.Float64, nil
}

// decodeLocation turns a nullable geography column into a response location.
// Absent or malformed values degrade to nil; decoding never fails a request.
func decodeLocation(ps pointStore, raw sql.NullString) *models.Location {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	x, y, err := ps.Point(raw.String)
	if err != nil {
		return nil
	}
	return &models.Location{Coordinates: [2]float64{x, y}}
}
