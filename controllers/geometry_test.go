package controllers

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePointStore struct {
	x, y float64
	err  error
}

func (f fakePointStore) Point(string) (float64, float64, error) {
	return f.x, f.y, f.err
}

func TestDecodeLocationAbsentValue(t *testing.T) {
	assert.Nil(t, decodeLocation(fakePointStore{}, sql.NullString{}))
	assert.Nil(t, decodeLocation(fakePointStore{}, sql.NullString{Valid: true, String: ""}))
}

func TestDecodeLocationMalformedValue(t *testing.T) {
	ps := fakePointStore{err: errors.New("parse error near byte 0")}
	raw := sql.NullString{Valid: true, String: "not-a-geography"}
	assert.Nil(t, decodeLocation(ps, raw))
}

func TestDecodeLocationValidPoint(t *testing.T) {
	ps := fakePointStore{x: -122.42, y: 37.77}
	raw := sql.NullString{Valid: true, String: "0101000020E6100000"}
	loc := decodeLocation(ps, raw)
	require.NotNil(t, loc)
	assert.Equal(t, [2]float64{-122.42, 37.77}, loc.Coordinates)
}
