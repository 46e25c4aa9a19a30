package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	db *sqlx.DB
	QB = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
)

// Default literals reproduced from the schema the calling engine expects.
const (
	defaultOrderPrefix = "ORD"
	defaultShopType    = "RESTAURANT"
)

func SetDB(database *sqlx.DB) {
	db = database
}

// envelope is the wrapper the calling engine puts around action arguments.
type envelope struct {
	Input json.RawMessage `json:"input"`
}

// decodeAction unwraps the {"input": {...}} envelope into dst. An empty
// body, a missing input key, or an explicit null all decode as an empty
// object rather than an error.
func decodeAction(r *http.Request, dst interface{}) error {
	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
	}
	if len(env.Input) == 0 || string(env.Input) == "null" {
		env.Input = []byte("{}")
	}
	return json.Unmarshal(env.Input, dst)
}

// Null-column helpers. Monetary and ratio columns must never render as
// null; absent values become zero.

func nullFloat(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return 0
}

func nullString(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullInt(v sql.NullInt64) int64 {
	if v.Valid {
		return v.Int64
	}
	return 0
}

// idString renders a database identity as a string regardless of its
// storage type.
func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
