package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"gateway/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stPointQuery = regexp.QuoteMeta("SELECT ST_X($1::geometry), ST_Y($1::geometry)")

func ownerRestaurantRows() *sqlmock.Rows {
	return sqlmock.NewRows(ownerRestaurantColumns)
}

func TestRestaurantByOwnerRequiresID(t *testing.T) {
	w := postAction(t, RestaurantByOwner, `{"input":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Pins the chosen not-found policy: an unknown owner is a 404, not an
// empty-but-valid owner shell.
func TestRestaurantByOwnerUnknownOwner(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, email, user_type FROM users").
		WithArgs("42").
		WillReturnError(sql.ErrNoRows)

	w := postAction(t, RestaurantByOwner, `{"input":{"id":"42"}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantByOwnerAssemblesNestedShape(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, email, user_type FROM users").
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "user_type"}).
			AddRow(7, "owner@example.com", "VENDOR"))

	mock.ExpectQuery("SELECT id, name, slug, .* FROM restaurants").
		WithArgs(int64(7)).
		WillReturnRows(ownerRestaurantRows().AddRow(
			3, "Burger Barn", "burger-barn", nil, nil, "1 Main St", nil,
			true, nil, nil, "ORD", nil, "0101000020E6100000AABB", 7, time.Now(),
		))

	// No zone row: delivery info must fall back to all zeros.
	mock.ExpectQuery("SELECT min_delivery_fee, delivery_distance, delivery_fee FROM restaurant_zones").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"min_delivery_fee", "delivery_distance", "delivery_fee"}))

	mock.ExpectQuery("SELECT day, start_time, end_time, is_closed FROM opening_times").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"day", "start_time", "end_time", "is_closed"}).
			AddRow("WEDNESDAY", "18:00:00", "23:30:00", false).
			AddRow("MONDAY", "09:05:00", "18:00:00", false))

	mock.ExpectQuery(stPointQuery).
		WithArgs("0101000020E6100000AABB").
		WillReturnRows(sqlmock.NewRows([]string{"st_x", "st_y"}).AddRow(-122.42, 37.77))

	w := postAction(t, RestaurantByOwner, `{"input":{"id":"7"}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.OwnerProfile
	decodeBody(t, w, &resp)

	assert.Equal(t, "7", resp.ID)
	assert.Equal(t, "owner@example.com", resp.Email)
	assert.Equal(t, "VENDOR", resp.UserType)
	require.Len(t, resp.Restaurants, 1)

	got := resp.Restaurants[0]
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, "burger-barn", got.Slug)
	assert.Equal(t, 0.0, got.MinimumOrder, "null minimum_order renders as 0.0")
	assert.Equal(t, models.DeliveryInfo{}, got.DeliveryInfo, "absent zone row renders all zeros")
	assert.Equal(t, defaultShopType, got.ShopType)

	require.NotNil(t, got.Location)
	assert.Equal(t, [2]float64{-122.42, 37.77}, got.Location.Coordinates)

	require.Len(t, got.OpeningTimes, 2)
	assert.Equal(t, "MONDAY", got.OpeningTimes[0].Day)
	assert.Equal(t, [2]string{"9", "05"}, got.OpeningTimes[0].Times[0].StartTime)
	assert.Equal(t, [2]string{"18", "00"}, got.OpeningTimes[0].Times[0].EndTime)
	assert.Equal(t, "WEDNESDAY", got.OpeningTimes[1].Day)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A malformed geography value degrades to location: null; the request
// itself still succeeds.
func TestRestaurantByOwnerMalformedLocation(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, email, user_type FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "user_type"}).
			AddRow(7, "owner@example.com", "VENDOR"))

	mock.ExpectQuery("SELECT id, name, slug, .* FROM restaurants").
		WillReturnRows(ownerRestaurantRows().AddRow(
			3, "Burger Barn", "burger-barn", nil, nil, nil, nil,
			true, 30, 12.5, "ORD", "RESTAURANT", "garbled-bytes", 7, time.Now(),
		))

	mock.ExpectQuery("SELECT min_delivery_fee, delivery_distance, delivery_fee FROM restaurant_zones").
		WillReturnRows(sqlmock.NewRows([]string{"min_delivery_fee", "delivery_distance", "delivery_fee"}).
			AddRow(1.5, 10.0, nil))

	mock.ExpectQuery("SELECT day, start_time, end_time, is_closed FROM opening_times").
		WillReturnRows(sqlmock.NewRows([]string{"day", "start_time", "end_time", "is_closed"}))

	mock.ExpectQuery(stPointQuery).
		WithArgs("garbled-bytes").
		WillReturnError(errors.New("parse error - invalid geometry"))

	w := postAction(t, RestaurantByOwner, `{"input":{"id":"7"}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.OwnerProfile
	decodeBody(t, w, &resp)
	require.Len(t, resp.Restaurants, 1)

	got := resp.Restaurants[0]
	assert.Nil(t, got.Location)
	assert.Equal(t, 12.5, got.MinimumOrder)
	assert.Equal(t, 1.5, got.DeliveryInfo.MinDeliveryFee)
	assert.Equal(t, 0.0, got.DeliveryInfo.DeliveryFee, "null delivery_fee renders as 0.0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

var listingColumns = []string{
	"id", "name", "slug", "image", "address", "phone", "is_active",
	"delivery_time", "minimum_order", "order_prefix", "shop_type", "location",
	"owner_id", "created_at", "commission_rate", "tax", "delivery_charges",
	"owner_email", "owner_active",
}

func TestRestaurantsPaginated(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM restaurants r")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))

	mock.ExpectQuery("SELECT r.id, r.name, .* FROM restaurants r").
		WillReturnRows(sqlmock.NewRows(listingColumns).AddRow(
			3, "Burger Barn", "burger-barn", nil, "1 Main St", nil, true,
			30, 12.5, "ORD", nil, nil, 7, time.Now(), 10.0, nil, 4.5,
			"owner@example.com", true,
		))

	mock.ExpectQuery("SELECT day, start_time, end_time, is_closed FROM opening_times").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"day", "start_time", "end_time", "is_closed"}).
			AddRow("MONDAY", "09:00:00", "23:00:00", false))

	w := postAction(t, RestaurantsPaginated, `{"input":{"page":2,"limit":10}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.PagedRestaurants
	decodeBody(t, w, &resp)

	assert.Equal(t, 23, resp.TotalCount)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Data, 1)

	got := resp.Data[0]
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, 10.0, got.CommissionRate)
	assert.Equal(t, 0.0, got.Tax, "null tax renders as 0.0")
	assert.Nil(t, got.Location)
	// Delivery info is sourced from the joined settings row here, not from
	// restaurant_zones.
	assert.Equal(t, 4.5, got.DeliveryInfo.DeliveryFee)
	assert.Equal(t, 0.0, got.DeliveryInfo.MinDeliveryFee)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "7", got.Owner.ID)
	assert.Equal(t, "owner@example.com", got.Owner.Email)

	require.Len(t, got.OpeningTimes, 1)
	assert.Equal(t, "MONDAY", got.OpeningTimes[0].Day)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// An out-of-range page is echoed verbatim; the window is simply empty.
func TestRestaurantsPaginatedEchoesPage(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM restaurants r")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT r.id, r.name, .* FROM restaurants r").
		WillReturnRows(sqlmock.NewRows(listingColumns))

	w := postAction(t, RestaurantsPaginated, `{"input":{"page":99,"limit":10}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PagedRestaurants
	decodeBody(t, w, &resp)
	assert.Equal(t, 99, resp.CurrentPage)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Empty(t, resp.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestaurantsPaginatedZeroLimit(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM restaurants r")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
	mock.ExpectQuery("SELECT r.id, r.name, .* FROM restaurants r").
		WillReturnRows(sqlmock.NewRows(listingColumns))

	w := postAction(t, RestaurantsPaginated, `{"input":{"page":1,"limit":0}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PagedRestaurants
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.TotalPages, "zero limit is defined as a single page")
	assert.NoError(t, mock.ExpectationsWereMet())
}
