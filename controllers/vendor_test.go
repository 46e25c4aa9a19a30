package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"testing"

	"gateway/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		name  string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Madonna", "Madonna", ""},
		{"Mary Jane Watson", "Mary", "Jane Watson"},
		{"", "", ""},
	}
	for _, c := range cases {
		first, last := splitName(c.name)
		assert.Equal(t, c.first, first, c.name)
		assert.Equal(t, c.last, last, c.name)
	}
}

var routineUserColumns = []string{"id", "name", "email", "password", "phone", "user_type", "image"}

func TestCreateVendorCommitsAndShapesResponse(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM create_vendor(ROW($1, $2, $3, $4, $5, $6, $7, $8)::vendor_input)")).
		WithArgs("", "Jane Doe", "jane@example.com", "pw", "", "Jane", "Doe", "555-0100").
		WillReturnRows(sqlmock.NewRows(routineUserColumns).
			AddRow(12, "Jane Doe", "jane@example.com", "pw", "555-0100", "VENDOR", nil))
	mock.ExpectCommit()

	w := postAction(t, CreateVendor, `{"input":{"vendorInput":{
		"name":"Jane Doe","email":"jane@example.com","password":"pw",
		"firstName":"Jane","lastName":"Doe","phoneNumber":"555-0100"}}}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.VendorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "12", resp.ID)
	assert.Equal(t, "Jane", resp.FirstName)
	assert.Equal(t, "Doe", resp.LastName)
	assert.Equal(t, "VENDOR", resp.UserType)
	assert.Equal(t, "555-0100", resp.PhoneNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVendorSplitsSingleWordName(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM create_vendor")).
		WillReturnRows(sqlmock.NewRows(routineUserColumns).
			AddRow(13, "Madonna", "m@example.com", nil, nil, "VENDOR", nil))
	mock.ExpectCommit()

	w := postAction(t, CreateVendor, `{"input":{"vendorInput":{"name":"Madonna","email":"m@example.com"}}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.VendorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Madonna", resp.FirstName)
	assert.Equal(t, "", resp.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditVendorRollsBackOnRoutineFailure(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM edit_vendor")).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	w := postAction(t, EditVendor, `{"input":{"vendorInput":{"_id":"12","email":"jane@example.com"}}}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVendorRequiresID(t *testing.T) {
	w := postAction(t, DeleteVendor, `{"input":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteVendorHardDeletes(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postAction(t, DeleteVendor, `{"input":{"id":"12"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.SuccessResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}
