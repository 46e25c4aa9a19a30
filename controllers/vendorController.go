package controllers

import (
	"log"
	"net/http"
	"strings"

	"gateway/models"
	"gateway/utils"

	"github.com/Masterminds/squirrel"
)

// CreateVendor and EditVendor wrap the vendor stored routines in a
// commit/rollback boundary. The routine owns validation and user-type
// assignment; the gateway owns the tuple and row shapes.

func CreateVendor(w http.ResponseWriter, r *http.Request) {
	vendorUpsert(w, r, "create_vendor")
}

func EditVendor(w http.ResponseWriter, r *http.Request) {
	vendorUpsert(w, r, "edit_vendor")
}

func vendorUpsert(w http.ResponseWriter, r *http.Request, routine string) {
	var in struct {
		Vendor models.VendorInput `json:"vendorInput"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to open transaction")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	v := in.Vendor
	call := "SELECT * FROM " + routine + "(ROW($1, $2, $3, $4, $5, $6, $7, $8)::vendor_input)"
	var row models.RoutineUser
	if err := tx.QueryRowx(call,
		v.ID, v.Name, v.Email, v.Password, v.Image, v.FirstName, v.LastName, v.Phone,
	).StructScan(&row); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving vendor: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving vendor: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	first, last := splitName(nullString(row.Name))
	utils.SendJSONResponse(w, http.StatusOK, models.VendorResponse{
		ID:          idString(row.ID),
		Email:       row.Email,
		Password:    nullString(row.Password),
		Name:        nullString(row.Name),
		PhoneNumber: nullString(row.Phone),
		UserType:    row.UserType,
		Image:       nullString(row.Image),
		FirstName:   first,
		LastName:    last,
	})
}

// splitName splits a stored display name on the first space. A name with no
// space yields an empty last name.
func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(name, " ")
	return first, last
}

// DeleteVendor hard-deletes the vendor's user row.
func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	if in.ID == "" {
		utils.HandleError(w, http.StatusBadRequest, "Vendor ID is required")
		return
	}

	query, args, err := QB.Delete("users").
		Where(squirrel.Eq{"id": in.ID, "user_type": "VENDOR"}).
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create delete query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if _, err := db.Exec(query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error deleting vendor: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
