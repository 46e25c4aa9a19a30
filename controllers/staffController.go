package controllers

import (
	"log"
	"net/http"

	"gateway/models"
	"gateway/utils"

	"github.com/lib/pq"
)

func CreateStaff(w http.ResponseWriter, r *http.Request) {
	staffUpsert(w, r, "create_staff")
}

func EditStaff(w http.ResponseWriter, r *http.Request) {
	staffUpsert(w, r, "edit_staff")
}

func staffUpsert(w http.ResponseWriter, r *http.Request, routine string) {
	var in struct {
		Staff models.StaffInput `json:"staffInput"`
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

	s := in.Staff
	call := "SELECT * FROM " + routine + "(ROW($1, $2, $3, $4, $5, $6, $7, $8)::staff_input)"
	var row models.RoutineStaff
	if err := tx.QueryRowx(call,
		s.ID, s.Name, s.Email, s.Password, s.Phone, s.Image, pq.Array(s.Permissions), s.IsActive,
	).StructScan(&row); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving staff: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving staff: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	utils.SendJSONResponse(w, http.StatusOK, models.StaffResponse{
		ID:          idString(row.ID),
		Name:        nullString(row.Name),
		Email:       row.Email,
		Phone:       nullString(row.Phone),
		UserType:    row.UserType,
		Image:       nullString(row.Image),
		Permissions: row.Permissions,
		IsActive:    row.IsActive,
	})
}
