package controllers

import (
	"log"
	"net/http"

	"gateway/models"
	"gateway/utils"
)

func CreateRider(w http.ResponseWriter, r *http.Request) {
	riderUpsert(w, r, "create_rider")
}

func EditRider(w http.ResponseWriter, r *http.Request) {
	riderUpsert(w, r, "edit_rider")
}

func riderUpsert(w http.ResponseWriter, r *http.Request, routine string) {
	var in struct {
		Rider models.RiderInput `json:"riderInput"`
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

	rd := in.Rider
	call := "SELECT * FROM " + routine + "(ROW($1, $2, $3, $4, $5, $6, $7, $8)::rider_input)"
	var row models.RoutineRider
	if err := tx.QueryRowx(call,
		rd.ID, rd.Name, rd.Username, rd.Password, rd.Phone, rd.VehicleType, rd.Zone, rd.Available,
	).StructScan(&row); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving rider: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving rider: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	utils.SendJSONResponse(w, http.StatusOK, models.RiderResponse{
		ID:          idString(row.ID),
		Name:        nullString(row.Name),
		Username:    row.Email,
		Phone:       nullString(row.Phone),
		UserType:    row.UserType,
		Image:       nullString(row.Image),
		VehicleType: nullString(row.VehicleType),
		Available:   row.Available,
	})
}
