package controllers

import (
	"log"
	"net/http"

	"gateway/models"
	"gateway/utils"
)

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	customerUpsert(w, r, "create_customer")
}

func EditCustomer(w http.ResponseWriter, r *http.Request) {
	customerUpsert(w, r, "edit_customer")
}

func customerUpsert(w http.ResponseWriter, r *http.Request, routine string) {
	var in struct {
		Customer models.CustomerInput `json:"customerInput"`
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

	c := in.Customer
	call := "SELECT * FROM " + routine + "(ROW($1, $2, $3, $4, $5)::customer_input)"
	var row models.RoutineUser
	if err := tx.QueryRowx(call,
		c.ID, c.Name, c.Email, c.Password, c.Phone,
	).StructScan(&row); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving customer: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error saving customer: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	utils.SendJSONResponse(w, http.StatusOK, models.CustomerResponse{
		ID:       idString(row.ID),
		Name:     nullString(row.Name),
		Email:    row.Email,
		Phone:    nullString(row.Phone),
		UserType: row.UserType,
	})
}
