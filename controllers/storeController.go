package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"
	"unicode"

	"gateway/models"
	"gateway/utils"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type storeInput struct {
	Restaurant models.RestaurantInput `json:"restaurant"`
	Owner      string                 `json:"owner"`
}

// CreateStore inserts the restaurant row, its settings row, and its opening
// time rows in one transaction. Either the whole set commits or none does.
func CreateStore(w http.ResponseWriter, r *http.Request) {
	var in storeInput
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	if in.Owner == "" {
		utils.HandleError(w, http.StatusBadRequest, "Owner is required")
		return
	}
	rest := in.Restaurant
	if rest.Name == "" {
		utils.HandleError(w, http.StatusBadRequest, "Restaurant name is required")
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

	prefix := rest.OrderPrefix
	if prefix == "" {
		prefix = defaultOrderPrefix
	}
	shopType := rest.ShopType
	if shopType == "" {
		shopType = defaultShopType
	}

	cols := []string{
		"name", "slug", "image", "logo", "address", "phone", "is_active",
		"delivery_time", "minimum_order", "order_prefix", "shop_type",
		"owner_id", "created_at",
	}
	vals := []interface{}{
		rest.Name, slugify(rest.Name), rest.Image, rest.Logo, rest.Address,
		rest.Phone, true, rest.DeliveryTime, rest.MinimumOrder, prefix,
		shopType, in.Owner, time.Now(),
	}
	if rest.Latitude != nil && rest.Longitude != nil {
		cols = append(cols, "location")
		vals = append(vals, squirrel.Expr(
			"ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography",
			*rest.Longitude, *rest.Latitude,
		))
	}

	query, args, err := QB.Insert("restaurants").
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, name, slug").
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create insert query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	var created struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
		Slug string `db:"slug"`
	}
	if err := tx.QueryRowx(query, args...).StructScan(&created); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error creating restaurant: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	query, args, err = QB.Insert("restaurant_settings").
		Columns("restaurant_id", "commission_rate", "tax", "minimum_order", "delivery_charges").
		Values(created.ID, rest.CommissionRate, rest.Tax, rest.MinimumOrder, rest.DeliveryCharges).
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create settings query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if _, err := tx.Exec(query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error creating restaurant settings: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := insertOpeningTimes(tx, created.ID, rest.OpeningTimes); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error creating opening times: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error creating restaurant: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	utils.SendJSONResponse(w, http.StatusOK, models.StoreResponse{
		ID:   idString(created.ID),
		Name: created.Name,
		Slug: created.Slug,
	})
}

// EditStore updates the restaurant, upserts its settings, and replaces its
// opening times in one transaction.
func EditStore(w http.ResponseWriter, r *http.Request) {
	var in storeInput
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	rest := in.Restaurant
	if rest.ID == "" {
		utils.HandleError(w, http.StatusBadRequest, "Restaurant ID is required")
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

	update := QB.Update("restaurants").
		Set("name", rest.Name).
		Set("image", rest.Image).
		Set("logo", rest.Logo).
		Set("address", rest.Address).
		Set("phone", rest.Phone).
		Set("delivery_time", rest.DeliveryTime).
		Set("minimum_order", rest.MinimumOrder).
		Where(squirrel.Eq{"id": rest.ID})
	if rest.OrderPrefix != "" {
		update = update.Set("order_prefix", rest.OrderPrefix)
	}
	if rest.ShopType != "" {
		update = update.Set("shop_type", rest.ShopType)
	}
	if rest.Latitude != nil && rest.Longitude != nil {
		update = update.Set("location", squirrel.Expr(
			"ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography",
			*rest.Longitude, *rest.Latitude,
		))
	}
	query, args, err := update.ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create update query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if _, err := tx.Exec(query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error updating restaurant: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	query, args, err = QB.Insert("restaurant_settings").
		Columns("restaurant_id", "commission_rate", "tax", "minimum_order", "delivery_charges").
		Values(rest.ID, rest.CommissionRate, rest.Tax, rest.MinimumOrder, rest.DeliveryCharges).
		Suffix("ON CONFLICT (restaurant_id) DO UPDATE SET commission_rate = EXCLUDED.commission_rate, tax = EXCLUDED.tax, minimum_order = EXCLUDED.minimum_order, delivery_charges = EXCLUDED.delivery_charges").
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create settings query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if _, err := tx.Exec(query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error updating restaurant settings: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	if len(rest.OpeningTimes) > 0 {
		query, args, err = QB.Delete("opening_times").
			Where(squirrel.Eq{"restaurant_id": rest.ID}).
			ToSql()
		if err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Failed to create delete query")
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}
		if _, err := tx.Exec(query, args...); err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Error replacing opening times: "+err.Error())
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}

		ins := QB.Insert("opening_times").
			Columns("restaurant_id", "day", "start_time", "end_time", "is_closed")
		for _, t := range rest.OpeningTimes {
			ins = ins.Values(rest.ID, t.Day, t.StartTime, t.EndTime, t.IsClosed)
		}
		query, args, err = ins.ToSql()
		if err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Failed to create opening times query")
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}
		if _, err := tx.Exec(query, args...); err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Error replacing opening times: "+err.Error())
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}
	}

	if err := tx.Commit(); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error updating restaurant: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	committed = true

	utils.SendJSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteStore soft-deletes: the row stays, is_active flips off.
func DeleteStore(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}

	query, args, err := QB.Update("restaurants").
		Set("is_active", false).
		Where(squirrel.Eq{"id": in.ID}).
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create update query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if _, err := db.Exec(query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error deleting restaurant: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func insertOpeningTimes(tx *sqlx.Tx, restaurantID int64, times []models.OpeningTimeInput) error {
	if len(times) == 0 {
		times = defaultOpeningTimes()
	}
	ins := QB.Insert("opening_times").
		Columns("restaurant_id", "day", "start_time", "end_time", "is_closed")
	for _, t := range times {
		ins = ins.Values(restaurantID, t.Day, t.StartTime, t.EndTime, t.IsClosed)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(query, args...)
	return err
}

// defaultOpeningTimes covers the full week when a create request carries no
// schedule.
func defaultOpeningTimes() []models.OpeningTimeInput {
	out := make([]models.OpeningTimeInput, 0, len(weekDays))
	for _, d := range weekDays {
		out = append(out, models.OpeningTimeInput{
			Day:       d,
			StartTime: "09:00",
			EndTime:   "23:00",
		})
	}
	return out
}

// slugify turns a display name into a URL slug.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
