package controllers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"gateway/models"
	"gateway/utils"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var ownerRestaurantColumns = []string{
	"id", "name", "slug", "image", "logo", "address", "phone", "is_active",
	"delivery_time", "minimum_order", "order_prefix", "shop_type", "location",
	"owner_id", "created_at",
}

// RestaurantByOwner returns one owner with every restaurant they own, each
// folded into the full nested shape.
func RestaurantByOwner(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	if in.ID == "" {
		utils.HandleError(w, http.StatusBadRequest, "Owner ID is required")
		return
	}

	var owner models.User
	query, args, err := QB.Select("id", "email", "user_type").
		From("users").
		Where(squirrel.Eq{"id": in.ID}).
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if err := db.Get(&owner, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.HandleError(w, http.StatusNotFound, "Owner not found")
			return
		}
		utils.HandleError(w, http.StatusInternalServerError, "Error fetching owner: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	query, args, err = QB.Select(ownerRestaurantColumns...).
		From("restaurants").
		Where(squirrel.Eq{"owner_id": owner.ID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	var rows []models.Restaurant
	if err := db.Select(&rows, query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error fetching restaurants: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	restaurants := make([]models.RestaurantResponse, 0, len(rows))
	for _, row := range rows {
		resp, err := assembleOwnerRestaurant(db, row)
		if err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Error assembling restaurant: "+err.Error())
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}
		restaurants = append(restaurants, resp)
	}

	utils.SendJSONResponse(w, http.StatusOK, models.OwnerProfile{
		ID:          idString(owner.ID),
		Email:       owner.Email,
		UserType:    owner.UserType,
		Restaurants: restaurants,
	})
}

// assembleOwnerRestaurant folds zone-based delivery info and ordered opening
// times into one nested restaurant object. One round-trip per child table
// per restaurant; see DESIGN.md on the preserved N+1.
func assembleOwnerRestaurant(q sqlx.Queryer, row models.Restaurant) (models.RestaurantResponse, error) {
	query, args, err := QB.Select("min_delivery_fee", "delivery_distance", "delivery_fee").
		From("restaurant_zones").
		Where(squirrel.Eq{"restaurant_id": row.ID}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.RestaurantResponse{}, err
	}

	// Absent zone rows resolve to an all-zero delivery info object, never null.
	var zone models.ZoneRow
	info := models.DeliveryInfo{}
	switch err := sqlx.Get(q, &zone, query, args...); {
	case err == nil:
		info = models.DeliveryInfo{
			MinDeliveryFee:   nullFloat(zone.MinDeliveryFee),
			DeliveryDistance: nullFloat(zone.DeliveryDistance),
			DeliveryFee:      nullFloat(zone.DeliveryFee),
		}
	case !errors.Is(err, sql.ErrNoRows):
		return models.RestaurantResponse{}, err
	}

	times, err := fetchOpeningTimes(q, row.ID)
	if err != nil {
		return models.RestaurantResponse{}, err
	}

	location := decodeLocation(dbPointStore{q}, row.Location)

	return models.RestaurantResponse{
		ID:           idString(row.ID),
		UniqueID:     idString(row.ID),
		OrderID:      "",
		OrderPrefix:  nullString(row.OrderPrefix),
		Name:         row.Name,
		Slug:         nullString(row.Slug),
		Image:        nullString(row.Image),
		Logo:         nullString(row.Logo),
		Address:      nullString(row.Address),
		Phone:        nullString(row.Phone),
		IsActive:     row.IsActive,
		DeliveryTime: nullInt(row.DeliveryTime),
		MinimumOrder: nullFloat(row.MinimumOrder),
		Username:     "",
		Password:     "",
		Location:     location,
		DeliveryInfo: info,
		OpeningTimes: times,
		ShopType:     shopTypeOf(row.ShopType),
	}, nil
}

func fetchOpeningTimes(q sqlx.Queryer, restaurantID int64) ([]models.OpeningTime, error) {
	query, args, err := QB.Select("day", "start_time", "end_time", "is_closed").
		From("opening_times").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []models.OpeningTimeRow
	if err := sqlx.Select(q, &rows, query, args...); err != nil {
		return nil, err
	}
	return renderOpeningTimes(rows), nil
}

func shopTypeOf(v sql.NullString) string {
	if v.Valid && v.String != "" {
		return v.String
	}
	return defaultShopType
}

// restaurantCountQuery and restaurantPageQuery build the two halves of the
// paginated listing. Both filter through applySearch.

func restaurantCountQuery(search string) (string, []interface{}, error) {
	return applySearch(QB.Select("COUNT(*)").From("restaurants r"), search).ToSql()
}

func restaurantPageQuery(p pageParams) (string, []interface{}, error) {
	b := applySearch(QB.Select(
		"r.id", "r.name", "r.slug", "r.image", "r.address", "r.phone",
		"r.is_active", "r.delivery_time", "r.minimum_order", "r.order_prefix",
		"r.shop_type", "r.location", "r.owner_id", "r.created_at",
		"s.commission_rate", "s.tax", "s.delivery_charges",
		"u.email AS owner_email", "u.is_active AS owner_active",
	).From("restaurants r").
		LeftJoin("restaurant_settings s ON s.restaurant_id = r.id").
		LeftJoin("users u ON u.id = r.owner_id"), p.Search).
		OrderBy("r.created_at DESC")
	if p.Limit > 0 {
		b = b.Limit(uint64(p.Limit)).Offset(uint64(p.offset()))
	}
	return b.ToSql()
}

// RestaurantsPaginated returns a search-filtered page of restaurants with
// their settings joined in. Delivery info here is sourced from the settings
// row, not from restaurant_zones; the two listing endpoints feed different
// schema fields and are deliberately not unified.
func RestaurantsPaginated(w http.ResponseWriter, r *http.Request) {
	params := pageParams{Page: defaultPage, Limit: defaultLimit}
	if err := decodeAction(r, &params); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}

	query, args, err := restaurantCountQuery(params.Search)
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create count query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	var total int
	if err := db.Get(&total, query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error counting restaurants: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	query, args, err = restaurantPageQuery(params)
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create data query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	var rows []models.RestaurantListing
	if err := db.Select(&rows, query, args...); err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Error fetching restaurants: "+err.Error())
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	data := make([]models.PagedRestaurant, 0, len(rows))
	for _, row := range rows {
		item, err := assemblePagedRestaurant(db, row)
		if err != nil {
			utils.HandleError(w, http.StatusInternalServerError, "Error assembling restaurant: "+err.Error())
			log.Println(utils.ErrorWithTrace(err, err.Error()))
			return
		}
		data = append(data, item)
	}

	utils.SendJSONResponse(w, http.StatusOK, models.PagedRestaurants{
		Data:        data,
		TotalCount:  total,
		CurrentPage: params.Page,
		TotalPages:  totalPages(total, params.Limit),
	})
}

// assemblePagedRestaurant shapes one joined listing row. Opening times are
// still fetched per row; delivery info comes from the joined settings.
func assemblePagedRestaurant(q sqlx.Queryer, row models.RestaurantListing) (models.PagedRestaurant, error) {
	times, err := fetchOpeningTimes(q, row.ID)
	if err != nil {
		return models.PagedRestaurant{}, err
	}

	var owner *models.PagedOwner
	if row.OwnerID.Valid {
		owner = &models.PagedOwner{
			ID:       idString(row.OwnerID.Int64),
			Email:    nullString(row.OwnerEmail),
			IsActive: row.OwnerActive.Valid && row.OwnerActive.Bool,
		}
	}

	return models.PagedRestaurant{
		ID:             idString(row.ID),
		Name:           row.Name,
		Slug:           nullString(row.Slug),
		Image:          nullString(row.Image),
		Address:        nullString(row.Address),
		Phone:          nullString(row.Phone),
		IsActive:       row.IsActive,
		DeliveryTime:   nullInt(row.DeliveryTime),
		MinimumOrder:   nullFloat(row.MinimumOrder),
		CommissionRate: nullFloat(row.CommissionRate),
		Tax:            nullFloat(row.Tax),
		ShopType:       shopTypeOf(row.ShopType),
		Location:       decodeLocation(dbPointStore{q}, row.Location),
		DeliveryInfo: models.DeliveryInfo{
			MinDeliveryFee:   0,
			DeliveryDistance: 0,
			DeliveryFee:      nullFloat(row.DeliveryCharges),
		},
		OpeningTimes: times,
		Owner:        owner,
	}, nil
}
