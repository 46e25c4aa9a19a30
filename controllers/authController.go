package controllers

import (
	"log"
	"net/http"
	"time"

	"gateway/models"
	"gateway/utils"

	"github.com/Masterminds/squirrel"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func SetJWTSecret(secret []byte) {
	jwtSecret = secret
}

// adminPermissions is the full dashboard permission set granted to ADMIN
// users on login.
var adminPermissions = []string{
	"Admin", "Vendors", "Stores", "Riders", "Users", "Staff", "Configuration",
	"Orders", "Coupons", "Cuisine", "Banners", "Tipping", "Commission Rate",
	"Withdraw Request", "Notification", "Zone", "Dispatch", "Shop Type",
}

type ownerClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

func signToken(user models.User) (string, error) {
	claims := ownerClaims{
		UserID:   idString(user.ID),
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// OwnerLogin authenticates a dashboard user and returns the session payload
// the admin schema expects: token, permission set, and owned restaurants.
func OwnerLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeAction(r, &in); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid action payload")
		return
	}
	if in.Email == "" || in.Password == "" {
		utils.HandleError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	query, args, err := QB.Select("id", "name", "email", "password", "phone", "image", "user_type", "is_active").
		From("users").
		Where(squirrel.Eq{"email": in.Email}).
		ToSql()
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to create query")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if err := db.Get(&user, query, args...); err != nil {
		utils.HandleError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		utils.HandleError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := utils.CheckPassword(nullString(user.Password), in.Password); err != nil {
		utils.HandleError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := signToken(user)
	if err != nil {
		utils.HandleError(w, http.StatusInternalServerError, "Failed to sign token")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	resp := models.LoginResponse{
		UserID:      idString(user.ID),
		Token:       token,
		Email:       user.Email,
		UserType:    user.UserType,
		Restaurants: []models.OwnedRestaurant{},
		Permissions: []string{},
		UserTypeID:  user.UserType,
		Image:       nullString(user.Image),
		Name:        nullString(user.Name),
	}

	switch user.UserType {
	case "ADMIN":
		resp.Permissions = adminPermissions
	case "VENDOR":
		query, args, err := QB.Select("id", "name", "image", "address").
			From("restaurants").
			Where(squirrel.Eq{"owner_id": user.ID}).
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
		for _, row := range rows {
			resp.Restaurants = append(resp.Restaurants, models.OwnedRestaurant{
				ID:      idString(row.ID),
				OrderID: "",
				Name:    row.Name,
				Image:   nullString(row.Image),
				Address: nullString(row.Address),
			})
		}
	}

	utils.SendJSONResponse(w, http.StatusOK, resp)
}
