package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Row structs mirror the columns the gateway reads. Nullable columns use
// sql.Null* so the response layer can apply the documented defaults.

type User struct {
	ID       int64          `db:"id"`
	Name     sql.NullString `db:"name"`
	Email    string         `db:"email"`
	Password sql.NullString `db:"password"`
	Phone    sql.NullString `db:"phone"`
	Image    sql.NullString `db:"image"`
	UserType string         `db:"user_type"`
	IsActive bool           `db:"is_active"`
}

type Restaurant struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Slug         sql.NullString  `db:"slug"`
	Image        sql.NullString  `db:"image"`
	Logo         sql.NullString  `db:"logo"`
	Address      sql.NullString  `db:"address"`
	Phone        sql.NullString  `db:"phone"`
	IsActive     bool            `db:"is_active"`
	DeliveryTime sql.NullInt64   `db:"delivery_time"`
	MinimumOrder sql.NullFloat64 `db:"minimum_order"`
	OrderPrefix  sql.NullString  `db:"order_prefix"`
	ShopType     sql.NullString  `db:"shop_type"`
	Location     sql.NullString  `db:"location"`
	OwnerID      sql.NullInt64   `db:"owner_id"`
	CreatedAt    time.Time       `db:"created_at"`
}

// RestaurantListing is one row of the paginated listing: the restaurant with
// its settings and owner already joined in.
type RestaurantListing struct {
	Restaurant
	CommissionRate  sql.NullFloat64 `db:"commission_rate"`
	Tax             sql.NullFloat64 `db:"tax"`
	DeliveryCharges sql.NullFloat64 `db:"delivery_charges"`
	OwnerEmail      sql.NullString  `db:"owner_email"`
	OwnerActive     sql.NullBool    `db:"owner_active"`
}

type OpeningTimeRow struct {
	Day       string `db:"day"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	IsClosed  bool   `db:"is_closed"`
}

type ZoneRow struct {
	MinDeliveryFee   sql.NullFloat64 `db:"min_delivery_fee"`
	DeliveryDistance sql.NullFloat64 `db:"delivery_distance"`
	DeliveryFee      sql.NullFloat64 `db:"delivery_fee"`
}

// RoutineUser is the row shape shared by the stored routines that upsert
// users. The staff and rider routines extend it.
type RoutineUser struct {
	ID       int64          `db:"id"`
	Name     sql.NullString `db:"name"`
	Email    string         `db:"email"`
	Password sql.NullString `db:"password"`
	Phone    sql.NullString `db:"phone"`
	UserType string         `db:"user_type"`
	Image    sql.NullString `db:"image"`
}

type RoutineStaff struct {
	RoutineUser
	Permissions pq.StringArray `db:"permissions"`
	IsActive    bool           `db:"is_active"`
}

type RoutineRider struct {
	RoutineUser
	VehicleType sql.NullString `db:"vehicle_type"`
	Available   bool           `db:"available"`
}

// Action inputs. Field order in the upsert inputs matches the positional
// tuple signature of the corresponding composite type.

type VendorInput struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Image     string `json:"image"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phoneNumber"`
}

type StaffInput struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Phone       string   `json:"phone"`
	Image       string   `json:"image"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"isActive"`
}

type RiderInput struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
	Zone        string `json:"zone"`
	Available   bool   `json:"available"`
}

type CustomerInput struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type RestaurantInput struct {
	ID              string             `json:"_id"`
	Name            string             `json:"name"`
	Image           string             `json:"image"`
	Logo            string             `json:"logo"`
	Address         string             `json:"address"`
	Phone           string             `json:"phone"`
	DeliveryTime    int64              `json:"deliveryTime"`
	MinimumOrder    float64            `json:"minimumOrder"`
	OrderPrefix     string             `json:"orderPrefix"`
	ShopType        string             `json:"shopType"`
	CommissionRate  float64            `json:"commissionRate"`
	Tax             float64            `json:"tax"`
	DeliveryCharges float64            `json:"deliveryCharges"`
	Latitude        *float64           `json:"latitude"`
	Longitude       *float64           `json:"longitude"`
	OpeningTimes    []OpeningTimeInput `json:"openingTimes"`
}

type OpeningTimeInput struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsClosed  bool   `json:"isClosed"`
}

// Response contracts. These mirror the shapes the calling engine's schema
// declares; field names are part of the wire contract.

type Location struct {
	Coordinates [2]float64 `json:"coordinates"`
}

type TimeSlot struct {
	StartTime [2]string `json:"startTime"`
	EndTime   [2]string `json:"endTime"`
}

type OpeningTime struct {
	Day   string     `json:"day"`
	Times []TimeSlot `json:"times"`
}

type DeliveryInfo struct {
	MinDeliveryFee   float64 `json:"minDeliveryFee"`
	DeliveryDistance float64 `json:"deliveryDistance"`
	DeliveryFee      float64 `json:"deliveryFee"`
}

// RestaurantResponse is the owner-scoped nested restaurant object.
type RestaurantResponse struct {
	ID           string        `json:"_id"`
	UniqueID     string        `json:"unique_restaurant_id"`
	OrderID      string        `json:"orderId"`
	OrderPrefix  string        `json:"orderPrefix"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Image        string        `json:"image"`
	Logo         string        `json:"logo"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	IsActive     bool          `json:"isActive"`
	DeliveryTime int64         `json:"deliveryTime"`
	MinimumOrder float64       `json:"minimumOrder"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	Location     *Location     `json:"location"`
	DeliveryInfo DeliveryInfo  `json:"deliveryInfo"`
	OpeningTimes []OpeningTime `json:"openingTimes"`
	ShopType     string        `json:"shopType"`
}

type OwnerProfile struct {
	ID          string               `json:"_id"`
	Email       string               `json:"email"`
	UserType    string               `json:"userType"`
	Restaurants []RestaurantResponse `json:"restaurants"`
}

// PagedRestaurant is the paginated listing's restaurant object. It is a
// different contract from RestaurantResponse and is kept separate on purpose.
type PagedRestaurant struct {
	ID             string        `json:"_id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	Image          string        `json:"image"`
	Address        string        `json:"address"`
	Phone          string        `json:"phone"`
	IsActive       bool          `json:"isActive"`
	DeliveryTime   int64         `json:"deliveryTime"`
	MinimumOrder   float64       `json:"minimumOrder"`
	CommissionRate float64       `json:"commissionRate"`
	Tax            float64       `json:"tax"`
	ShopType       string        `json:"shopType"`
	Location       *Location     `json:"location"`
	DeliveryInfo   DeliveryInfo  `json:"deliveryInfo"`
	OpeningTimes   []OpeningTime `json:"openingTimes"`
	Owner          *PagedOwner   `json:"owner"`
}

type PagedOwner struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

type PagedRestaurants struct {
	Data        []PagedRestaurant `json:"data"`
	TotalCount  int               `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

type VendorResponse struct {
	ID          string `json:"_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	UserType    string `json:"userType"`
	Image       string `json:"image"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type StaffResponse struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	UserType    string   `json:"userType"`
	Image       string   `json:"image"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"isActive"`
}

type RiderResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Phone       string `json:"phone"`
	UserType    string `json:"userType"`
	Image       string `json:"image"`
	VehicleType string `json:"vehicleType"`
	Available   bool   `json:"available"`
}

type CustomerResponse struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

type StoreResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type OwnedRestaurant struct {
	ID      string `json:"_id"`
	OrderID string `json:"orderId"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Address string `json:"address"`
}

type LoginResponse struct {
	UserID      string            `json:"userId"`
	Token       string            `json:"token"`
	Email       string            `json:"email"`
	UserType    string            `json:"userType"`
	Restaurants []OwnedRestaurant `json:"restaurants"`
	Permissions []string          `json:"permissions"`
	UserTypeID  string            `json:"userTypeId"`
	Image       string            `json:"image"`
	Name        string            `json:"name"`
}

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
