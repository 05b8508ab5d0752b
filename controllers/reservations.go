package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nagoyameshi/events"
	"nagoyameshi/listing"
	"nagoyameshi/models"
	"nagoyameshi/policy"
)

const (
	MessageReservationCreated   = "予約が完了しました。"
	MessageReservationCancelled = "予約をキャンセルしました。"

	reservationLayout = "2006-01-02 15:04"
)

type ReservationForm struct {
	ReservationDate string `json:"reservation_date" form:"reservation_date" binding:"required,ymd"`
	ReservationTime string `json:"reservation_time" form:"reservation_time" binding:"required,hhmm"`
	NumberOfPeople  int    `json:"number_of_people" form:"number_of_people" binding:"required,min=1,max=50"`
}

// ReservedAt joins the date and time fields in the server's local zone.
func (f ReservationForm) ReservedAt() (time.Time, error) {
	return time.ParseInLocation(reservationLayout, f.ReservationDate+" "+f.ReservationTime, time.Local)
}

func Reservations(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	user, _ := GetUserLogged(c)
	page, err := listing.Reservations(db, user.ID, listing.ParsePage(c.Query("page")))
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"reservations": page})
}

func CreateReservation(c *gin.Context) {
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return
	}
	RespondSuccess(c, gin.H{"restaurant": restaurant})
}

func StoreReservation(c *gin.Context) {
	restaurant, ok := loadRestaurant(c)
	if !ok {
		return
	}
	db, _ := database(c)
	user, _ := GetUserLogged(c)
	formPath := "/restaurants/" + strconv.FormatInt(restaurant.ID, 10) + "/reservations/create"

	var form ReservationForm
	if err := c.ShouldBind(&form); err != nil {
		redirectInvalid(c, formPath, fieldErrors(err))
		return
	}
	at, err := form.ReservedAt()
	if err != nil {
		redirectInvalid(c, formPath, map[string]string{"reservation_date": "予約日の値が正しくありません。"})
		return
	}

	reservation := models.Reservation{
		ReservedDatetime: at,
		NumberOfPeople:   form.NumberOfPeople,
		RestaurantID:     restaurant.ID,
		UserID:           user.ID,
	}
	if err := db.Create(&reservation).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).emit(c, events.New(events.ReservationCreated, user.ID, restaurant.ID, reservation.ID))
	redirectWith(c, policy.ReservationsFeature.Index, FlashSuccess, MessageReservationCreated)
}

func DestroyReservation(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var reservation models.Reservation
	if !findOr404(c, db, &reservation, id, "reservation") {
		return
	}
	if !Authorize(c, policy.Request{Feature: policy.ReservationsFeature, Owned: true, OwnerID: reservation.UserID}) {
		return
	}
	if err := db.Delete(&reservation).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	ServicesInstance(c).emit(c, events.New(events.ReservationCancelled, reservation.UserID, reservation.RestaurantID, reservation.ID))
	redirectWith(c, policy.ReservationsFeature.Index, FlashSuccess, MessageReservationCancelled)
}
