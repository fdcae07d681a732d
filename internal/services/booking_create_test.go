package services

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"tumaBack/internal/models"
	"tumaBack/internal/repositories"
)

// Creating a booking returns the stored row with the joined customer
// and provider summaries, not the bare input echo — the "new booking"
// notification is formatted from these fields.
func TestCreateBookingReturnsJoinedParties(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	svc := &BookingService{
		BookingRepo: &repositories.BookingRepository{DB: db},
		ServiceRepo: &repositories.ServiceRepository{DB: db},
	}

	now := time.Now()
	priceFrom := 50.0

	mock.ExpectQuery("FROM services").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "provider_id", "title", "description", "category", "city",
			"price_from", "price_to", "price_unit", "available", "featured", "image_path",
			"name", "surname", "avatar_path", "created_at", "updated_at",
		}).AddRow(10, 2, "Deep cleaning", "Full apartment clean", "cleaning", "Almaty",
			priceFrom, nil, "hour", true, false, nil,
			"Bekzat", "Omarov", nil, now, nil))
	mock.ExpectQuery("FROM provider_reviews").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))
	mock.ExpectQuery("FROM provider_reviews").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	mock.ExpectQuery("FROM bookings").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "provider_id", "service_id", "title", "status",
			"booking_date", "booking_time", "duration_hours", "total_amount",
			"address", "contact_phone", "contact_email",
			"customer_notes", "provider_notes", "cancel_reason",
			"cu_name", "cu_surname", "cu_avatar",
			"pu_name", "pu_surname", "pu_avatar",
			"created_at", "updated_at",
		}).AddRow(42, 1, 2, 10, "Deep cleaning", "pending",
			"2025-03-01", "09:00", 2, 100.0,
			"Abay 15", "+77001234567", "",
			"", "", "",
			"Aruzhan", "Satpayeva", nil,
			"Bekzat", "Omarov", nil,
			now, nil))

	created, err := svc.CreateBooking(context.Background(), models.Booking{
		CustomerID:    1,
		ServiceID:     10,
		BookingDate:   "2025-03-01",
		BookingTime:   "09:00",
		DurationHours: 2,
		TotalAmount:   100.0,
		Address:       "Abay 15",
		ContactPhone:  "+77001234567",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if created.ID != 42 {
		t.Errorf("ID = %d; want 42", created.ID)
	}
	if created.Status != "pending" {
		t.Errorf("Status = %q; want pending", created.Status)
	}
	if created.Customer.Name != "Aruzhan" || created.Customer.Surname != "Satpayeva" {
		t.Errorf("Customer = %q %q; want joined name and surname", created.Customer.Name, created.Customer.Surname)
	}
	if created.Provider.Name != "Bekzat" {
		t.Errorf("Provider.Name = %q; want Bekzat", created.Provider.Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
