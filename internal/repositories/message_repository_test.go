package repositories

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"tumaBack/internal/models"
)

// Opening a conversation flips every unread message addressed to the
// reader; a second open finds nothing left to flip.
func TestMarkReadFlipsUnread(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := MessageRepository{DB: db}

	mock.ExpectExec("UPDATE messages SET is_read = true").
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE messages SET is_read = true").
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()

	updated, err := repo.MarkRead(ctx, 5, 9)
	if err != nil {
		t.Fatalf("first MarkRead: %v", err)
	}
	if updated != 2 {
		t.Errorf("first MarkRead updated = %d; want 2", updated)
	}

	updated, err = repo.MarkRead(ctx, 5, 9)
	if err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if updated != 0 {
		t.Errorf("second MarkRead updated = %d; want 0", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateMessageUnknownBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := MessageRepository{DB: db}

	mock.ExpectExec("INSERT INTO messages").
		WithArgs(77, 1, 2, "hello", nil, sqlmock.AnyArg()).
		WillReturnError(&mysql.MySQLError{Number: 1452})

	_, err = repo.CreateMessage(context.Background(), models.Message{
		BookingID:  77,
		SenderID:   1,
		ReceiverID: 2,
		Text:       "hello",
	})
	if !errors.Is(err, models.ErrBookingNotFound) {
		t.Errorf("err = %v; want ErrBookingNotFound", err)
	}
}
