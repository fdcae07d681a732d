package repositories

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"tumaBack/internal/models"
)

// Toggling twice returns membership to the starting state: the second
// insert trips the unique key and turns into the delete branch.
func TestToggleRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := FavoriteRepository{DB: db}

	mock.ExpectExec("INSERT INTO customer_favorites").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO customer_favorites").
		WithArgs(1, 2).
		WillReturnError(&mysql.MySQLError{Number: 1062})
	mock.ExpectExec("DELETE FROM customer_favorites").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO customer_favorites").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(2, 1))

	ctx := context.Background()

	favorited, err := repo.Toggle(ctx, 1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !favorited {
		t.Error("first toggle: favorited = false; want true")
	}

	favorited, err = repo.Toggle(ctx, 1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if favorited {
		t.Error("second toggle: favorited = true; want false")
	}

	favorited, err = repo.Toggle(ctx, 1, 2)
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if !favorited {
		t.Error("third toggle: favorited = false; want true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestToggleUnknownProvider(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := FavoriteRepository{DB: db}

	mock.ExpectExec("INSERT INTO customer_favorites").
		WithArgs(1, 999).
		WillReturnError(&mysql.MySQLError{Number: 1452})

	if _, err := repo.Toggle(context.Background(), 1, 999); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("err = %v; want ErrUserNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestIsFavorite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := FavoriteRepository{DB: db}

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	favorited, err := repo.IsFavorite(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !favorited {
		t.Error("favorited = false; want true")
	}
}
