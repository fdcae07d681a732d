package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tumaBack/internal/fsm"
	"tumaBack/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	query := `
INSERT INTO bookings (customer_id, provider_id, service_id, status, booking_date, booking_time, duration_hours,
                      total_amount, address, contact_phone, contact_email, customer_notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	b.Status = fsm.StatusPending
	res, err := r.DB.ExecContext(ctx, query,
		b.CustomerID, b.ProviderID, b.ServiceID, b.Status, b.BookingDate, b.BookingTime, b.DurationHours,
		b.TotalAmount, b.Address, b.ContactPhone, b.ContactEmail, b.CustomerNotes, now,
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return models.Booking{}, models.ErrServiceNotFound
		}
		return models.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = int(id)
	b.CreatedAt = now
	return b, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	query := `
SELECT b.id, b.customer_id, b.provider_id, b.service_id, s.title, b.status,
       b.booking_date, b.booking_time, b.duration_hours, b.total_amount,
       b.address, b.contact_phone, COALESCE(b.contact_email, ''),
       COALESCE(b.customer_notes, ''), COALESCE(b.provider_notes, ''), COALESCE(b.cancel_reason, ''),
       cu.name, cu.surname, cu.avatar_path,
       pu.name, pu.surname, pu.avatar_path,
       b.created_at, b.updated_at
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users cu ON cu.id = b.customer_id
JOIN users pu ON pu.id = b.provider_id
WHERE b.id = ?
	`
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CustomerID, &b.ProviderID, &b.ServiceID, &b.ServiceTitle, &b.Status,
		&b.BookingDate, &b.BookingTime, &b.DurationHours, &b.TotalAmount,
		&b.Address, &b.ContactPhone, &b.ContactEmail,
		&b.CustomerNotes, &b.ProviderNotes, &b.CancelReason,
		&b.Customer.Name, &b.Customer.Surname, &b.Customer.AvatarPath,
		&b.Provider.Name, &b.Provider.Surname, &b.Provider.AvatarPath,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	b.Customer.ID = b.CustomerID
	b.Provider.ID = b.ProviderID
	return b, nil
}

func (r *BookingRepository) listBookings(ctx context.Context, column string, userID int, status string) ([]models.Booking, error) {
	query := `
SELECT b.id, b.customer_id, b.provider_id, b.service_id, s.title, b.status,
       b.booking_date, b.booking_time, b.duration_hours, b.total_amount,
       b.address, b.contact_phone,
       COALESCE(b.customer_notes, ''), COALESCE(b.provider_notes, ''), COALESCE(b.cancel_reason, ''),
       cu.name, cu.surname, cu.avatar_path,
       pu.name, pu.surname, pu.avatar_path,
       b.created_at, b.updated_at
FROM bookings b
JOIN services s ON s.id = b.service_id
JOIN users cu ON cu.id = b.customer_id
JOIN users pu ON pu.id = b.provider_id
WHERE b.` + column + ` = ?`
	args := []interface{}{userID}
	if status != "" {
		query += ` AND b.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.CustomerID, &b.ProviderID, &b.ServiceID, &b.ServiceTitle, &b.Status,
			&b.BookingDate, &b.BookingTime, &b.DurationHours, &b.TotalAmount,
			&b.Address, &b.ContactPhone,
			&b.CustomerNotes, &b.ProviderNotes, &b.CancelReason,
			&b.Customer.Name, &b.Customer.Surname, &b.Customer.AvatarPath,
			&b.Provider.Name, &b.Provider.Surname, &b.Provider.AvatarPath,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		b.Customer.ID = b.CustomerID
		b.Provider.ID = b.ProviderID
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) GetBookingsByCustomer(ctx context.Context, customerID int, status string) ([]models.Booking, error) {
	return r.listBookings(ctx, "customer_id", customerID, status)
}

func (r *BookingRepository) GetBookingsByProvider(ctx context.Context, providerID int, status string) ([]models.Booking, error) {
	return r.listBookings(ctx, "provider_id", providerID, status)
}

// Transition moves a booking between statuses through the state machine.
// Extra fields mutated by the same action (completion notes, cancel
// reason) land in the same transaction as the optimistic status update.
func (r *BookingRepository) Transition(ctx context.Context, bookingID int, from, to string, providerNotes, cancelReason string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fsm.Apply(ctx, tx, bookingID, from, to); err != nil {
		return err
	}
	if providerNotes != "" {
		if _, err := tx.ExecContext(ctx, `UPDATE bookings SET provider_notes = ? WHERE id = ?`, providerNotes, bookingID); err != nil {
			return err
		}
	}
	if cancelReason != "" {
		if _, err := tx.ExecContext(ctx, `UPDATE bookings SET cancel_reason = ? WHERE id = ?`, cancelReason, bookingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *BookingRepository) UpdateCustomerNotes(ctx context.Context, bookingID, customerID int, notes string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE bookings SET customer_notes = ?, updated_at = NOW() WHERE id = ? AND customer_id = ?`, notes, bookingID, customerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *BookingRepository) UpdateProviderNotes(ctx context.Context, bookingID, providerID int, notes string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE bookings SET provider_notes = ?, updated_at = NOW() WHERE id = ? AND provider_id = ?`, notes, bookingID, providerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateTotalAmount lets the provider adjust the quote while the booking
// is still pending.
func (r *BookingRepository) UpdateTotalAmount(ctx context.Context, bookingID, providerID int, amount float64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE bookings SET total_amount = ?, updated_at = NOW() WHERE id = ? AND provider_id = ? AND status = ?`,
		amount, bookingID, providerID, fsm.StatusPending)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}
