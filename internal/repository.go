package internal

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/pharmamed/orders/internal/migrations"
	"github.com/pharmamed/orders/internal/model"
)

const orderFields = "id, pharmacy_name, pharmacy_location, product_name, quantity, unit_price, total_price, urgency, date_ordered, status, created_at"

type IRepository interface {
	List(context.Context) ([]model.Order, error)
	Create(context.Context, model.Order) (model.Order, error)
	UpdateStatus(context.Context, int, string) (model.Order, error)
	Delete(context.Context, int) error
}

type Repository struct {
	Conn   *sql.DB
	Logger *zap.SugaredLogger
}

func NewRepository(connString string, logger *zap.SugaredLogger) (*Repository, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err = migrate(db); err != nil {
		return nil, err
	}

	return &Repository{Conn: db, Logger: logger}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func (r Repository) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+orderFields+" FROM pharmacy_orders ORDER BY created_at DESC NULLS LAST")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r Repository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	row := r.Conn.QueryRowContext(ctx,
		"INSERT INTO pharmacy_orders (pharmacy_name, pharmacy_location, product_name, quantity, unit_price, total_price, urgency, date_ordered, status) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at",
		o.PharmacyName, o.PharmacyLocation, o.ProductName, o.Quantity, o.UnitPrice, o.TotalPrice, o.Urgency, o.DateOrdered, o.Status)

	var created sql.NullTime
	if err := row.Scan(&o.ID, &created); err != nil {
		return model.Order{}, err
	}
	if created.Valid {
		o.CreatedAt = created.Time
	}

	return o, nil
}

func (r Repository) UpdateStatus(ctx context.Context, id int, status string) (model.Order, error) {
	row := r.Conn.QueryRowContext(ctx,
		"UPDATE pharmacy_orders SET status = $1 WHERE id = $2 RETURNING "+orderFields, status, id)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrNoRecords
	}
	if err != nil {
		return model.Order{}, err
	}

	return o, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	res, err := r.Conn.ExecContext(ctx, "DELETE FROM pharmacy_orders WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRecords
	}

	return nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scannable) (model.Order, error) {
	var (
		o       model.Order
		ordered sql.NullTime
		created sql.NullTime
	)

	err := row.Scan(&o.ID, &o.PharmacyName, &o.PharmacyLocation, &o.ProductName, &o.Quantity,
		&o.UnitPrice, &o.TotalPrice, &o.Urgency, &ordered, &o.Status, &created)
	if err != nil {
		return model.Order{}, err
	}

	if ordered.Valid {
		o.DateOrdered = ordered.Time.Format(bucketLayout)
	}
	if created.Valid {
		o.CreatedAt = created.Time
	}

	return o, nil
}
