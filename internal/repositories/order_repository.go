package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staffing-backend/internal/models"
	"staffing-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// orderSelect joins the client name so lists need no per-row lookups.
const orderSelect = `SELECT o.id, o.user_id, COALESCE(u.name, ''), o.event_date, o.event_type, o.venue,
       o.attendees, o.menu_type, o.status, o.assigned_staff, o.invoice_status, o.notes, o.created_at, o.updated_at`

// withUpdated wraps a data-modifying statement so the joined row comes back in one round trip.
func withUpdated(statement string) string {
	return `WITH o AS (` + statement + ` RETURNING *) ` + orderSelect + ` FROM o LEFT JOIN users u ON u.id = o.user_id`
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		o    models.Order
		date time.Time
	)
	err := row.Scan(&o.ID, &o.UserID, &o.ClientName, &date, &o.EventType, &o.Venue,
		&o.Attendees, &o.MenuType, &o.Status, &o.AssignedStaff, &o.InvoiceStatus, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	o.Date = timeutil.FormatDate(date)
	if o.AssignedStaff == nil {
		o.AssignedStaff = []string{}
	}
	return &o, nil
}

func statusStrings(statuses []models.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	date, err := timeutil.ParseDate(o.Date)
	if err != nil {
		return err
	}
	if o.AssignedStaff == nil {
		o.AssignedStaff = []string{}
	}
	created, err := scanOrder(r.DB.QueryRow(ctx, withUpdated(
		`INSERT INTO orders(id, user_id, event_date, event_type, venue, attendees, menu_type, status, assigned_staff, invoice_status, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`),
		o.ID, o.UserID, date, o.EventType, o.Venue, o.Attendees, o.MenuType, o.Status, o.AssignedStaff, o.InvoiceStatus, o.Notes,
	))
	if err != nil {
		return err
	}
	*o = *created
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(r.DB.QueryRow(ctx,
		orderSelect+` FROM orders o LEFT JOIN users u ON u.id = o.user_id WHERE o.id=$1`, id))
}

func (r *OrderRepository) List(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.UserID != "" {
		add("o.user_id = $%d", f.UserID)
	}
	if f.StaffID != "" {
		add("$%d = ANY(o.assigned_staff)", f.StaffID)
	}
	if f.Status != "" {
		add("o.status = $%d", string(f.Status))
	}
	if f.From != "" {
		from, err := timeutil.ParseDate(f.From)
		if err != nil {
			return nil, err
		}
		add("o.event_date >= $%d", from)
	}
	if f.To != "" {
		to, err := timeutil.ParseDate(f.To)
		if err != nil {
			return nil, err
		}
		add("o.event_date <= $%d", to)
	}

	query := orderSelect + ` FROM orders o LEFT JOIN users u ON u.id = o.user_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.event_date DESC, o.created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateDetails(ctx context.Context, o *models.Order) error {
	date, err := timeutil.ParseDate(o.Date)
	if err != nil {
		return err
	}
	updated, err := scanOrder(r.DB.QueryRow(ctx, withUpdated(
		`UPDATE orders SET event_date=$1, event_type=$2, venue=$3, attendees=$4, menu_type=$5, notes=$6, updated_at=NOW()
         WHERE id=$7 AND status='Pending'`),
		date, o.EventType, o.Venue, o.Attendees, o.MenuType, o.Notes, o.ID,
	))
	if err != nil {
		return r.explainMiss(ctx, o.ID, err)
	}
	*o = *updated
	return nil
}

// TransitionStatus is a compare-and-set on the current status.
func (r *OrderRepository) TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus) (*models.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, withUpdated(
		`UPDATE orders SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2`),
		id, string(from), string(to),
	))
	if err != nil {
		return nil, r.explainMiss(ctx, id, err)
	}
	return o, nil
}

// AddStaff appends staffID unless already present.
func (r *OrderRepository) AddStaff(ctx context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, withUpdated(
		`UPDATE orders SET
             assigned_staff = CASE WHEN $2 = ANY(assigned_staff) THEN assigned_staff ELSE array_append(assigned_staff, $2) END,
             updated_at = CASE WHEN $2 = ANY(assigned_staff) THEN updated_at ELSE NOW() END
         WHERE id=$1 AND status = ANY($3)`),
		id, staffID, statusStrings(allowed),
	))
	if err != nil {
		return nil, r.explainMiss(ctx, id, err)
	}
	return o, nil
}

// RemoveStaff drops every occurrence of staffID.
func (r *OrderRepository) RemoveStaff(ctx context.Context, id, staffID string, allowed []models.OrderStatus) (*models.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, withUpdated(
		`UPDATE orders SET
             assigned_staff = array_remove(assigned_staff, $2),
             updated_at = CASE WHEN $2 = ANY(assigned_staff) THEN NOW() ELSE updated_at END
         WHERE id=$1 AND status = ANY($3)`),
		id, staffID, statusStrings(allowed),
	))
	if err != nil {
		return nil, r.explainMiss(ctx, id, err)
	}
	return o, nil
}

func (r *OrderRepository) SetInvoiceStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	return expectOne(r.DB.Exec(ctx,
		`UPDATE orders SET invoice_status=$1, updated_at=NOW() WHERE id=$2`, string(status), id))
}

func (r *OrderRepository) AssignmentCounts(ctx context.Context, staffIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(staffIDs))
	if len(staffIDs) == 0 {
		return counts, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT sid, COUNT(*) FROM orders, unnest(assigned_staff) AS sid
         WHERE sid = ANY($1)
         GROUP BY sid`, staffIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// explainMiss turns a guarded update that matched nothing into not-found or conflict.
func (r *OrderRepository) explainMiss(ctx context.Context, id string, err error) error {
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	var exists bool
	if qerr := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists); qerr != nil {
		return qerr
	}
	if exists {
		return models.ErrConflict
	}
	return models.ErrNotFound
}
