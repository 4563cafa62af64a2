package services

import (
	"context"
	"errors"
	"fmt"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/metrics"
	"staffing-backend/internal/models"
	"staffing-backend/internal/timeutil"
	"staffing-backend/pkg/logger"
)

type OrderService struct {
	orders    OrderStore
	users     UserStore
	staff     StaffStore
	activity  *ActivityService
	publisher OrderEventPublisher
	log       logger.Logger
}

func NewOrderService(orders OrderStore, users UserStore, staff StaffStore, activity *ActivityService, publisher OrderEventPublisher, log logger.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		staff:     staff,
		activity:  activity,
		publisher: publisher,
		log:       log,
	}
}

// Create books an event. Clients always book for themselves; back office roles may book on a client's behalf.
func (s *OrderService) Create(ctx context.Context, session auth.Session, req *models.OrderRequest) (*models.Order, error) {
	if !session.IsClient() && !session.HasRole(models.RoleAdmin, models.RoleOperationalManager, models.RoleSales) {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ownerID := session.UserID
	if !session.IsClient() && req.UserID != "" {
		owner, err := s.users.Get(ctx, req.UserID)
		if errors.Is(err, models.ErrNotFound) || (err == nil && owner.Role != models.RoleClient) {
			return nil, &models.ValidationError{Fields: map[string]string{"user_id": "must reference a client account"}}
		}
		if err != nil {
			return nil, err
		}
		ownerID = owner.ID
	}

	order := &models.Order{
		UserID:        ownerID,
		Date:          req.Date,
		EventType:     req.EventType,
		Venue:         req.Venue,
		Attendees:     req.Attendees,
		MenuType:      req.MenuType,
		Notes:         req.Notes,
		Status:        models.OrderPending,
		InvoiceStatus: models.InvoicePending,
		AssignedStaff: []string{},
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.activity.Record(ctx, session, models.ActionCreate, models.TargetOrder, order.ID,
		fmt.Sprintf("Booked %d guests (%s) on %s", order.Attendees, order.MenuType, order.Date), "", string(order.Status))
	s.publish(ctx, models.OrderEventCreated, order)
	return order, nil
}

// Get returns the order when the caller may see it.
func (s *OrderService) Get(ctx context.Context, session auth.Session, id string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canSee(ctx, session, order)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Hidden orders look missing to the caller.
		return nil, models.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) canSee(ctx context.Context, session auth.Session, order *models.Order) (bool, error) {
	switch {
	case session.Role.IsBackOffice():
		return true, nil
	case session.IsClient():
		return order.UserID == session.UserID, nil
	case session.Role.IsStaffRole():
		st, err := s.staff.GetByUserID(ctx, session.UserID)
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return order.HasStaff(st.ID), nil
	}
	return false, nil
}

// List scopes the filter to the caller: clients see their own orders and field staff their assignments.
func (s *OrderService) List(ctx context.Context, session auth.Session, filter models.OrderFilter) ([]*models.Order, error) {
	if filter.Status != "" {
		if _, ok := models.ParseOrderStatus(string(filter.Status)); !ok {
			return nil, &models.ValidationError{Fields: map[string]string{"status": "unknown order status"}}
		}
	}
	var v models.ValidationError
	if filter.From != "" && !timeutil.IsDate(filter.From) {
		v.Add("from", "must be an ISO date (YYYY-MM-DD)")
	}
	if filter.To != "" && !timeutil.IsDate(filter.To) {
		v.Add("to", "must be an ISO date (YYYY-MM-DD)")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	switch {
	case session.Role.IsBackOffice():
	case session.IsClient():
		filter.UserID = session.UserID
	case session.Role.IsStaffRole():
		st, err := s.staff.GetByUserID(ctx, session.UserID)
		if errors.Is(err, models.ErrNotFound) {
			return []*models.Order{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.StaffID = st.ID
	default:
		return nil, ErrForbidden
	}

	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, nil
}

// UpdateDetails edits a Pending order. Clients may edit their own.
func (s *OrderService) UpdateDetails(ctx context.Context, session auth.Session, id string, req *models.OrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	order, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if !session.IsClient() && !session.HasRole(models.RoleAdmin, models.RoleOperationalManager, models.RoleSales) {
		return nil, ErrForbidden
	}
	if order.Status != models.OrderPending {
		return nil, ErrOrderLocked
	}

	order.Date = req.Date
	order.EventType = req.EventType
	order.Venue = req.Venue
	order.Attendees = req.Attendees
	order.MenuType = req.MenuType
	order.Notes = req.Notes
	if err := s.orders.UpdateDetails(ctx, order); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, ErrOrderLocked
		}
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionUpdate, models.TargetOrder, id, "Updated order details", "", "")
	s.publish(ctx, models.OrderEventUpdated, order)
	return order, nil
}

// Confirm moves Pending to Confirmed.
func (s *OrderService) Confirm(ctx context.Context, session auth.Session, id string) (*models.Order, error) {
	if !session.HasRole(models.RoleAdmin, models.RoleOperationalManager) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, session, id, models.OrderConfirmed)
}

// Cancel moves Pending to Cancelled. A client may cancel their own pending order.
func (s *OrderService) Cancel(ctx context.Context, session auth.Session, id string) (*models.Order, error) {
	if session.IsClient() {
		if _, err := s.Get(ctx, session, id); err != nil {
			return nil, err
		}
	} else if !session.HasRole(models.RoleAdmin, models.RoleOperationalManager) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, session, id, models.OrderCancelled)
}

// Complete moves Confirmed to Completed once the event is done.
func (s *OrderService) Complete(ctx context.Context, session auth.Session, id string) (*models.Order, error) {
	if !session.HasRole(models.RoleAdmin, models.RoleOperationalManager, models.RoleCaptain) {
		return nil, ErrForbidden
	}
	if session.Role == models.RoleCaptain {
		// Captains close only the events they work.
		if _, err := s.Get(ctx, session, id); err != nil {
			return nil, err
		}
	}
	return s.transition(ctx, session, id, models.OrderCompleted)
}

// Review is the accountant's sign-off, Completed to Reviewed.
func (s *OrderService) Review(ctx context.Context, session auth.Session, id string) (*models.Order, error) {
	if !session.HasRole(models.RoleAdmin, models.RoleAccountant) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, session, id, models.OrderReviewed)
}

// transition applies one edge of the state machine with compare-and-set on the current status.
func (s *OrderService) transition(ctx context.Context, session auth.Session, id string, to models.OrderStatus) (*models.Order, error) {
	current, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := current.Status
	if !models.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}

	order, err := s.orders.TransitionStatus(ctx, id, from, to)
	if errors.Is(err, models.ErrConflict) {
		return nil, fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
	}
	if err != nil {
		return nil, err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	s.activity.Record(ctx, session, models.ActionStatusChange, models.TargetOrder, id,
		fmt.Sprintf("Order %s", to), string(from), string(to))
	s.log.Info("order status changed", "order_id", id, "from", from, "to", to, "by", session.UserID)
	s.publish(ctx, models.OrderEventStatusChanged, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	publishOrder(ctx, s.publisher, eventType, order)
}

func publishOrder(ctx context.Context, publisher OrderEventPublisher, eventType string, order *models.Order) {
	if publisher == nil {
		return
	}
	publisher.PublishOrderEvent(ctx, models.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Status:        order.Status,
		AssignedStaff: append([]string{}, order.AssignedStaff...),
		At:            timeutil.Now(),
	})
}
