package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

// AssignmentService adds and removes field staff on orders.
type AssignmentService struct {
	orders       OrderStore
	staff        StaffStore
	availability AvailabilityStore
	activity     *ActivityService
	publisher    OrderEventPublisher
	log          logger.Logger
}

func NewAssignmentService(orders OrderStore, staff StaffStore, availability AvailabilityStore, activity *ActivityService, publisher OrderEventPublisher, log logger.Logger) *AssignmentService {
	return &AssignmentService{
		orders:       orders,
		staff:        staff,
		availability: availability,
		activity:     activity,
		publisher:    publisher,
		log:          log,
	}
}

var assignableStatuses = []models.OrderStatus{models.OrderPending, models.OrderConfirmed}

func canAssign(session auth.Session) bool {
	return session.HasRole(models.RoleAdmin, models.RoleOperationalManager)
}

// ListCandidates returns active waiter-tier staff not yet on the order, with workload and
// availability on the event date. Counts and availability are each fetched in one batch.
func (s *AssignmentService) ListCandidates(ctx context.Context, session auth.Session, orderID string) ([]models.Candidate, error) {
	if !canAssign(session) {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	all, err := s.staff.List(ctx, models.StaffFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	var pool []*models.Staff
	for _, st := range all {
		if st.Role.IsWaiterTier() && !order.HasStaff(st.ID) {
			pool = append(pool, st)
		}
	}
	if len(pool) == 0 {
		return []models.Candidate{}, nil
	}

	ids := make([]string, len(pool))
	for i, st := range pool {
		ids[i] = st.ID
	}
	counts, err := s.orders.AssignmentCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	statuses, err := s.availability.StatusOnDate(ctx, ids, order.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(pool))
	for _, st := range pool {
		status, ok := statuses[st.ID]
		if !ok {
			status = models.AvailabilityUnknown
		}
		candidates = append(candidates, models.Candidate{
			Staff:           st,
			AssignmentCount: counts[st.ID],
			Availability:    status,
			Assignable:      status != models.Unavailable,
		})
	}
	// Assignable first, then the least busy.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Assignable != candidates[j].Assignable {
			return candidates[i].Assignable
		}
		return candidates[i].AssignmentCount < candidates[j].AssignmentCount
	})
	return candidates, nil
}

// Assign adds a staff member with set semantics. Re-assigning is a no-op.
func (s *AssignmentService) Assign(ctx context.Context, session auth.Session, orderID, staffID string) (*models.Order, error) {
	if !canAssign(session) {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.AcceptsAssignments() {
		return nil, ErrAssignmentClosed
	}

	st, err := s.staff.Get(ctx, staffID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, &models.ValidationError{Fields: map[string]string{"staff_id": "unknown staff member"}}
	}
	if err != nil {
		return nil, err
	}
	if !st.IsActive || !st.Role.IsWaiterTier() {
		return nil, ErrStaffNotAssignable
	}

	statuses, err := s.availability.StatusOnDate(ctx, []string{staffID}, order.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	if statuses[staffID] == models.Unavailable {
		return nil, fmt.Errorf("%w: %s on %s", ErrStaffUnavailable, st.Name, order.Date)
	}

	already := order.HasStaff(staffID)
	updated, err := s.orders.AddStaff(ctx, orderID, staffID, assignableStatuses)
	if errors.Is(err, models.ErrConflict) {
		return nil, ErrAssignmentClosed
	}
	if err != nil {
		return nil, err
	}
	if already {
		return updated, nil
	}

	s.activity.Record(ctx, session, models.ActionAssign, models.TargetOrder, orderID,
		fmt.Sprintf("Assigned %s (%s)", st.Name, st.Role), "", staffID)
	publishOrder(ctx, s.publisher, models.OrderEventStaffAssigned, updated)
	return updated, nil
}

// Unassign removes a staff member. Removing someone not on the order is a no-op.
func (s *AssignmentService) Unassign(ctx context.Context, session auth.Session, orderID, staffID string) (*models.Order, error) {
	if !canAssign(session) {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.AcceptsAssignments() {
		return nil, ErrAssignmentClosed
	}

	was := order.HasStaff(staffID)
	updated, err := s.orders.RemoveStaff(ctx, orderID, staffID, assignableStatuses)
	if errors.Is(err, models.ErrConflict) {
		return nil, ErrAssignmentClosed
	}
	if err != nil {
		return nil, err
	}
	if !was {
		return updated, nil
	}

	s.activity.Record(ctx, session, models.ActionUnassign, models.TargetOrder, orderID, "Removed staff member", staffID, "")
	publishOrder(ctx, s.publisher, models.OrderEventStaffRemoved, updated)
	return updated, nil
}

// AssignedStaff returns the staff records on an order in one batch read.
func (s *AssignmentService) AssignedStaff(ctx context.Context, session auth.Session, orderID string) ([]*models.Staff, error) {
	if !session.Role.IsBackOffice() && session.Role != models.RoleCaptain {
		return nil, ErrForbidden
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(order.AssignedStaff) == 0 {
		return []*models.Staff{}, nil
	}
	return s.staff.GetMany(ctx, order.AssignedStaff)
}
