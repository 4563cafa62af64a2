package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

type UserService struct {
	users      UserStore
	jwtManager *auth.JWTManager
	activity   *ActivityService
	log        logger.Logger
}

func NewUserService(users UserStore, jwtManager *auth.JWTManager, activity *ActivityService, log logger.Logger) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
		activity:   activity,
		log:        log,
	}
}

// Login checks phone and password and issues a token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByPhone(ctx, normalizePhone(req.Phone))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountSuspended
	}
	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, req.Password)
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// rehash moves a hash made at an older cost to the current one. Login succeeds either way.
func (s *UserService) rehash(ctx context.Context, user *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.BusinessError("password rehash skipped", err, "user_id", user.ID)
		return
	}
	updated := *user
	updated.PasswordHash = hash
	if err := s.users.Update(ctx, &updated); err != nil {
		s.log.InternalError("password rehash failed", err, "user_id", user.ID)
		return
	}
	user.PasswordHash = hash
}

// Register creates a client account. Anyone may call it.
func (s *UserService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	req.Role = models.RoleClient
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}
	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) Create(ctx context.Context, session auth.Session, req *models.CreateUserRequest) (*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionCreate, models.TargetUser, user.ID,
		fmt.Sprintf("Created user %s (%s)", user.Name, user.Role), "", string(user.Role))
	return user, nil
}

func (s *UserService) create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Phone:        normalizePhone(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		CompanyName:  req.CompanyName,
		Address:      req.Address,
		GSTNumber:    req.GSTNumber,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, &models.ValidationError{Fields: map[string]string{"phone": "already registered"}}
		}
		return nil, err
	}
	return user, nil
}

// Get returns a user. Non-admins may only read themselves.
func (s *UserService) Get(ctx context.Context, session auth.Session, id string) (*models.User, error) {
	if !session.IsAdmin() && session.UserID != id {
		return nil, ErrForbidden
	}
	return s.users.Get(ctx, id)
}

func (s *UserService) List(ctx context.Context, session auth.Session, role models.Role) ([]*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"role": "unknown role"}}
	}
	return s.users.List(ctx, role)
}

// Update changes profile fields. Admins may edit anyone; others only themselves.
func (s *UserService) Update(ctx context.Context, session auth.Session, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if !session.IsAdmin() && session.UserID != id {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(req.Name)
	user.Phone = normalizePhone(req.Phone)
	user.Email = strings.TrimSpace(req.Email)
	user.CompanyName = req.CompanyName
	user.Address = req.Address
	user.GSTNumber = req.GSTNumber
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, &models.ValidationError{Fields: map[string]string{"phone": "already registered"}}
		}
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionUpdate, models.TargetUser, id, "Updated user profile", "", "")
	return user, nil
}

// UpdateRole changes a user's role. The change applies to the next request of that user.
func (s *UserService) UpdateRole(ctx context.Context, session auth.Session, id string, role models.Role) (*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, &models.ValidationError{Fields: map[string]string{"role": "unknown role"}}
	}
	if id == session.UserID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot remove their own admin role", ErrForbidden)
	}

	before, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionRoleChange, models.TargetUser, id,
		fmt.Sprintf("Changed role of %s", before.Name), string(before.Role), string(role))
	s.log.Info("user role changed", "user_id", id, "from", before.Role, "to", role, "by", session.UserID)
	return s.users.Get(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, session auth.Session, id string, active bool) (*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if id == session.UserID && !active {
		return nil, fmt.Errorf("%w: admins cannot suspend themselves", ErrForbidden)
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, session, models.ActionStatusChange, models.TargetUser, id,
		"Changed account status", "", fmt.Sprintf("active=%t", active))
	return s.users.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, session auth.Session, id string) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	if id == session.UserID {
		return fmt.Errorf("%w: admins cannot delete themselves", ErrForbidden)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, session, models.ActionDelete, models.TargetUser, id, "Deleted user", "", "")
	return nil
}

// EnsureAdmin creates the first admin when the user collection is empty.
func (s *UserService) EnsureAdmin(ctx context.Context, name, phone, password string) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if phone == "" || password == "" {
		s.log.Warn("no users exist and no bootstrap admin is configured")
		return nil
	}
	if name == "" {
		name = "Administrator"
	}

	req := &models.CreateUserRequest{Name: name, Phone: phone, Password: password, Role: models.RoleAdmin}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	user, err := s.create(ctx, req)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	s.activity.Record(ctx, auth.System, models.ActionCreate, models.TargetUser, user.ID, "Bootstrapped admin account", "", "")
	s.log.Info("bootstrap admin created", "user_id", user.ID)
	return nil
}

func normalizePhone(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+")
}
