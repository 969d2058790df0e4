package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-login/internal/domain"
)

// counterUserID is the counters-table row backing the USER### sequence.
const counterUserID = "user_id"

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName    = "full_name"
	fieldEmail       = "email"
	fieldPhoneNumber = "phone_number"
	fieldAge         = "age"
)

const listLimit = 1000

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	Scan(ctx context.Context, limit int32) ([]domain.User, error)
}

type counterStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

type service struct {
	repo     userStore
	counters counterStore
}

type ServiceDeps struct {
	UserRepo    userStore
	CounterRepo counterStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, counters: deps.CounterRepo}
}

// Create registers a new user with a sequential USER### id. The id comes from
// an atomic store-side counter, so concurrent instances never collide.
func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.Errorf(domain.ErrBadRequest, "Email already exists")
	}
	if _, err := s.repo.GetByPhone(ctx, req.PhoneNumber); err == nil {
		return nil, domain.Errorf(domain.ErrBadRequest, "Phone Number already exists")
	}

	seq, err := s.counters.Next(ctx, counterUserID)
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	now := time.Now()
	u := &domain.User{
		UserID:           fmt.Sprintf("USER%03d", seq),
		FullName:         req.FullName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Age:              req.Age,
		CreatedDate:      now,
		LastModifiedDate: now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.Scan(ctx, listLimit)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, domain.Errorf(domain.ErrNotFound, "User with ID %s not found", userID)
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates[fieldPhoneNumber] = *req.PhoneNumber
	}
	if req.Age != nil {
		updates[fieldAge] = *req.Age
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "User with ID %s not found", userID)
		}
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	err := s.repo.Delete(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, "User with ID %s not found", userID)
	}
	return err
}
