package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-otp-login/internal/domain"
	"github.com/go-otp-login/internal/infrastructure/smtp"
	"github.com/go-otp-login/internal/infrastructure/sns"
	"github.com/go-otp-login/internal/pkg/id"
	pkgotp "github.com/go-otp-login/internal/pkg/otp"
)

type GetOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubmitOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// OTPIssue is the outcome of a successful issuance.
type OTPIssue struct {
	Code      string
	ExpiresAt time.Time
}

// UserData is the projection of a user returned on successful login.
type UserData struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Age         *int   `json:"age"`
}

// LoginResult is the outcome of a successful verification.
type LoginResult struct {
	UserData    UserData
	AccessToken string
}

type Service interface {
	RequestOTP(ctx context.Context, email string) (*OTPIssue, error)
	SubmitOTP(ctx context.Context, email, code string) (*LoginResult, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	StampLastLogin(ctx context.Context, userID string, at time.Time) error
}

type otpStore interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	GetActive(ctx context.Context, email string, now time.Time) (*domain.OTPRecord, error)
	Delete(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, email string, max int, now time.Time) (int, error)
	MarkUsed(ctx context.Context, email string, at time.Time) error
}

type tokenSigner interface {
	Sign(userID, email string) (string, error)
}

type service struct {
	otpRepo     otpStore
	userRepo    userStore
	mailer      smtp.Mailer
	smsSender   sns.SMSSender
	signer      tokenSigner
	otpExpiry   time.Duration
	maxAttempts int
}

type ServiceDeps struct {
	OTPRepo     otpStore
	UserRepo    userStore
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	Signer      tokenSigner
	OTPExpiry   time.Duration
	MaxAttempts int
}

func NewService(deps ServiceDeps) Service {
	return &service{
		otpRepo:     deps.OTPRepo,
		userRepo:    deps.UserRepo,
		mailer:      deps.Mailer,
		smsSender:   deps.SMSSender,
		signer:      deps.Signer,
		otpExpiry:   deps.OTPExpiry,
		maxAttempts: deps.MaxAttempts,
	}
}

// RequestOTP derives a code from the user's phone number and stores it with a
// fresh expiry window. Any previous record for the address is deleted first,
// so at most one row per email exists after issuance.
func (s *service) RequestOTP(ctx context.Context, email string) (*OTPIssue, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Errorf(domain.ErrNotFound, "User not found, Please register first.")
	}
	if u.PhoneNumber == "" {
		return nil, domain.Errorf(domain.ErrNotFound, "Phone number not found for this user.")
	}

	code := pkgotp.FromPhone(u.PhoneNumber)
	now := time.Now()
	expiresAt := now.Add(s.otpExpiry)

	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return nil, fmt.Errorf("delete previous otp: %w", err)
	}
	rec := &domain.OTPRecord{
		Email:     email,
		OtpID:     id.New(),
		Code:      code,
		Attempts:  0,
		CreatedAt: now,
		ExpiresAt: expiresAt.Unix(),
		IsUsed:    false,
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	s.deliver(ctx, u, code)
	return &OTPIssue{Code: code, ExpiresAt: expiresAt}, nil
}

// deliver pushes the code to the user's phone and inbox. Delivery is
// best-effort: the code is also returned in the response body, so a failed
// send must not fail the request.
func (s *service) deliver(ctx context.Context, u *domain.User, code string) {
	if s.smsSender != nil {
		if err := s.smsSender.SendSMS(ctx, u.PhoneNumber, "Your login OTP: "+code); err != nil {
			slog.Warn("failed to send OTP SMS", "user_id", u.UserID, "err", err)
		}
	}
	if s.mailer != nil {
		if err := s.mailer.SendEmail(u.Email, "Your login OTP", "Your login OTP: "+code); err != nil {
			slog.Warn("failed to send OTP email", "user_id", u.UserID, "err", err)
		}
	}
}

// SubmitOTP validates a submitted code against the active record for email.
// Wrong codes are counted with a conditional increment so concurrent
// submissions cannot slip past the attempt cap; the cap being reached deletes
// the record so even the correct code needs a fresh issuance afterwards.
func (s *service) SubmitOTP(ctx context.Context, email, code string) (*LoginResult, error) {
	now := time.Now()
	rec, err := s.otpRepo.GetActive(ctx, email, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Errorf(domain.ErrNotFound, "OTP not found or expired")
		}
		return nil, err
	}

	if code != rec.Code {
		return nil, s.countFailure(ctx, email, now)
	}

	if err := s.otpRepo.MarkUsed(ctx, email, now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Lost a race with another submission for the same record.
			return nil, domain.Errorf(domain.ErrNotFound, "OTP not found or expired")
		}
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	token, err := s.signer.Sign(u.UserID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	if err := s.userRepo.StampLastLogin(ctx, u.UserID, now); err != nil {
		return nil, fmt.Errorf("stamp last login: %w", err)
	}

	return &LoginResult{
		UserData: UserData{
			UserID:      u.UserID,
			FullName:    u.FullName,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Age:         u.Age,
		},
		AccessToken: token,
	}, nil
}

func (s *service) countFailure(ctx context.Context, email string, now time.Time) error {
	attempts, err := s.otpRepo.IncrementAttempts(ctx, email, s.maxAttempts, now)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent submission already reached the cap.
			return s.exhaust(ctx, email)
		}
		return err
	}
	if remaining := s.maxAttempts - attempts; remaining > 0 {
		return domain.Errorf(domain.ErrBadRequest, "Invalid OTP. You have %d attempts left.", remaining)
	}
	return s.exhaust(ctx, email)
}

// exhaust removes the record so no further submissions can target it.
func (s *service) exhaust(ctx context.Context, email string) error {
	if err := s.otpRepo.Delete(ctx, email); err != nil {
		return fmt.Errorf("delete exhausted otp: %w", err)
	}
	return domain.Errorf(domain.ErrBadRequest, "Maximum OTP attempts exceeded. Please request a new OTP.")
}
