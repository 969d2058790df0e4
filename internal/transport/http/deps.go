package http

import (
	"github.com/go-otp-login/internal/infrastructure/dynamo"
	"github.com/go-otp-login/internal/infrastructure/smtp"
	"github.com/go-otp-login/internal/infrastructure/sns"
	"github.com/go-otp-login/internal/pkg/token"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	OTPRepo     *dynamo.OTPRepo
	CounterRepo *dynamo.CounterRepo
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	TokenSigner *token.Signer
}
