package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

const (
	minPasswordLen        = 8
	defaultMaxOTPAttempts = 5
)

// AuthConfig holds the lifetimes used by the signup and session flows.
type AuthConfig struct {
	OTPTTL    time.Duration // how long a pending signup lives
	VerifyTTL time.Duration // session issued right after OTP verification
	LoginTTL  time.Duration // session issued by password login and Google sign-in

	// MaxOTPAttempts wrong codes discard the pending signup. Zero means 5.
	MaxOTPAttempts int
}

// RequestMeta is request context forwarded into the OTP email.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Session is a freshly minted session token.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	Users   repo.UserRepository
	Pending repo.PendingSignupRepository
	Mailer  gateway.OTPMailer
	Google  gateway.IDTokenVerifier
	JWT     *helpers.JWTManager
	Logger  logrus.FieldLogger
	Cfg     AuthConfig

	// Overridable in tests.
	GenOTP func() (string, error)
	Hash   func(plain string) (string, error)
}

func NewAuthService(users repo.UserRepository, pending repo.PendingSignupRepository, mailer gateway.OTPMailer, google gateway.IDTokenVerifier, jwt *helpers.JWTManager, logger logrus.FieldLogger, cfg AuthConfig) *AuthService {
	return &AuthService{
		Users:   users,
		Pending: pending,
		Mailer:  mailer,
		Google:  google,
		JWT:     jwt,
		Logger:  logger,
		Cfg:     cfg,
		GenOTP:  helpers.GenOTPCode,
		Hash:    helpers.HashPassword,
	}
}

func (s *AuthService) log() logrus.FieldLogger {
	if s.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return l
	}
	return s.Logger
}

// Signup stages a pending signup for email and mails it an OTP. It refuses
// emails that already own an account or a pending signup.
func (s *AuthService) Signup(ctx context.Context, email, password string, meta RequestMeta) (string, error) {
	email = helpers.NormalizeEmail(email)

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", ErrAccountExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", apperror.Internal(err)
	}

	if _, err := s.Pending.Get(ctx, email); err == nil {
		return "", ErrOTPAlreadySent
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", apperror.Internal(err)
	}

	p, err := s.stage(ctx, email, password)
	if err != nil {
		return "", err
	}

	if err := s.sendOTP(ctx, p, meta); err != nil {
		// drop the record so a retried signup is not blocked by an undelivered code
		if dErr := s.Pending.Delete(ctx, email); dErr != nil {
			s.log().WithError(dErr).WithField("email", email).Warn("cleanup pending signup failed")
		}
		return "", apperror.Internal(err)
	}

	signupsTotal.Add(1)
	return email, nil
}

// stage hashes password and stores a new pending signup with a fresh code.
func (s *AuthService) stage(ctx context.Context, email, password string) (*entity.PendingSignup, error) {
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := s.Hash(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	code, err := s.GenOTP()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	p := &entity.PendingSignup{Email: email, Password: hash, OTP: code, CreatedAt: time.Now().UTC()}
	if err := s.Pending.Create(ctx, p); err != nil {
		// lost a race against a concurrent signup for the same email
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrOTPAlreadySent
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *AuthService) sendOTP(ctx context.Context, p *entity.PendingSignup, meta RequestMeta) error {
	if s.Mailer == nil {
		return errors.New("otp mailer not configured")
	}
	return s.Mailer.SendOTP(ctx, gateway.OTPMessage{
		Email:     p.Email,
		Code:      p.OTP,
		ExpiresIn: s.Cfg.OTPTTL,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
}

// VerifyOTP promotes the pending signup for email into a verified user when
// otp matches the latest issued code, then opens a short session.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*Session, error) {
	email = helpers.NormalizeEmail(email)

	p, err := s.Pending.Get(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !helpers.OTPEqual(p.OTP, otp) {
		return nil, s.rejectOTP(ctx, email)
	}

	u, err := s.Users.CreateVerifiedIfAbsent(ctx, &entity.User{Email: p.Email, Password: p.Password, IsVerified: true})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// A leftover record is harmless: promotion is idempotent and the key expires.
	if err := s.Pending.Delete(ctx, email); err != nil {
		s.log().WithError(err).WithField("email", email).Warn("delete pending signup failed")
	}

	otpVerifiedTotal.Add(1)
	return s.IssueSession(u.ID, s.Cfg.VerifyTTL)
}

// rejectOTP counts a wrong code. Once the limit is hit the pending signup is
// dropped, so the code can no longer be guessed and the owner must sign up again.
func (s *AuthService) rejectOTP(ctx context.Context, email string) error {
	n, err := s.Pending.RecordFailedAttempt(ctx, email)
	if err != nil {
		return apperror.Internal(err)
	}
	limit := s.Cfg.MaxOTPAttempts
	if limit <= 0 {
		limit = defaultMaxOTPAttempts
	}
	if n < limit {
		return ErrInvalidOTP
	}
	if err := s.Pending.Delete(ctx, email); err != nil {
		return apperror.Internal(err)
	}
	s.log().WithField("email", email).Warn("pending signup discarded after repeated wrong codes")
	return ErrTooManyOTPAttempts
}

// ResendOTP replaces the code of an existing pending signup, keeping its
// expiry window and ignoring password. Without a pending signup it stages a
// new one from password, as Signup would.
func (s *AuthService) ResendOTP(ctx context.Context, email, password string, meta RequestMeta) error {
	email = helpers.NormalizeEmail(email)

	p, err := s.Pending.Get(ctx, email)
	switch {
	case err == nil:
		code, gErr := s.GenOTP()
		if gErr != nil {
			return apperror.Internal(gErr)
		}
		rErr := s.Pending.ReplaceOTP(ctx, email, code)
		if rErr == nil {
			p.OTP = code
			break
		}
		if !errors.Is(rErr, repo.ErrNotFound) {
			return apperror.Internal(rErr)
		}
		// expired between read and write
		if p, err = s.restage(ctx, email, password); err != nil || p == nil {
			return err
		}
	case errors.Is(err, repo.ErrNotFound):
		if p, err = s.restage(ctx, email, password); err != nil || p == nil {
			return err
		}
	default:
		return apperror.Internal(err)
	}

	if err := s.sendOTP(ctx, p, meta); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// restage creates a pending signup during resend. It returns nil, nil when
// the email already belongs to an account: nothing is staged and no mail goes out.
func (s *AuthService) restage(ctx context.Context, email, password string) (*entity.PendingSignup, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		s.log().WithField("email", email).Info("resend for existing account ignored")
		return nil, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	p, err := s.stage(ctx, email, password)
	if errors.Is(err, ErrOTPAlreadySent) {
		// a concurrent signup won; its code stands
		return s.Pending.Get(ctx, email)
	}
	return p, err
}

// Login checks the password of a verified account and opens a long session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = helpers.NormalizeEmail(email)

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Google-only accounts cannot use a password
	if !u.HasPassword() || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}

	loginsTotal.Add(1)
	return s.IssueSession(u.ID, s.Cfg.LoginTTL)
}

// GoogleSignin verifies idToken and signs in the owner of its email, creating
// a verified password-less account on first use.
func (s *AuthService) GoogleSignin(ctx context.Context, idToken string) (*Session, error) {
	if s.Google == nil {
		return nil, ErrGoogleNotConfigured
	}
	id, err := s.Google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidIDToken) {
			return nil, apperror.Wrap(ErrInvalidGoogleToken, err)
		}
		return nil, apperror.Internal(err)
	}
	if !id.EmailVerified {
		return nil, ErrInvalidGoogleToken
	}
	email := helpers.NormalizeEmail(id.Email)

	u, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !u.IsVerified {
			// Google has vouched for the address
			u.IsVerified = true
			if uErr := s.Users.Update(ctx, u); uErr != nil {
				return nil, apperror.Internal(uErr)
			}
		}
	case errors.Is(err, repo.ErrNotFound):
		u = &entity.User{Email: email, Name: strings.TrimSpace(id.Name), AvatarURL: id.Picture, IsVerified: true}
		if cErr := s.Users.Create(ctx, u); cErr != nil {
			if !errors.Is(cErr, repo.ErrDuplicate) {
				return nil, apperror.Internal(cErr)
			}
			if u, err = s.Users.GetByEmail(ctx, email); err != nil {
				return nil, apperror.Internal(err)
			}
		}
	default:
		return nil, apperror.Internal(err)
	}

	loginsTotal.Add(1)
	return s.IssueSession(u.ID, s.Cfg.LoginTTL)
}

// CheckAuth validates token on its own, without consulting the user store.
func (s *AuthService) CheckAuth(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return "", apperror.Wrap(ErrInvalidToken, err)
	}
	return claims.UserID, nil
}

// IssueSession mints a token for userID valid for ttl.
func (s *AuthService) IssueSession(userID string, ttl time.Duration) (*Session, error) {
	token, exp, err := s.JWT.Generate(userID, ttl)
	if err != nil {
		s.log().WithError(err).WithField("user_id", userID).Error("generate session token failed")
		return nil, apperror.Internal(err)
	}
	return &Session{UserID: userID, Token: token, ExpiresAt: exp}, nil
}
