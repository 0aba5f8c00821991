package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/Domenick1991/lastchanceair/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

type IdentityUseCase interface {
	Signup(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Account, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

type ResetNotifier interface {
	PasswordReset(to, link string)
}

type IdentityService struct {
	users           repository.UserRepository
	notifier        ResetNotifier
	frontendBaseURL string
	now             func() time.Time
	newToken        func() string
}

func NewIdentityService(users repository.UserRepository, notifier ResetNotifier, frontendBaseURL string) *IdentityService {
	return &IdentityService{
		users:           users,
		notifier:        notifier,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		now:             time.Now,
		newToken:        uuid.NewString,
	}
}

func (s *IdentityService) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required: %w", domain.ErrInvalidRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		log.Printf("hash password for %s: %v", email, err)
		return nil, domain.ErrInternal
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		log.Printf("signup db error: %v", err)
		return nil, domain.ErrInternal
	}

	return &domain.Account{ID: user.ID, Email: user.Email}, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		log.Printf("login db error: %v", err)
		return nil, domain.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Account{ID: user.ID, Email: user.Email}, nil
}

// RequestPasswordReset answers the same way whether or not the email is
// registered, but only hands a reset link to the notifier for registered
// addresses, so unknown mailboxes never receive reset mail. The token is not
// stored, so the link cannot actually be redeemed.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email required: %w", domain.ErrInvalidRequest)
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("password reset lookup: %v", err)
		}
		return nil
	}

	link := s.frontendBaseURL + "/reset?token=" + url.QueryEscape(s.newToken())
	if s.notifier != nil {
		s.notifier.PasswordReset(email, link)
	}
	return nil
}

var _ IdentityUseCase = (*IdentityService)(nil)
