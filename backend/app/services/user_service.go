package services

import (
	"context"
	"errors"
	"fmt"

	"todo-guard/backend/app/dto"
	"todo-guard/backend/app/models"
	"todo-guard/backend/app/repo"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("current password does not match")
)

// PasswordHasher hashes and verifies passwords. Compare returns nil only on a
// match.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type BcryptHasher struct{ Cost int }

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type UserService struct {
	users       *repo.UserRepository
	hasher      PasswordHasher
	phoneRegion string
}

func NewUserService(users *repo.UserRepository, hasher PasswordHasher, phoneRegion string) *UserService {
	if phoneRegion == "" {
		phoneRegion = "US"
	}
	return &UserService{users: users, hasher: hasher, phoneRegion: phoneRegion}
}

// Register creates an active user. A taken username or email yields
// ErrUserExists without saying which.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	n, err := s.users.CountByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrUserExists
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:          req.Email,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hash,
		IsActive:       true,
		Role:           req.Role,
	}
	if req.PhoneNumber != "" {
		phone := req.PhoneNumber
		u.PhoneNumber = &phone
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username/password pair. Unknown users, wrong
// passwords and inactive accounts all return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if s.hasher.Compare(u.HashedPassword, password) != nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) find(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *UserService) Profile(ctx context.Context, id uint) (*dto.Profile, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := &dto.Profile{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		PhoneNumber: u.PhoneNumber,
	}
	if u.PhoneNumber != nil {
		p.PhoneE164 = s.formatE164(*u.PhoneNumber)
	}
	return p, nil
}

func (s *UserService) formatE164(raw string) string {
	num, err := phonenumbers.Parse(raw, s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// ChangePassword verifies the current password and stores the new hash in a
// single column update.
func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if s.hasher.Compare(u.HashedPassword, current) != nil {
		return ErrPasswordMismatch
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ChangePhoneNumber(ctx context.Context, id uint, phone string) error {
	err := s.users.UpdatePhoneNumber(ctx, id, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}
