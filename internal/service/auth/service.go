package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/model"
	"github.com/nazaclinic/booking-api/internal/repository"
	apperrors "github.com/nazaclinic/booking-api/pkg/errors"
	"github.com/nazaclinic/booking-api/pkg/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
)

type Config struct {
	Secret      string
	ExpiryHours int
}

// Claims carries the authenticated caller's identity.
type Claims struct {
	SubjectID uuid.UUID
	Role      string
	Name      string
}

type jwtClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Service is the auth collaborator: admin credential checks and bearer
// tokens for both admin and patient callers. The booking core never sees
// passwords or tokens.
type Service struct {
	admins repository.AdminRepository
	hasher security.PasswordHasher
	cfg    Config
}

func NewService(admins repository.AdminRepository, hasher security.PasswordHasher, cfg Config) *Service {
	return &Service{admins: admins, hasher: hasher, cfg: cfg}
}

// Login verifies admin credentials and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin.ID, RoleAdmin, admin.Name)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// ChangePassword swaps the admin's password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, adminID uuid.UUID, current, next string) error {
	admin, err := s.admins.Get(ctx, adminID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(admin.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.admins.UpdatePassword(ctx, adminID, hash)
}

// IssuePatientToken mints a token for a phone-authenticated patient.
func (s *Service) IssuePatientToken(patient *model.Patient) (string, error) {
	return s.issueToken(patient.ID, RolePatient, patient.Name)
}

func (s *Service) issueToken(subject uuid.UUID, role, name string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.ExpiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{SubjectID: subject, Role: claims.Role, Name: claims.Name}, nil
}
