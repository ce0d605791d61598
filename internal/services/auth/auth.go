package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"farm-advisor/config"
	"farm-advisor/internal/models"
	"farm-advisor/internal/observability"
	"farm-advisor/internal/repositories"
	"farm-advisor/pkg/observe"
)

// Roles carried in session tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims is the JWT claim set for a session.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service handles registration, login/logout, and session tokens. Passwords
// are bcrypt-hashed before storage; the administrator bypass credential is
// checked before the registry.
type Service struct {
	store     repositories.AccountStore
	secretKey string
	tokenTTL  time.Duration
	issuer    string

	adminEmail    string
	adminPassword string

	l *observe.Logger
	m *observability.Metrics
}

func NewService(cfg *config.Config, store repositories.AccountStore, l *observe.Logger, m *observability.Metrics) *Service {
	return &Service{
		store:         store,
		secretKey:     cfg.Auth.JWTSecret,
		tokenTTL:      time.Duration(cfg.Auth.TokenTTL) * time.Hour,
		issuer:        cfg.App.Name,
		adminEmail:    cfg.Auth.AdminEmail,
		adminPassword: cfg.Auth.AdminPassword,
		l:             l,
		m:             m,
	}
}

// Register creates a new account. A taken email fails with
// models.ErrDuplicateAccount.
func (s *Service) Register(name, email, phone, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.m.Registrations.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}

	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, models.ErrDuplicateAccount) {
			s.m.Registrations.WithLabelValues("duplicate").Inc()
		} else {
			s.m.Registrations.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	s.m.Registrations.WithLabelValues("success").Inc()
	s.l.Info("registered account", map[string]any{"email": email})

	return user, nil
}

// Login authenticates and returns a signed session token. Unknown email and
// wrong password produce the same models.ErrInvalidCredentials. Successful
// logins are appended to the activity log.
func (s *Service) Login(email, password string) (string, *Claims, error) {
	// Administrator bypass, checked before the registry.
	if email == s.adminEmail && password == s.adminPassword {
		token, claims, err := s.generateToken("Administrator", email, "", RoleAdmin)
		if err != nil {
			return "", nil, err
		}
		if err := s.store.AppendActivity("Administrator", email, "", models.ActionLogin); err != nil {
			s.l.Warning("failed to log admin login", map[string]any{"err": err.Error()})
		}
		s.m.Logins.WithLabelValues("success").Inc()
		return token, claims, nil
	}

	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		s.m.Logins.WithLabelValues("rejected").Inc()
		if errors.Is(err, models.ErrInvalidCredentials) {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.m.Logins.WithLabelValues("rejected").Inc()
		return "", nil, models.ErrInvalidCredentials
	}

	token, claims, err := s.generateToken(user.Name, user.Email, user.Phone, RoleUser)
	if err != nil {
		return "", nil, err
	}

	if err := s.store.AppendActivity(user.Name, user.Email, user.Phone, models.ActionLogin); err != nil {
		s.l.Warning("failed to log login", map[string]any{"email": email, "err": err.Error()})
	}

	s.m.Logins.WithLabelValues("success").Inc()
	s.l.Info("login", map[string]any{"email": email})

	return token, claims, nil
}

// Logout appends a logout entry for the session identity.
func (s *Service) Logout(claims *Claims) error {
	if err := s.store.AppendActivity(claims.Name, claims.Email, claims.Phone, models.ActionLogout); err != nil {
		return err
	}
	s.l.Info("logout", map[string]any{"email": claims.Email})
	return nil
}

func (s *Service) generateToken(name, email, phone, role string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to sign token")
	}
	return signed, claims, nil
}

// Activity returns the most recent activity log entries, newest first.
func (s *Service) Activity(limit int) ([]models.ActivityEntry, error) {
	return s.store.ListActivity(limit)
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
