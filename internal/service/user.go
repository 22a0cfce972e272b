package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rmg-labs/incident-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository определяет контракт для работы с бд пользователей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int64) error
}

// SessionStore определяет контракт для хранилища сессионных токенов
type SessionStore interface {
	Create(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// UserService определяет контракт для бизнес-логики учетных записей
type UserService interface {
	Register(ctx context.Context, user *models.User, password string) (string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (int64, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) (*models.User, error)
}

type userService struct {
	repo       UserRepository
	sessions   SessionStore
	logger     *logrus.Logger
	sessionTTL time.Duration
}

func NewUserService(repo UserRepository, sessions SessionStore, logger *logrus.Logger, sessionTTL time.Duration) UserService {
	return &userService{
		repo:       repo,
		sessions:   sessions,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Register создает учетную запись и открывает сессию
func (s *userService) Register(ctx context.Context, user *models.User, password string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Register",
		"email":   user.Email,
	})
	log.Info("Attempting to register a new user")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return "", fmt.Errorf("service: could not hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.IsActive = true

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			log.Warn("Registration with duplicate email")
			return "", ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user in repository")
		return "", fmt.Errorf("service: could not create user: %w", err)
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to open session for new user")
		return "", fmt.Errorf("service: could not open session: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return token, nil
}

// Login проверяет учетные данные и открывает сессию
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Login",
		"email":   email,
	})
	log.Info("Attempting to log in")

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Единый ответ для несуществующего пользователя и неверного пароля,
			// чтобы не допустить перебора учетных записей
			return nil, "", ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to get user by email")
		return nil, "", fmt.Errorf("service: could not get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Invalid password provided")
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		log.Warn("Login attempt for disabled account")
		return nil, "", ErrUserInactive
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Не критично для входа, только логируем
		log.WithError(err).Warn("Failed to update last login timestamp")
	} else {
		user.LastLogin = time.Now()
	}

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to open session")
		return nil, "", fmt.Errorf("service: could not open session: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, token, nil
}

// Logout завершает сессию, делая токен недействительным
func (s *userService) Logout(ctx context.Context, token string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Logout",
	})

	if err := s.sessions.Delete(ctx, token); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.WithError(err).Error("Failed to delete session")
		return fmt.Errorf("service: could not delete session: %w", err)
	}

	log.Info("User logged out successfully")
	return nil
}

// Authenticate возвращает ID пользователя по сессионному токену
func (s *userService) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("service: could not get session: %w", err)
	}
	return userID, nil
}

// GetProfile возвращает профиль пользователя
func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not get user: %w", err)
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя
func (s *userService) UpdateProfile(ctx context.Context, user *models.User) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "UpdateProfile",
		"user_id": user.ID,
	})
	log.Info("Attempting to update user profile")

	existing, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("service: could not get user: %w", err)
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.PhoneNumber = user.PhoneNumber
	existing.Address = user.Address
	existing.Pincode = user.Pincode
	existing.City = user.City
	existing.Country = user.Country

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update user in repository")
		return nil, fmt.Errorf("service: could not update user: %w", err)
	}

	log.Info("User profile updated successfully")
	return existing, nil
}

// openSession генерирует непрозрачный токен и сохраняет его в хранилище сессий
func (s *userService) openSession(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.sessions.Create(ctx, token, userID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}
