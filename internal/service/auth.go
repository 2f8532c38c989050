package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calovate/backend/internal/models"
	"github.com/calovate/backend/internal/types"
)

// AuthService handles signup, login, token validation and goal updates.
type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account with default nutrition goals and returns the
// new session plus a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	goals := models.DefaultGoals(user.ID)
	if err := s.users.Create(ctx, &user, &goals); err != nil {
		// Two concurrent registrations can both pass the lookup above; the
		// loser hits the unique index on email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", &PersistenceError{Op: "create user", Err: err}
	}

	sess := &Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Goals:  goals,
	}
	token, err := s.generateToken(sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// Login verifies the credentials and returns the session plus a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sess, err := s.CurrentUser(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	token, err := s.generateToken(sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// CurrentUser resolves a user id to a session with a fresh goals snapshot.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "get user", Err: err}
	}
	goals, err := s.users.GetGoals(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "get goals", Err: err}
	}
	return &Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Goals:  *goals,
	}, nil
}

// UpdateGoals replaces the user's daily targets.
func (s *AuthService) UpdateGoals(ctx context.Context, userID uuid.UUID, calories, protein, carbs, sugar, fat float64) (*models.NutritionGoals, error) {
	goals, err := s.users.GetGoals(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "get goals", Err: err}
	}
	goals.Calories = calories
	goals.Protein = protein
	goals.Carbs = carbs
	goals.Sugar = sugar
	goals.Fat = fat
	if err := s.users.UpdateGoals(ctx, goals); err != nil {
		return nil, &PersistenceError{Op: "update goals", Err: err}
	}
	return goals, nil
}

func (s *AuthService) generateToken(sess *Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id": sess.UserID.String(),
		"email":   sess.Email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session JWT.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	email, _ := claims["email"].(string)

	return &types.TokenClaims{
		UserID: userID,
		Email:  email,
	}, nil
}
