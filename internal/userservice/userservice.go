// userservice.go
package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	structValidator "github.com/go-playground/validator/v10"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/credentials"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/pkg/helper"
)

type UserService struct {
	UserRepo  interfaces.UserRepository
	Logger    interfaces.Logger
	validator *structValidator.Validate
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, logger interfaces.Logger, validator *structValidator.Validate) *UserService {
	return &UserService{
		UserRepo:  repo,
		Logger:    logger,
		validator: validator,
	}
}

// Register validates the registration form and stores a new user. It does not
// log the user in.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequestDTO) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", req.Username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", req.Username)

	if verr := s.validateRegistration(req); !verr.Empty() {
		s.Logger.Info("Registration rejected", "func", funcName, "user", req.Username, "reasons", verr.Messages)
		return "", verr
	}

	existing, err := s.UserRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", req.Username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if existing != nil {
		s.Logger.Info("Registration rejected", "func", funcName, "user", req.Username, "reasons", apperrors.MsgUsernameTaken)
		return "", apperrors.ErrDuplicateUsername
	}

	return s.CreateUserWithPassword(ctx, req.Username, req.Email, req.Password)
}

// validateRegistration collects every problem with req. The password
// confirmation is always compared, independent of the other checks.
func (s *UserService) validateRegistration(req dto.RegisterRequestDTO) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()

	if err := s.validator.Struct(req); err != nil {
		var fieldErrs structValidator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Add(apperrors.MsgFillAllFields)
		}
		for _, fe := range fieldErrs {
			switch fe.Tag() {
			case "email":
				verr.Add(apperrors.MsgInvalidEmail)
			case "max":
				verr.Add(apperrors.MsgUsernameTooLong)
			default:
				verr.Add(apperrors.MsgFillAllFields)
			}
		}
	}
	if len(req.Password) > credentials.MaxPasswordBytes {
		verr.Add(apperrors.MsgPasswordTooLong)
	}
	if req.Password != req.Password2 {
		verr.Add(apperrors.MsgPasswordsMismatch)
	}
	return verr
}

// CreateUserWithPassword hashes password and stores the user.
func (s *UserService) CreateUserWithPassword(ctx context.Context, username, email, password string) (string, error) {
	funcName := helper.GetFuncName()
	hashedPassword, err := credentials.HashPassword(password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}
	return s.addUser(ctx, funcName, models.NewUser(username, email, hashedPassword))
}

// CreateUserWithHash stores a user whose password is already a bcrypt digest.
// Anything that is not a well-formed digest is rejected rather than hashed.
func (s *UserService) CreateUserWithHash(ctx context.Context, username, email, hash string) (string, error) {
	funcName := helper.GetFuncName()
	if !credentials.ValidHash(hash) {
		s.Logger.Error(ErrInvalidHash, "func", funcName, "user", username)
		return "", errors.New(ErrInvalidHash)
	}
	return s.addUser(ctx, funcName, models.NewUser(username, email, hash))
}

func (s *UserService) addUser(ctx context.Context, funcName string, user *models.User) (string, error) {
	s.Logger.Info("Registering user", "func", funcName, "user", user.Username)

	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			s.Logger.Info("Registration rejected", "func", funcName, "user", user.Username, "reasons", err.Error())
			return "", err
		}
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", user.Username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	s.Logger.Info("User registered successfully", "func", funcName, "user", user.Username, "ID", userID)
	return userID, nil
}

// Login verifies a username and password and returns the user's identity.
// Credential failures wrap apperrors.ErrAuthentication.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	funcName := helper.GetFuncName()
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if username == "" || password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Info(ErrUserNotFound, "func", funcName, "user", username)
		return nil, apperrors.ErrUserNotFound
	}

	if !credentials.VerifyPassword(user.PasswordHash, password) {
		s.Logger.Info(ErrInvalidPassword, "func", funcName, "user", username)
		return nil, apperrors.ErrInvalidPassword
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	identity := user.Identity()
	return &identity, nil
}
