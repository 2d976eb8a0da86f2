package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"Postify/internal/core/files"
	"Postify/internal/core/pagination"
	"Postify/internal/core/validation"
)

// Account field length bounds
const (
	minUsernameLength    = 4
	maxUsernameLength    = 255
	minDisplayNameLength = 4
	maxDisplayNameLength = 255
	minPasswordLength    = 8
	maxPasswordLength    = 255
)

var (
	lowerRegex = regexp.MustCompile(`[a-z]`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`\d`)

	errInvalidAvatar = validation.NewError("image", avatarTypeMessage)
)

type userService struct {
	userRepo UserRepository
	hasher   PasswordHasher
	files    files.Store
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, hasher PasswordHasher, fileStore files.Store) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		files:    fileStore,
	}
}

// CreateUser validates and registers a new account
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := s.validateCreateRequest(ctx, req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &User{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a race with a concurrent registration of the same name
		if errors.Is(err, ErrUsernameTaken) {
			return nil, validation.NewError("username", "username must be unique")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("[USER-CREATE] user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUserByID retrieves a user by id
func (s *userService) GetUserByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByUsername(ctx, username)
}

// ListUsers pages through users, leaving out the viewer
func (s *userService) ListUsers(ctx context.Context, viewerID int64, req pagination.Request) (*pagination.Page[*User], error) {
	req = req.Normalize()

	items, total, err := s.userRepo.List(ctx, viewerID, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return pagination.NewPage(items, total, req), nil
}

// UpdateUser changes display name and, optionally, the avatar image.
// The previous avatar file is removed only after the new one is persisted.
func (s *userService) UpdateUser(ctx context.Context, actorID, targetID int64, req UpdateUserRequest) (*User, error) {
	if actorID == 0 || actorID != targetID {
		return nil, ErrForbidden
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	errs := validation.Errors{}
	validateLength(errs, "displayName", req.DisplayName, minDisplayNameLength, maxDisplayNameLength)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	previousImage := user.Image
	var storedImage string
	if req.Image != nil && *req.Image != "" {
		data, ext, prepErr := prepareAvatar(*req.Image)
		if prepErr != nil {
			return nil, prepErr
		}
		storedImage, err = s.files.Save(ctx, files.FolderProfile, data, ext)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		user.Image = &storedImage
	}
	user.DisplayName = req.DisplayName

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		if storedImage != "" {
			s.removeAvatar(ctx, storedImage)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if storedImage != "" && previousImage != nil && *previousImage != "" {
		s.removeAvatar(ctx, *previousImage)
	}

	return updated, nil
}

// Authenticate verifies a username/password pair.
// Unknown user and wrong password produce the same error.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) removeAvatar(ctx context.Context, name string) {
	if err := s.files.Delete(ctx, files.FolderProfile, name); err != nil {
		slog.Warn("[USER-UPDATE] failed to remove avatar file",
			"file", name,
			"error", err,
		)
	}
}

func (s *userService) validateCreateRequest(ctx context.Context, req CreateUserRequest) error {
	errs := validation.Errors{}

	if req.Username == "" {
		errs.Add("username", "username is required")
	} else {
		validateLength(errs, "username", req.Username, minUsernameLength, maxUsernameLength)
	}

	if req.DisplayName == "" {
		errs.Add("displayName", "displayName is required")
	} else {
		validateLength(errs, "displayName", req.DisplayName, minDisplayNameLength, maxDisplayNameLength)
	}

	if req.Password == "" {
		errs.Add("password", "password is required")
	} else {
		validateLength(errs, "password", req.Password, minPasswordLength, maxPasswordLength)
		if !lowerRegex.MatchString(req.Password) || !upperRegex.MatchString(req.Password) || !digitRegex.MatchString(req.Password) {
			errs.Add("password", "password must have at least one uppercase, one lowercase letter and one number")
		}
	}

	if _, taken := errs["username"]; !taken {
		_, err := s.userRepo.GetByUsername(ctx, req.Username)
		switch {
		case err == nil:
			errs.Add("username", "username must be unique")
		case !errors.Is(err, ErrUserNotFound):
			return fmt.Errorf("failed to check username: %w", err)
		}
	}

	return errs.Err()
}

func validateLength(errs validation.Errors, field, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		errs.Add(field, fmt.Sprintf("size must be between %d and %d", minLen, maxLen))
	}
}
