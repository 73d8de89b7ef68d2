package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	repo "github.com/oksasatya/go-travel-assistant/internal/domain/repository"
	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
)

type UserService struct {
	Repo    repo.UserRepository
	Avatars gateway.AvatarStore // nil when GCS is not configured
	Logger  logrus.FieldLogger
}

func NewUserService(repo repo.UserRepository, avatars gateway.AvatarStore, logger logrus.FieldLogger) *UserService {
	return &UserService{Repo: repo, Avatars: avatars, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name string
}

// UpdateProfile changes the display name; an empty name leaves it unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// UploadAvatar stores the image under avatars/<userID>/ and points the
// profile at its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.Avatars == nil {
		return "", ErrAvatarNotConfigured
	}
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := s.Avatars.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", apperror.Internal(err)
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", apperror.Internal(err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "object": objectPath}).Info("avatar uploaded")
	}
	return url, nil
}
