package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.UserRepository
	logger *zerolog.Logger
}

func NewUserService(repo domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logging.Component(logger, "user_service"),
	}
}

func (s *UserService) Create(ctx context.Context, in models.UserInput) (models.UserView, error) {
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		return models.UserView{}, apperr.Validation("Field email must not be blank")
	}
	user := &models.User{Email: *in.Email}
	if in.Name != nil {
		user.Name = *in.Name
	}

	exists, err := s.repo.ExistsUserByEmail(ctx, user.Email)
	if err != nil {
		return models.UserView{}, err
	}
	if exists {
		return models.UserView{}, emailTaken(user.Email)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return models.UserView{}, emailTaken(user.Email)
		}
		return models.UserView{}, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return models.NewUserView(user), nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (models.UserView, error) {
	user, err := findUser(ctx, s.repo, id)
	if err != nil {
		return models.UserView{}, err
	}
	return models.NewUserView(user), nil
}

func (s *UserService) List(ctx context.Context) ([]models.UserView, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, models.NewUserView(u))
	}
	return views, nil
}

// Update applies the non-nil fields. Email uniqueness is checked only when the
// email actually changes.
func (s *UserService) Update(ctx context.Context, id int64, in models.UserInput) (models.UserView, error) {
	user, err := findUser(ctx, s.repo, id)
	if err != nil {
		return models.UserView{}, err
	}

	if in.Email != nil && !strings.EqualFold(*in.Email, user.Email) {
		exists, err := s.repo.ExistsUserByEmail(ctx, *in.Email)
		if err != nil {
			return models.UserView{}, err
		}
		if exists {
			return models.UserView{}, emailTaken(*in.Email)
		}
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateEmail):
			return models.UserView{}, emailTaken(user.Email)
		case errors.Is(err, database.ErrNotFound):
			return models.UserView{}, apperr.NotFound("User with id %d not found", id)
		}
		return models.UserView{}, err
	}
	return models.NewUserView(user), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.repo.DeleteUser(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.NotFound("User with id %d not found", id)
	}
	if err == nil {
		s.logger.Info().Int64("user_id", id).Msg("user deleted")
	}
	return err
}

func emailTaken(email string) error {
	return apperr.DoubleEmail("User with email %s already exists", email)
}
