package service

import (
	"context"
	"errors"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

func findUser(ctx context.Context, repo domain.UserRepository, id int64) (*models.User, error) {
	user, err := repo.GetUserByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("User with id %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func findItem(ctx context.Context, repo domain.ItemRepository, id int64) (*models.Item, error) {
	item, err := repo.GetItemByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Item with id %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return item, nil
}

func findBooking(ctx context.Context, repo domain.BookingRepository, id int64) (*models.Booking, error) {
	booking, err := repo.GetBooking(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Booking with id %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return booking, nil
}

func findRequest(ctx context.Context, repo domain.RequestRepository, id int64) (*models.ItemRequest, error) {
	request, err := repo.GetRequest(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.NotFound("Request with id %d not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return request, nil
}
