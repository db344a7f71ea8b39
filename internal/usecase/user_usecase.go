package usecase

import (
	"context"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	Name            string
	Bio             string
	Location        string
	HourlyRate      float64
	Skills          []string
	ExperienceLevel string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	user.Bio = input.Bio
	user.Location = input.Location
	if input.HourlyRate > 0 {
		user.HourlyRate = input.HourlyRate
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.ExperienceLevel != "" {
		user.ExperienceLevel = input.ExperienceLevel
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// PublicProfile strips fields that are not meant to cross the API boundary
// for other users.
type PublicProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	IsVerified      bool     `json:"is_verified"`
	Rating          float64  `json:"rating,omitempty"`
	RatingCount     int      `json:"rating_count,omitempty"`
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, id string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:              user.ID,
		Name:            user.Name,
		Role:            user.Role,
		Bio:             user.Bio,
		Location:        user.Location,
		Skills:          user.Skills,
		ExperienceLevel: user.ExperienceLevel,
		IsVerified:      user.IsVerified,
		Rating:          user.Rating,
		RatingCount:     user.RatingCount,
	}, nil
}
