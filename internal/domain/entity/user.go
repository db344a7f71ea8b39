package entity

import (
	"time"
)

const (
	RoleTaskPoster = "task_poster"
	RoleFreelancer = "freelancer"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Name     string `json:"name" firestore:"name"`
	Role     string `json:"role" firestore:"role"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Location string `json:"location,omitempty" firestore:"location,omitempty"`

	HourlyRate      float64  `json:"hourly_rate,omitempty" firestore:"hourlyRate,omitempty"`
	Skills          []string `json:"skills,omitempty" firestore:"skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty" firestore:"experienceLevel,omitempty"`
	IsVerified      bool     `json:"is_verified" firestore:"isVerified"`

	// Aggregate over public ratings where this user is the reviewee,
	// recomputed on every rating upsert.
	Rating      float64 `json:"rating,omitempty" firestore:"rating,omitempty"`
	RatingCount int     `json:"rating_count,omitempty" firestore:"ratingCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsTaskPoster() bool {
	return u.Role == RoleTaskPoster
}

func (u *User) IsFreelancer() bool {
	return u.Role == RoleFreelancer
}
