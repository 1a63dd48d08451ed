package api

import (
	"context"
	"net/http"
)

// SetEntry is one performed set. Pointer fields are only populated for
// what the exercise tracks.
type SetEntry struct {
	Reps   *int     `json:"reps,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Time   *string  `json:"time,omitempty"` // HH:MM:SS
}

// ExerciseEntry is one exercise performed during a workout.
type ExerciseEntry struct {
	ExerciseID   int        `json:"exercise_id"`
	ExerciseName string     `json:"exercise_name,omitempty"`
	Description  string     `json:"description,omitempty"`
	SetEntries   []SetEntry `json:"set_entries"`
}

// Workout is a performed training session.
type Workout struct {
	ID              *int            `json:"id,omitempty"`
	Name            string          `json:"name"`
	Username        string          `json:"username,omitempty"`
	Description     string          `json:"description,omitempty"`
	Date            string          `json:"date"`       // YYYY-MM-DD
	StartTime       string          `json:"start_time"` // HH:MM:SS
	Duration        int             `json:"duration"`   // seconds
	ExerciseEntries []ExerciseEntry `json:"exercise_entries"`
}

// CreateWorkout records a performed workout for the authenticated
// user.
func (c *Client) CreateWorkout(ctx context.Context, accessToken string, workout Workout) (*Workout, error) {
	var created Workout
	if err := c.roundTrip(ctx, http.MethodPost, "/workouts/me/", accessToken, workout, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
