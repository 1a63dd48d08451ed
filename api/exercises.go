package api

import (
	"context"
	"fmt"
	"net/http"
)

// Exercise describes a movement and what it tracks. At least one of
// Weight, Reps, or Time must be set for the server to accept it.
type Exercise struct {
	ID          *int     `json:"id,omitempty"`
	Name        string   `json:"name"`
	Default     bool     `json:"default"`
	Primary     []string `json:"primary"`
	Secondary   []string `json:"secondary"`
	Description string   `json:"description,omitempty"`
	Weight      bool     `json:"weight"`
	Reps        bool     `json:"reps"`
	Time        bool     `json:"time"`
}

// CreateExercise stores a custom exercise for the authenticated user.
func (c *Client) CreateExercise(ctx context.Context, accessToken string, exercise Exercise) (*Exercise, error) {
	var created Exercise
	if err := c.roundTrip(ctx, http.MethodPost, "/exercises/me/", accessToken, exercise, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Exercises lists the authenticated user's exercises.
func (c *Client) Exercises(ctx context.Context, accessToken string) ([]Exercise, error) {
	var exercises []Exercise
	if err := c.getJSON(ctx, "/exercises/me/", accessToken, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// UpdateExercise replaces a custom exercise.
func (c *Client) UpdateExercise(ctx context.Context, accessToken string, exerciseID int, exercise Exercise) (*Exercise, error) {
	var updated Exercise
	if err := c.roundTrip(ctx, http.MethodPut, fmt.Sprintf("/exercises/me/%d", exerciseID), accessToken, exercise, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteExercise removes a custom exercise.
func (c *Client) DeleteExercise(ctx context.Context, accessToken string, exerciseID int) error {
	return c.roundTrip(ctx, http.MethodDelete, fmt.Sprintf("/exercises/me/%d", exerciseID), accessToken, nil, nil)
}

// DefaultExercises lists the server's built-in exercise catalogue.
// Unauthenticated.
func (c *Client) DefaultExercises(ctx context.Context) ([]Exercise, error) {
	var exercises []Exercise
	if err := c.getJSON(ctx, "/exercises/defaults", "", &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
