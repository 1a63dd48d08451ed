package api

import (
	"context"
	"fmt"
	"net/http"
)

// SetTemplate prescribes one set within an exercise template. Exactly
// one of the fixed-reps or range forms is populated, matching what the
// exercise tracks.
type SetTemplate struct {
	Reps           *int `json:"reps,omitempty"`
	RepRangeStart  *int `json:"rep_range_start,omitempty"`
	RepRangeEnd    *int `json:"rep_range_end,omitempty"`
	TimeRangeStart *int `json:"time_range_start,omitempty"`
	TimeRangeEnd   *int `json:"time_range_end,omitempty"`
}

// ExerciseTemplate is one exercise slot within a workout template.
type ExerciseTemplate struct {
	ExerciseID   int           `json:"exercise_id"`
	ExerciseName string        `json:"exercise_name"`
	RoutineNote  string        `json:"routine_note"`
	SetTemplates []SetTemplate `json:"set_templates"`
}

// WorkoutTemplate is a reusable workout routine.
type WorkoutTemplate struct {
	ID                *int               `json:"id,omitempty"`
	Name              string             `json:"name"`
	Username          string             `json:"username,omitempty"`
	ExerciseTemplates []ExerciseTemplate `json:"exercise_templates"`
}

// CreateTemplate stores a new workout template for the authenticated
// user.
func (c *Client) CreateTemplate(ctx context.Context, accessToken string, template WorkoutTemplate) (*WorkoutTemplate, error) {
	var created WorkoutTemplate
	if err := c.roundTrip(ctx, http.MethodPost, "/templates/me/", accessToken, template, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Templates lists the authenticated user's workout templates.
func (c *Client) Templates(ctx context.Context, accessToken string) ([]WorkoutTemplate, error) {
	var templates []WorkoutTemplate
	if err := c.getJSON(ctx, "/templates/me/", accessToken, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Template fetches a single workout template by ID.
func (c *Client) Template(ctx context.Context, accessToken string, templateID int) (*WorkoutTemplate, error) {
	var template WorkoutTemplate
	if err := c.getJSON(ctx, fmt.Sprintf("/templates/me/%d", templateID), accessToken, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// UpdateTemplate replaces an existing workout template.
func (c *Client) UpdateTemplate(ctx context.Context, accessToken string, templateID int, template WorkoutTemplate) (*WorkoutTemplate, error) {
	var updated WorkoutTemplate
	if err := c.roundTrip(ctx, http.MethodPut, fmt.Sprintf("/templates/me/%d", templateID), accessToken, template, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTemplate removes a workout template.
func (c *Client) DeleteTemplate(ctx context.Context, accessToken string, templateID int) error {
	return c.roundTrip(ctx, http.MethodDelete, fmt.Sprintf("/templates/me/%d", templateID), accessToken, nil, nil)
}
