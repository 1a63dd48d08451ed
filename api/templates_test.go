package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/DrewAMSD/lifting-log/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate(t *testing.T) {
	template := api.WorkoutTemplate{
		Name: "Push Day",
		ExerciseTemplates: []api.ExerciseTemplate{
			{
				ExerciseID:   3,
				ExerciseName: "Bench Press",
				RoutineNote:  "pause at the bottom",
				SetTemplates: []api.SetTemplate{
					{Reps: utils.Ptr(5)},
					{RepRangeStart: utils.Ptr(8), RepRangeEnd: utils.Ptr(12)},
				},
			},
			{
				ExerciseID:   7,
				ExerciseName: "Plank",
				SetTemplates: []api.SetTemplate{
					{TimeRangeStart: utils.Ptr(30), TimeRangeEnd: utils.Ptr(60)},
				},
			},
		},
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/templates/me/", r.URL.Path)
		require.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		var got api.WorkoutTemplate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Equal(t, template.Name, got.Name)
		require.Len(t, got.ExerciseTemplates, 2)
		require.Equal(t, 5, utils.Value(got.ExerciseTemplates[0].SetTemplates[0].Reps))
		require.Nil(t, got.ExerciseTemplates[0].SetTemplates[0].TimeRangeStart)
		require.Equal(t, 30, utils.Value(got.ExerciseTemplates[1].SetTemplates[0].TimeRangeStart))

		got.ID = utils.Ptr(42)
		got.Username = "alice"
		_ = json.NewEncoder(w).Encode(got)
	}))

	created, err := client.CreateTemplate(context.Background(), "token-abc", template)
	require.NoError(t, err)
	require.Equal(t, 42, utils.Value(created.ID))
	require.Equal(t, "alice", created.Username)
	require.Equal(t, "Push Day", created.Name)
}

func TestTemplatesList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/templates/me/", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]api.WorkoutTemplate{
			{ID: utils.Ptr(1), Name: "Push Day"},
			{ID: utils.Ptr(2), Name: "Pull Day"},
		})
	}))

	templates, err := client.Templates(context.Background(), "token-abc")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	require.Equal(t, "Pull Day", templates[1].Name)
}

func TestDeleteTemplateNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Template not found"})
	}))

	err := client.DeleteTemplate(context.Background(), "token-abc", 99)
	require.Error(t, err)
	require.False(t, api.IsTransient(err))

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
