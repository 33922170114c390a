package classroom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.ClassroomConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, nil)
}

func TestGetCoursework(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/course-1/courseWork/cw-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cw-1","courseId":"course-1","title":"Quiz 3","maxPoints":50,"workType":"ASSIGNMENT"}`))
	}))
	defer srv.Close()

	cw, err := newTestClient(srv.URL).GetCoursework(context.Background(), "tok", "course-1", "cw-1")
	require.NoError(t, err)
	assert.Equal(t, "Quiz 3", cw.Title)
	require.NotNil(t, cw.MaxPoints)
	assert.Equal(t, 50.0, *cw.MaxPoints)
}

func TestListSubmissionsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			w.Write([]byte(`{"studentSubmissions":[{"id":"s1","userId":"u1","assignedGrade":42,"state":"RETURNED"}],"nextPageToken":"p2"}`))
			return
		}
		w.Write([]byte(`{"studentSubmissions":[{"id":"s2","userId":"u2","draftGrade":0,"state":"TURNED_IN","late":true}]}`))
	}))
	defer srv.Close()

	subs, err := newTestClient(srv.URL).ListSubmissions(context.Background(), "tok", "c", "cw")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.NotNil(t, subs[0].AssignedGrade)
	assert.Equal(t, 42.0, *subs[0].AssignedGrade)
	assert.Nil(t, subs[1].AssignedGrade)
	require.NotNil(t, subs[1].DraftGrade)
	assert.Equal(t, 0.0, *subs[1].DraftGrade)
	assert.True(t, subs[1].Late)
}

func TestListStudents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/c/students", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"students":[{"userId":"u1","profile":{"emailAddress":"Ana@Example.Com","name":{"fullName":"Ana Cruz"}}}]}`))
	}))
	defer srv.Close()

	students, err := newTestClient(srv.URL).ListStudents(context.Background(), "tok", "c")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ana@Example.Com", students[0].Email)
	assert.Equal(t, "Ana Cruz", students[0].FullName)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   *appErrors.Error
		reauth bool
	}{
		{http.StatusUnauthorized, appErrors.ErrReauthRequired, true},
		{http.StatusForbidden, appErrors.ErrClassroomForbidden, false},
		{http.StatusNotFound, appErrors.ErrClassroomNotFound, false},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := newTestClient(srv.URL).ListStudents(context.Background(), "tok", "c")
		srv.Close()

		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, tt.want.Code, appErr.Code)
		assert.Equal(t, tt.reauth, appErr.RequiresReauth)
	}
}

func TestServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetCoursework(context.Background(), "tok", "c", "cw")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
