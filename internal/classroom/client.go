package classroom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/myrroearl/atam-sub002/internal/models"
	"github.com/myrroearl/atam-sub002/pkg/config"
	appErrors "github.com/myrroearl/atam-sub002/pkg/errors"
)

// API reads coursework, submissions and rosters from the external classroom
// system. Implemented by Client; faked in tests.
type API interface {
	GetCoursework(ctx context.Context, token, courseID, courseworkID string) (*models.ClassroomCoursework, error)
	ListSubmissions(ctx context.Context, token, courseID, courseworkID string) ([]models.ClassroomSubmission, error)
	ListStudents(ctx context.Context, token, courseID string) ([]models.ClassroomStudent, error)
}

// Client talks to the classroom REST API with a caller-supplied bearer token.
// No credentials are held on the struct; every call is authenticated with the
// token forwarded from the triggering request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a classroom API client.
func NewClient(cfg config.ClassroomConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type courseworkPayload struct {
	ID        string   `json:"id"`
	CourseID  string   `json:"courseId"`
	Title     string   `json:"title"`
	MaxPoints *float64 `json:"maxPoints"`
	WorkType  string   `json:"workType"`
}

type submissionsPayload struct {
	StudentSubmissions []struct {
		ID            string   `json:"id"`
		UserID        string   `json:"userId"`
		AssignedGrade *float64 `json:"assignedGrade"`
		DraftGrade    *float64 `json:"draftGrade"`
		State         string   `json:"state"`
		Late          bool     `json:"late"`
	} `json:"studentSubmissions"`
	NextPageToken string `json:"nextPageToken"`
}

type studentsPayload struct {
	Students []struct {
		UserID  string `json:"userId"`
		Profile struct {
			EmailAddress string `json:"emailAddress"`
			Name         struct {
				FullName string `json:"fullName"`
			} `json:"name"`
		} `json:"profile"`
	} `json:"students"`
	NextPageToken string `json:"nextPageToken"`
}

// GetCoursework fetches coursework metadata (title, max points).
func (c *Client) GetCoursework(ctx context.Context, token, courseID, courseworkID string) (*models.ClassroomCoursework, error) {
	endpoint := fmt.Sprintf("/courses/%s/courseWork/%s", url.PathEscape(courseID), url.PathEscape(courseworkID))
	var payload courseworkPayload
	if err := c.get(ctx, token, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	return &models.ClassroomCoursework{
		ID:        payload.ID,
		CourseID:  payload.CourseID,
		Title:     payload.Title,
		MaxPoints: payload.MaxPoints,
		WorkType:  payload.WorkType,
	}, nil
}

// ListSubmissions returns every student submission for a coursework,
// following pagination.
func (c *Client) ListSubmissions(ctx context.Context, token, courseID, courseworkID string) ([]models.ClassroomSubmission, error) {
	endpoint := fmt.Sprintf("/courses/%s/courseWork/%s/studentSubmissions", url.PathEscape(courseID), url.PathEscape(courseworkID))
	var submissions []models.ClassroomSubmission
	pageToken := ""
	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		var payload submissionsPayload
		if err := c.get(ctx, token, endpoint, query, &payload); err != nil {
			return nil, err
		}
		for _, sub := range payload.StudentSubmissions {
			submissions = append(submissions, models.ClassroomSubmission{
				ID:            sub.ID,
				UserID:        sub.UserID,
				AssignedGrade: sub.AssignedGrade,
				DraftGrade:    sub.DraftGrade,
				State:         sub.State,
				Late:          sub.Late,
			})
		}
		if payload.NextPageToken == "" {
			return submissions, nil
		}
		pageToken = payload.NextPageToken
	}
}

// ListStudents returns the external course roster, following pagination.
func (c *Client) ListStudents(ctx context.Context, token, courseID string) ([]models.ClassroomStudent, error) {
	endpoint := fmt.Sprintf("/courses/%s/students", url.PathEscape(courseID))
	var students []models.ClassroomStudent
	pageToken := ""
	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}
		var payload studentsPayload
		if err := c.get(ctx, token, endpoint, query, &payload); err != nil {
			return nil, err
		}
		for _, student := range payload.Students {
			students = append(students, models.ClassroomStudent{
				UserID:   student.UserID,
				Email:    student.Profile.EmailAddress,
				FullName: student.Profile.Name.FullName,
			})
		}
		if payload.NextPageToken == "" {
			return students, nil
		}
		pageToken = payload.NextPageToken
	}
}

func (c *Client) get(ctx context.Context, token, endpoint string, query url.Values, dest interface{}) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build classroom request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "classroom request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("classroom request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return classifyStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode classroom response")
	}
	return nil
}

// classifyStatus maps upstream status classes onto the error taxonomy:
// 401 demands reauthorization, 403 means the connected account lacks scope,
// 404 covers deleted or mistyped course/coursework IDs.
func classifyStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return appErrors.ErrReauthRequired
	case http.StatusForbidden:
		return appErrors.ErrClassroomForbidden
	case http.StatusNotFound:
		return appErrors.ErrClassroomNotFound
	default:
		return appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("classroom returned status %d", status))
	}
}
