package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commentbox/internal/middleware"
	"commentbox/internal/models"
	"commentbox/internal/repository"
	"commentbox/internal/services"
	"commentbox/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(username, text string, media, parentID *string) (*models.Comment, error) {
	args := m.Called(username, text, media, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListAll() ([]models.Comment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) IncrementLikes(id string) (int, error) {
	args := m.Called(id)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) UpdateText(id, newText, requestingUser string) error {
	args := m.Called(id, newText, requestingUser)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id, requestingUser string) error {
	args := m.Called(id, requestingUser)
	return args.Error(0)
}

// MockReportRepository mocks the ReportRepository interface
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(username, commentID, reason string) (*models.Report, error) {
	args := m.Called(username, commentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func newTestHandler(t *testing.T, repo repository.CommentRepository, reports repository.ReportRepository, words []string) *CommentHandler {
	t.Helper()
	uploads, err := services.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	// the tree cache is process-wide; start every test cold
	utils.GetCache().Delete(treeCacheKey)
	return NewCommentHandler(repo, reports, services.NewDenylistModerator(words), uploads)
}

func setupRouter(h *CommentHandler, username string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CheckUserKey, &models.User{ID: 1, Username: username})
	})
	r.POST("/api/comments", h.Create)
	r.GET("/api/comments", h.List)
	r.POST("/api/comments/:id/like", h.Like)
	r.POST("/api/comments/:id/report", h.Report)
	r.PUT("/api/comments/:id", h.Update)
	r.DELETE("/api/comments/:id", h.Delete)
	return r
}

func postForm(router *gin.Engine, method, path, form string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateComment_Success(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	stored := &models.Comment{ID: "id-1", Username: "alice", Text: "hello", Likes: 0}
	repo.On("Create", "alice", "hello", (*string)(nil), (*string)(nil)).Return(stored, nil)

	w := postForm(router, "POST", "/api/comments", "comment=hello")

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Comment struct {
			ID       string            `json:"id"`
			Username string            `json:"username"`
			Likes    int               `json:"likes"`
			Replies  []json.RawMessage `json:"replies"`
		} `json:"comment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "id-1", response.Comment.ID)
	assert.Equal(t, "alice", response.Comment.Username)
	assert.Equal(t, 0, response.Comment.Likes)
	assert.NotNil(t, response.Comment.Replies)
	assert.Len(t, response.Comment.Replies, 0)

	repo.AssertExpectations(t)
}

func TestCreateComment_EmptyText(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	w := postForm(router, "POST", "/api/comments", "comment=")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateComment_ModerationReject(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, []string{"spam"})
	router := setupRouter(handler, "alice")

	w := postForm(router, "POST", "/api/comments", "comment=buy+my+spam")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.NotEmpty(t, response["error"])
	repo.AssertNotCalled(t, "Create")
}

func TestCreateComment_DisallowedMediaType(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("comment", "with attachment"))
	part, err := writer.CreateFormFile("media", "malware.exe")
	require.NoError(t, err)
	part.Write([]byte("MZ"))
	writer.Close()

	req, _ := http.NewRequest("POST", "/api/comments", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateComment_StorageFailure(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	repo.On("Create", "alice", "hello", (*string)(nil), (*string)(nil)).
		Return(nil, errors.New("disk full"))

	w := postForm(router, "POST", "/api/comments", "comment=hello")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// the storage detail must not leak to the client
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestLikeComment_NotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	repo.On("IncrementLikes", "missing").Return(0, repository.ErrNotFound)

	w := postForm(router, "POST", "/api/comments/missing/like", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeComment_Success(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	repo.On("IncrementLikes", "id-1").Return(3, nil)

	w := postForm(router, "POST", "/api/comments/id-1/like", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(3), response["likes"])
}

func TestUpdateComment_Forbidden(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "bob")

	repo.On("UpdateText", "id-1", "hijacked", "bob").Return(repository.ErrForbidden)

	w := postForm(router, "PUT", "/api/comments/id-1", "text=hijacked")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateComment_Success(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	repo.On("UpdateText", "id-1", "edited", "alice").Return(nil)

	w := postForm(router, "PUT", "/api/comments/id-1", "text=edited")

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "edited", response["text"])
}

func TestReportComment_Success(t *testing.T) {
	repo := new(MockCommentRepository)
	reports := new(MockReportRepository)
	handler := newTestHandler(t, repo, reports, nil)
	router := setupRouter(handler, "bob")

	reports.On("Create", "bob", "id-1", "").
		Return(&models.Report{ID: 1, Username: "bob", CommentID: "id-1"}, nil)

	w := postForm(router, "POST", "/api/comments/id-1/report", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])

	reports.AssertExpectations(t)
}

func TestReportComment_NotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	reports := new(MockReportRepository)
	handler := newTestHandler(t, repo, reports, nil)
	router := setupRouter(handler, "bob")

	reports.On("Create", "bob", "missing", "").Return(nil, repository.ErrNotFound)

	w := postForm(router, "POST", "/api/comments/missing/report", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteComment_Forbidden(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "bob")

	repo.On("Delete", "id-1", "bob").Return(repository.ErrForbidden)

	req, _ := http.NewRequest("DELETE", "/api/comments/id-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteComment_NotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	handler := newTestHandler(t, repo, nil, nil)
	router := setupRouter(handler, "alice")

	repo.On("Delete", "missing", "alice").Return(repository.ErrNotFound)

	req, _ := http.NewRequest("DELETE", "/api/comments/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
