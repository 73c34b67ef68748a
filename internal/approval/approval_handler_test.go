package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niru8756/internal-portal-sub003/internal/approval"
	approvalerrors "github.com/niru8756/internal-portal-sub003/internal/approval/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeApprovalService struct {
	createFn  func(ctx context.Context, requesterID string, req approval.CreateWorkflowRequest) (approval.WorkflowResponse, error)
	getAllFn  func(ctx context.Context, status string, offset, limit int) ([]approval.WorkflowResponse, int64, error)
	getByIDFn func(ctx context.Context, id string) (approval.WorkflowResponse, error)
	decideFn  func(ctx context.Context, id string, req approval.DecideRequest) (approval.DecisionResponse, error)
}

func (f *fakeApprovalService) Create(ctx context.Context, requesterID string, req approval.CreateWorkflowRequest) (approval.WorkflowResponse, error) {
	return f.createFn(ctx, requesterID, req)
}

func (f *fakeApprovalService) GetAll(ctx context.Context, status string, offset, limit int) ([]approval.WorkflowResponse, int64, error) {
	return f.getAllFn(ctx, status, offset, limit)
}

func (f *fakeApprovalService) GetByID(ctx context.Context, id string) (approval.WorkflowResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeApprovalService) Decide(ctx context.Context, id string, req approval.DecideRequest) (approval.DecisionResponse, error) {
	return f.decideFn(ctx, id, req)
}

func (f *fakeApprovalService) OpenAccessRequest(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error) {
	return "", nil
}

func TestApprovalHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		requesterID := uuid.New().String()
		svc := &fakeApprovalService{
			createFn: func(ctx context.Context, rid string, req approval.CreateWorkflowRequest) (approval.WorkflowResponse, error) {
				assert.Equal(t, requesterID, rid)
				assert.Equal(t, approval.TypeAccessRequest, req.Type)
				return approval.WorkflowResponse{
					ID:          uuid.New().String(),
					Type:        req.Type,
					RequesterID: rid,
					Status:      approval.StatusPending,
				}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"ACCESS_REQUEST","data":{"access_request_id":"` + uuid.New().String() + `"}}`
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", requesterID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got approval.WorkflowResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, approval.StatusPending, got.Status)
		assert.Equal(t, requesterID, got.RequesterID)
	})

	t.Run("negative unknown type", func(t *testing.T) {
		h := approval.NewHandler(&fakeApprovalService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/approvals", strings.NewReader(`{"type":"SOMETHING_ELSE"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestApprovalHandler_Decide(t *testing.T) {
	t.Run("success with side effects", func(t *testing.T) {
		workflowID := uuid.New().String()
		svc := &fakeApprovalService{
			decideFn: func(ctx context.Context, id string, req approval.DecideRequest) (approval.DecisionResponse, error) {
				assert.Equal(t, workflowID, id)
				assert.Equal(t, approval.ActionApprove, req.Action)
				return approval.DecisionResponse{
					Workflow: approval.WorkflowResponse{
						ID:     id,
						Status: approval.StatusApproved,
					},
					SideEffects: []approval.SideEffect{
						{Name: "assignment_created", OK: true},
					},
				}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: workflowID}}
		c.Request = httptest.NewRequest(http.MethodPut, "/approvals/"+workflowID+"/decide", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got approval.DecisionResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, approval.StatusApproved, got.Workflow.Status)
		assert.Len(t, got.SideEffects, 1)
		assert.Equal(t, "assignment_created", got.SideEffects[0].Name)
	})

	t.Run("negative invalid action", func(t *testing.T) {
		h := approval.NewHandler(&fakeApprovalService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPut, "/approvals/x/decide", strings.NewReader(`{"action":"maybe"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative already decided maps to INVALID_STATE", func(t *testing.T) {
		svc := &fakeApprovalService{
			decideFn: func(ctx context.Context, id string, req approval.DecideRequest) (approval.DecisionResponse, error) {
				return approval.DecisionResponse{}, approvalerrors.ErrWorkflowAlreadyDecided
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPut, "/approvals/x/decide", strings.NewReader(`{"action":"reject"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})

	t.Run("negative missing approver configuration", func(t *testing.T) {
		svc := &fakeApprovalService{
			decideFn: func(ctx context.Context, id string, req approval.DecideRequest) (approval.DecisionResponse, error) {
				return approval.DecisionResponse{}, approvalerrors.ErrNoApproverAvailable
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPut, "/approvals/x/decide", strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Decide(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFIGURATION_ERROR", env.Error.Code)
	})
}

func TestApprovalHandler_GetById(t *testing.T) {
	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeApprovalService{
			getByIDFn: func(ctx context.Context, id string) (approval.WorkflowResponse, error) {
				return approval.WorkflowResponse{}, approvalerrors.ErrWorkflowNotFound
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodGet, "/approvals/x", nil)

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}
