package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/niru8756/internal-portal-sub003/internal/access"
	approvalerrors "github.com/niru8756/internal-portal-sub003/internal/approval/errors"
	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	"github.com/niru8756/internal-portal-sub003/internal/events"
	"github.com/niru8756/internal-portal-sub003/internal/messaging/kafka"
	"github.com/niru8756/internal-portal-sub003/internal/policy"
	"github.com/niru8756/internal-portal-sub003/internal/resource"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"

	defaultApproveComment = "Approved without comments"
	defaultRejectComment  = "Rejected without comments"

	hardwareCategory = "HARDWARE_REQUEST"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, requesterID string, req CreateWorkflowRequest) (WorkflowResponse, error)
	GetAll(ctx context.Context, status string, offset, limit int) ([]WorkflowResponse, int64, error)
	GetByID(ctx context.Context, id string) (WorkflowResponse, error)
	Decide(ctx context.Context, id string, req DecideRequest) (DecisionResponse, error)

	// OpenAccessRequest dipakai access service lewat adapter WorkflowOpener.
	OpenAccessRequest(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error)
}

type Config struct {
	DefaultApproverID string
}

type service struct {
	db          *sql.DB
	repo        Repository
	accesses    access.Repository
	policies    policy.Repository
	resources   resource.Repository
	assignments assignment.Service
	employees   employee.Repository
	outbox      kafka.OutboxRepository
	recorder    audit.Recorder
	cfg         Config
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	accesses access.Repository,
	policies policy.Repository,
	resources resource.Repository,
	assignments assignment.Service,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	recorder audit.Recorder,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		accesses:    accesses,
		policies:    policies,
		resources:   resources,
		assignments: assignments,
		employees:   employees,
		outbox:      outbox,
		recorder:    recorder,
		cfg:         cfg,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, requesterID string, req CreateWorkflowRequest) (WorkflowResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create workflow requested",
		zap.String("request_id", rid),
		zap.String("type", req.Type),
	)

	requester, err := uuid.Parse(requesterID)
	if err != nil {
		return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
	}

	wf := &ApprovalWorkflow{
		ID:          uuid.New(),
		Type:        req.Type,
		RequesterID: requester,
		Status:      StatusPending,
		Comments:    req.Comments,
	}

	if wf.PolicyID, err = parseOptionalUUID(req.PolicyID); err != nil {
		return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
	}
	if wf.DocumentID, err = parseOptionalUUID(req.DocumentID); err != nil {
		return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
	}
	if wf.ResourceID, err = parseOptionalUUID(req.ResourceID); err != nil {
		return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
	}

	if req.Data != nil {
		wf.Data, err = json.Marshal(req.Data)
		if err != nil {
			return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
		}
	}

	// Validasi payload per tipe sebelum menulis apa pun.
	switch req.Type {
	case TypeAccessRequest:
		if payloadField(wf.Data, "access_request_id") == "" {
			return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
		}
	case TypePolicyUpdateRequest:
		if wf.PolicyID == nil && payloadField(wf.Data, "policy_id") == "" {
			return WorkflowResponse{}, approvalerrors.ErrInvalidWorkflowPayload
		}
	}

	if err := s.repo.Create(ctx, wf); err != nil {
		s.logger.Error("create workflow persist failed", zap.Error(err))
		return WorkflowResponse{}, mapRepositoryError(err)
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityWorkflow,
		EntityID:     wf.ID.String(),
		ActivityType: "WORKFLOW_CREATED",
		Title:        "Workflow created",
		Description:  wf.Type + " workflow opened",
		Metadata:     map[string]any{"type": wf.Type},
		PerformedBy:  requesterID,
	})

	s.publishWorkflowEvent(ctx, wf, "workflow_created", wf.Status, "")

	s.logger.Info("create workflow success",
		zap.String("workflow_id", wf.ID.String()),
		zap.String("type", wf.Type),
	)
	return mapWorkflowToResponse(*wf), nil
}

// OpenAccessRequest membuka ACCESS_REQUEST workflow atas nama access service.
func (s *service) OpenAccessRequest(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error) {
	req := CreateWorkflowRequest{
		Type: TypeAccessRequest,
		Data: map[string]any{"access_request_id": accessRequestID},
	}
	if resourceID != nil {
		req.ResourceID = *resourceID
	}

	resp, err := s.Create(ctx, requesterID, req)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (s *service) GetAll(ctx context.Context, status string, offset, limit int) ([]WorkflowResponse, int64, error) {
	wfs, total, err := s.repo.FindAll(ctx, status, offset, limit)
	if err != nil {
		s.logger.Error("get all workflows failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]WorkflowResponse, len(wfs))
	for i, wf := range wfs {
		resp[i] = mapWorkflowToResponse(wf)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkflowResponse, error) {
	wf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkflowResponse{}, mapRepositoryError(err)
	}
	return mapWorkflowToResponse(*wf), nil
}

// Decide mengeksekusi keputusan approve/reject:
//  1. resolve approver dulu, tanpa write;
//  2. satu transaksi: guarded flip PENDING->terminal + update record terkait
//     (access/policy) — gagal di sini rollback semuanya;
//  3. setelah commit: enrichment non-fatal (provisioning hardware/assignment)
//     yang dilaporkan lewat side_effects, plus audit, timeline dan outbox.
func (s *service) Decide(ctx context.Context, id string, req DecideRequest) (DecisionResponse, error) {
	s.logger.Debug("decide workflow requested",
		zap.String("workflow_id", id),
		zap.String("action", req.Action),
	)

	wf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DecisionResponse{}, mapRepositoryError(err)
	}
	if wf.Status != StatusPending {
		return DecisionResponse{}, approvalerrors.ErrWorkflowAlreadyDecided
	}

	approver, err := resolveApprover(ctx, s.employees, req.ApproverID, s.cfg.DefaultApproverID, s.logger)
	if err != nil {
		return DecisionResponse{}, err
	}

	newStatus := StatusApproved
	comments := req.Comments
	if req.Action == ActionReject {
		newStatus = StatusRejected
		if comments == "" {
			comments = defaultRejectComment
		}
	} else if comments == "" {
		comments = defaultApproveComment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide workflow begin tx failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateStatusIfPending(ctx, id, newStatus, approver.ID.String(), comments)
	if err != nil {
		s.logger.Error("workflow status flip failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	if affected == 0 {
		// Keputusan lain menang balapan.
		return DecisionResponse{}, approvalerrors.ErrWorkflowAlreadyDecided
	}

	var accessRec *access.Access
	switch wf.Type {
	case TypeAccessRequest:
		accessRec, err = s.applyAccessDecision(ctx, tx, wf, newStatus, approver.ID.String())
		if err != nil {
			return DecisionResponse{}, err
		}
	case TypePolicyUpdateRequest:
		if err := s.applyPolicyDecision(ctx, tx, wf, newStatus); err != nil {
			return DecisionResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide workflow commit failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	approverID := approver.ID.String()
	sideEffects := []SideEffect{}
	if newStatus == StatusApproved && wf.Type == TypeAccessRequest && accessRec != nil {
		sideEffects = s.provisionApprovedAccess(ctx, accessRec, approver)
	}

	s.recordDecisionTrail(ctx, wf, newStatus, approverID)
	s.publishWorkflowEvent(ctx, wf, "workflow_decided", newStatus, approverID)

	decided := *wf
	decided.Status = newStatus
	decided.ApproverID = &approver.ID
	decided.Comments = comments
	decided.UpdatedAt = time.Now().UTC()

	s.logger.Info("decide workflow success",
		zap.String("workflow_id", id),
		zap.String("status", newStatus),
		zap.String("approver_id", approverID),
	)

	return DecisionResponse{
		Workflow:    mapWorkflowToResponse(decided),
		SideEffects: sideEffects,
	}, nil
}

// applyAccessDecision update record access di transaksi yang sama dengan flip
// workflow. Record hilang = 404 dan seluruh keputusan di-rollback.
func (s *service) applyAccessDecision(
	ctx context.Context,
	tx *sql.Tx,
	wf *ApprovalWorkflow,
	newStatus, approverID string,
) (*access.Access, error) {
	accessID := payloadField(wf.Data, "access_request_id")
	if accessID == "" {
		return nil, approvalerrors.ErrInvalidWorkflowPayload
	}

	rec, err := s.accesses.FindByID(ctx, accessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, approvalerrors.ErrLinkedRecordNotFound
		}
		return nil, err
	}

	accTx := s.accesses.WithTx(tx)
	var affected int64
	if newStatus == StatusApproved {
		affected, err = accTx.MarkApproved(ctx, accessID, approverID)
	} else {
		affected, err = accTx.MarkRevoked(ctx, accessID, approverID)
	}
	if err != nil {
		s.logger.Error("access decision update failed", zap.String("access_id", accessID), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		return nil, approvalerrors.ErrLinkedRecordNotFound
	}

	return rec, nil
}

func (s *service) applyPolicyDecision(ctx context.Context, tx *sql.Tx, wf *ApprovalWorkflow, newStatus string) error {
	policyID := ""
	if wf.PolicyID != nil {
		policyID = wf.PolicyID.String()
	} else {
		policyID = payloadField(wf.Data, "policy_id")
	}
	if policyID == "" {
		return approvalerrors.ErrInvalidWorkflowPayload
	}

	polStatus := policy.StatusApproved
	if newStatus == StatusRejected {
		polStatus = policy.StatusRejected
	}

	affected, err := s.policies.WithTx(tx).SetDecision(ctx, policyID, polStatus)
	if err != nil {
		s.logger.Error("policy decision update failed", zap.String("policy_id", policyID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return approvalerrors.ErrLinkedRecordNotFound
	}
	return nil
}

// provisionApprovedAccess jalan setelah commit; tiap langkah dicatat sebagai
// side effect dan kegagalan tidak membatalkan keputusan yang sudah tersimpan.
func (s *service) provisionApprovedAccess(ctx context.Context, rec *access.Access, approver *employee.Employee) []SideEffect {
	effects := []SideEffect{}
	approverID := approver.ID.String()

	resourceID := ""
	if rec.ResourceID != nil {
		resourceID = rec.ResourceID.String()
	}

	if resourceID == "" && rec.HardwareRequest != "" {
		res, err := s.createHardwareResource(ctx, rec, approver)
		if err != nil {
			s.logger.Error("hardware resource provisioning failed",
				zap.String("access_id", rec.ID.String()),
				zap.Error(err),
			)
			effects = append(effects, SideEffect{Name: "resource_created", OK: false, Error: err.Error()})
			return effects
		}
		effects = append(effects, SideEffect{Name: "resource_created", OK: true})
		resourceID = res.ID.String()

		if _, err := s.accesses.SetResourceID(ctx, rec.ID.String(), resourceID); err != nil {
			s.logger.Error("access resource backfill failed", zap.Error(err))
			effects = append(effects, SideEffect{Name: "access_resource_backfilled", OK: false, Error: err.Error()})
		} else {
			effects = append(effects, SideEffect{Name: "access_resource_backfilled", OK: true})
		}
	}

	if resourceID == "" {
		return effects
	}

	_, err := s.assignments.Create(ctx, approverID, assignment.CreateAssignmentRequest{
		ResourceID: resourceID,
		EmployeeID: rec.EmployeeID.String(),
		Quantity:   1,
		Notes:      "Provisioned from approved access request " + rec.ID.String(),
	})
	if err != nil {
		s.logger.Error("assignment provisioning failed",
			zap.String("access_id", rec.ID.String()),
			zap.Error(err),
		)
		effects = append(effects, SideEffect{Name: "assignment_created", OK: false, Error: err.Error()})
	} else {
		effects = append(effects, SideEffect{Name: "assignment_created", OK: true})
	}

	return effects
}

func (s *service) createHardwareResource(ctx context.Context, rec *access.Access, approver *employee.Employee) (*resource.Resource, error) {
	// Owner = pemilik sistem yang dikonfigurasi, custodian = CEO. Approver
	// hanya dipakai kalau keduanya tidak ada di directory.
	ownerID := approver.ID
	if s.cfg.DefaultApproverID != "" {
		if parsed, err := uuid.Parse(s.cfg.DefaultApproverID); err == nil {
			ownerID = parsed
		}
	}

	custodianID := approver.ID
	if ceo, err := s.employees.FindFirstByRole(ctx, employee.RoleCEO); err == nil {
		custodianID = ceo.ID
		if s.cfg.DefaultApproverID == "" {
			ownerID = ceo.ID
		}
	}
	res := &resource.Resource{
		ID:            uuid.New(),
		Name:          rec.HardwareRequest,
		Type:          resource.TypePhysical,
		Category:      hardwareCategory,
		OwnerID:       ownerID,
		CustodianID:   &custodianID,
		TotalQuantity: 1,
		Status:        resource.StatusActive,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// recordDecisionTrail menulis audit + timeline; best-effort lewat recorder.
func (s *service) recordDecisionTrail(ctx context.Context, wf *ApprovalWorkflow, newStatus, approverID string) {
	workflowID := wf.ID.String()

	s.recorder.Audit(ctx, audit.AuditEntry{
		EntityType:   audit.EntityWorkflow,
		EntityID:     workflowID,
		ChangedBy:    approverID,
		FieldChanged: "status",
		OldValue:     StatusPending,
		NewValue:     newStatus,
	})

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityWorkflow,
		EntityID:     workflowID,
		ActivityType: "WORKFLOW_STATUS_CHANGED",
		Title:        "Workflow status changed",
		Description:  StatusPending + " -> " + newStatus,
		PerformedBy:  approverID,
	})
	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityWorkflow,
		EntityID:     workflowID,
		ActivityType: "WORKFLOW_COMPLETED",
		Title:        "Workflow completed",
		Description:  wf.Type + " decided: " + newStatus,
		Metadata:     map[string]any{"type": wf.Type, "status": newStatus},
		PerformedBy:  approverID,
	})

	if wf.Type == TypeAccessRequest {
		accessID := payloadField(wf.Data, "access_request_id")
		if accessID != "" {
			activity := "ACCESS_APPROVED"
			title := "Access approved"
			if newStatus == StatusRejected {
				activity = "ACCESS_REVOKED"
				title = "Access revoked"
			}
			s.recorder.Timeline(ctx, audit.TimelineEntry{
				EntityType:   audit.EntityAccess,
				EntityID:     accessID,
				ActivityType: activity,
				Title:        title,
				Metadata:     map[string]any{"workflow_id": workflowID},
				PerformedBy:  approverID,
			})
		}
	}
}

// publishWorkflowEvent menulis event ke outbox; gagal hanya di-log.
func (s *service) publishWorkflowEvent(ctx context.Context, wf *ApprovalWorkflow, eventType, status, approverID string) {
	if s.outbox == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.WorkflowDecidedEvent{
		EventType:    eventType,
		RequestID:    rid,
		WorkflowID:   wf.ID.String(),
		WorkflowType: wf.Type,
		Status:       status,
		ApproverID:   approverID,
		RequesterID:  wf.RequesterID.String(),
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal workflow event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "approval_workflow",
		AggregateID:   wf.ID.String(),
		EventType:     eventType,
		Topic:         events.WorkflowDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("workflow event outbox persist failed",
			zap.String("workflow_id", wf.ID.String()),
			zap.Error(err),
		)
	}
}

func parseOptionalUUID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func payloadField(data []byte, key string) string {
	if len(data) == 0 {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func mapWorkflowToResponse(wf ApprovalWorkflow) WorkflowResponse {
	resp := WorkflowResponse{
		ID:          wf.ID.String(),
		Type:        wf.Type,
		RequesterID: wf.RequesterID.String(),
		Status:      wf.Status,
		Comments:    wf.Comments,
		CreatedAt:   wf.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   wf.UpdatedAt.Format(time.RFC3339),
	}
	if wf.ApproverID != nil {
		resp.ApproverID = wf.ApproverID.String()
	}
	if wf.PolicyID != nil {
		resp.PolicyID = wf.PolicyID.String()
	}
	if wf.DocumentID != nil {
		resp.DocumentID = wf.DocumentID.String()
	}
	if wf.ResourceID != nil {
		resp.ResourceID = wf.ResourceID.String()
	}
	if len(wf.Data) > 0 {
		var data map[string]any
		if json.Unmarshal(wf.Data, &data) == nil {
			resp.Data = data
		}
	}
	return resp
}
