package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/MSH-ConflictService/internal/api/handlers"
	"github.com/m04kA/MSH-ConflictService/internal/api/middleware"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidStart         = "invalid start, expected RFC3339 timestamp"
	msgInvalidEnd           = "invalid end, expected RFC3339 timestamp"
	msgEndNotAfterStart     = "end must be after start"
	msgTwoTeacherIdentities = "at most one of teacherUserId and standaloneTeacherId may be set"
	msgMissingOrg           = "organisation scope missing"
)

type Handler struct {
	checker ConflictChecker
	logger  Logger
}

func NewHandler(checker ConflictChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
//
// The engine itself never fails: any valid payload gets a 200 with a
// (possibly empty) conflict list.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rid := middleware.RequestIDFromContext(r.Context())

	orgID, ok := middleware.OrgIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /conflicts/check - rid=%s - missing org scope", rid)
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - rid=%s - invalid request body: %v", rid, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	bookingReq, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - rid=%s - invalid request: %v", rid, err)
		switch {
		case errors.Is(err, errInvalidStart):
			handlers.RespondBadRequest(w, msgInvalidStart)
		case errors.Is(err, errInvalidEnd):
			handlers.RespondBadRequest(w, msgInvalidEnd)
		case errors.Is(err, errEndNotAfterStart):
			handlers.RespondBadRequest(w, msgEndNotAfterStart)
		case errors.Is(err, errTwoTeacherIdentities):
			handlers.RespondBadRequest(w, msgTwoTeacherIdentities)
		default:
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	conflicts := h.checker.CheckConflicts(r.Context(), bookingReq, orgID)

	h.logger.Info("POST /conflicts/check - rid=%s - org=%d, %d conflict(s)", rid, orgID, len(conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromDomainConflicts(conflicts))
}
