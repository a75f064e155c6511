package batch

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"CoopSocietyPortal/api"
	"CoopSocietyPortal/api/auth"
	"CoopSocietyPortal/api/constants"

	"github.com/jackc/pgx/v5/pgxpool"
)

// operatorName resolves the acting operator from the active sessions; the
// portal's auth service owns session verification, handlers only consume it.
func operatorName(userID string) string {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s.Name
		}
	}
	return ""
}

// UploadBatchHandler accepts one multipart spreadsheet, runs it through
// decode -> normalize -> validate, and stages the whole file as a batch.
// Row-level defects never fail the request; input-shape problems do.
func UploadBatchHandler(pool *pgxpool.Pool, kind *RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to parse multipart form")
			return
		}
		userID := r.FormValue("user_id")
		if userID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}
		uploadedBy := operatorName(userID)
		if uploadedBy == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		files := r.MultipartForm.File["file"]
		if len(files) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileRequired)
			return
		}
		fileHeader := files[0]
		file, err := fileHeader.Open()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to open file: "+fileHeader.Filename)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Failed to read file: "+fileHeader.Filename)
			return
		}

		grid, err := DecodeWorkbook(data)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnreadableFile):
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileUnreadable)
			case errors.Is(err, ErrEmptySheet):
				api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileEmpty)
			default:
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			}
			return
		}
		if err := grid.RequireHeaders(kind.RequiredHeaders()); err != nil {
			var mh *MissingHeadersError
			if errors.As(err, &mh) {
				api.RespondWithError(w, http.StatusBadRequest,
					constants.FormatError(constants.ErrMissingHeaders, strings.Join(mh.Missing, ", ")))
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrInternalServer)
			return
		}

		candidates := make([]Candidate, len(grid.Rows))
		results := make([]RowResult, len(grid.Rows))
		for i, row := range grid.Rows {
			candidates[i] = NormalizeRow(kind, grid, i+1, row)
			results[i] = ValidateCandidate(kind, candidates[i])
		}

		summary, err := StageBatch(ctx, pool, kind, fileHeader.Filename, uploadedBy, candidates, results)
		if err != nil {
			api.LogError("staging %s batch from %s failed: %v", kind.Name, fileHeader.Filename, err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrStagingFailed)
			return
		}
		api.LogInfo("staged %s batch %s: total=%d valid=%d invalid=%d status=%s",
			kind.Name, summary.BatchID, summary.Total, summary.Valid, summary.Invalid, summary.Status)
		api.RespondWithPayload(w, http.StatusCreated, map[string]interface{}{
			"batch":   summary,
			"message": constants.FormatError(constants.SuccessUploaded, summary.Total),
		})
	}
}

// PendingBatchesHandler lists staged rows of all undecided batches of the
// kind for operator review.
func PendingBatchesHandler(pool *pgxpool.Pool, kind *RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := PendingRows(r.Context(), pool, kind)
		if err != nil {
			api.LogError("pending %s batches query failed: %v", kind.Name, err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{"rows": rows})
	}
}

type decisionRequest struct {
	UserID          string `json:"user_id"`
	BatchID         string `json:"batch_id"`
	RejectionReason string `json:"rejection_reason"`
}

func decodeDecision(w http.ResponseWriter, r *http.Request) (decisionRequest, string, bool) {
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidJSON)
		return req, "", false
	}
	if req.BatchID == "" {
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrBatchIDRequired)
		return req, "", false
	}
	operator := operatorName(req.UserID)
	if operator == "" {
		api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
		return req, "", false
	}
	return req, operator, true
}

func respondDecisionError(w http.ResponseWriter, kind *RecordKind, batchID string, err error) {
	switch {
	case errors.Is(err, ErrBatchNotFound):
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrBatchNotFound)
	case errors.Is(err, ErrInvalidBatchState):
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrBatchAlreadyDecided)
	case errors.Is(err, ErrBatchNotApprovable):
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrBatchHasInvalidRows)
	case errors.Is(err, ErrEmptyRejectionReason):
		api.RespondWithError(w, http.StatusBadRequest, constants.ErrRejectReasonMissing)
	default:
		api.LogError("%s batch %s decision failed: %v", kind.Name, batchID, err)
		api.RespondWithError(w, http.StatusInternalServerError, constants.ErrTransactionFailed)
	}
}

// ApproveBatchHandler promotes a fully valid batch into the production
// ledger tables.
func ApproveBatchHandler(pool *pgxpool.Pool, kind *RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, operator, ok := decodeDecision(w, r)
		if !ok {
			return
		}
		if err := ApproveBatch(r.Context(), pool, kind, req.BatchID, operator); err != nil {
			respondDecisionError(w, kind, req.BatchID, err)
			return
		}
		api.LogInfo("%s batch %s approved by %s", kind.Name, req.BatchID, operator)
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{
			"batch_id": req.BatchID,
			"message":  constants.SuccessApproved,
		})
	}
}

// RejectBatchHandler terminally rejects a batch with the operator's reason.
func RejectBatchHandler(pool *pgxpool.Pool, kind *RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, operator, ok := decodeDecision(w, r)
		if !ok {
			return
		}
		if err := RejectBatch(r.Context(), pool, kind, req.BatchID, operator, req.RejectionReason); err != nil {
			respondDecisionError(w, kind, req.BatchID, err)
			return
		}
		api.LogInfo("%s batch %s rejected by %s", kind.Name, req.BatchID, operator)
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{
			"batch_id": req.BatchID,
			"message":  constants.SuccessRejected,
		})
	}
}
