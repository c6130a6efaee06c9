// internal/handlers/drill_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/service"
	"trireme_flashcards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type DrillHandler struct {
	service service.DrillService
	logger  *slog.Logger
}

func NewDrillHandler(s service.DrillService, logger *slog.Logger) *DrillHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DrillHandler{
		service: s,
		logger:  logger,
	}
}

// parseDrillID はURLパスパラメータのドリルIDをパースします
func parseDrillID(r *http.Request) (uuid.UUID, *model.AppError) {
	raw := chi.URLParam(r, "drill_id")
	drillID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", "drill_idの形式が正しくありません。", "drill_id", model.ErrInvalidInput)
	}
	return drillID, nil
}

// StartDrill はデッキのドリルセッションを開始するためのハンドラ
func (h *DrillHandler) StartDrill(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartDrill"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	deckID, appErr := parseUintParam(r, "deck_id")
	if appErr != nil {
		logger.Warn("Invalid deck ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)))

	resp, err := h.service.StartDrill(r.Context(), userID, deckID)
	if err != nil {
		logger.Error("Error starting drill in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if resp.NothingDue {
		// 出題対象なしはエラーではなく正常応答
		logger.Info("No cards due for drill")
		webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
		return
	}

	logger.Info("Drill started successfully", slog.String("drill_id", resp.DrillID.String()), slog.Int("due_count", resp.DueCount))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}

// Next は次のカードを表面で提示するためのハンドラ
func (h *DrillHandler) Next(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Next"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drillID, appErr := parseDrillID(r)
	if appErr != nil {
		logger.Warn("Invalid drill ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("drill_id", drillID.String()))

	resp, err := h.service.Advance(r.Context(), userID, drillID)
	if err != nil {
		logger.Warn("Error advancing drill in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Flip は出題中カードの表示面を切り替えるためのハンドラ
func (h *DrillHandler) Flip(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Flip"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drillID, appErr := parseDrillID(r)
	if appErr != nil {
		logger.Warn("Invalid drill ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("drill_id", drillID.String()))

	view, err := h.service.Flip(r.Context(), userID, drillID)
	if err != nil {
		logger.Warn("Error flipping card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// Pass は出題中カードを合格として採点するためのハンドラ
func (h *DrillHandler) Pass(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Pass"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drillID, appErr := parseDrillID(r)
	if appErr != nil {
		logger.Warn("Invalid drill ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("drill_id", drillID.String()))

	resp, err := h.service.Pass(r.Context(), userID, drillID)
	if err != nil {
		logger.Warn("Error grading pass in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card graded as pass", slog.Int("remaining", resp.Remaining))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Fail は出題中カードを不合格として採点するためのハンドラ
func (h *DrillHandler) Fail(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Fail"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drillID, appErr := parseDrillID(r)
	if appErr != nil {
		logger.Warn("Invalid drill ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("drill_id", drillID.String()))

	resp, err := h.service.Fail(r.Context(), userID, drillID)
	if err != nil {
		logger.Warn("Error grading fail in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card graded as fail", slog.Int("remaining", resp.Remaining))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// StopDrill はドリルセッションを中断するためのハンドラ
func (h *DrillHandler) StopDrill(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StopDrill"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drillID, appErr := parseDrillID(r)
	if appErr != nil {
		logger.Warn("Invalid drill ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("drill_id", drillID.String()))

	if err := h.service.Stop(r.Context(), userID, drillID); err != nil {
		logger.Warn("Error stopping drill in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Drill stopped")
	w.WriteHeader(http.StatusNoContent)
}
