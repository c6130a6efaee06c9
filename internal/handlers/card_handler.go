// internal/handlers/card_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"trireme_flashcards/internal/middleware"
	"trireme_flashcards/internal/model"
	"trireme_flashcards/internal/service"
	"trireme_flashcards/internal/webutil"
)

type CardHandler struct {
	service service.CardService
	logger  *slog.Logger
}

func NewCardHandler(s service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		service: s,
		logger:  logger,
	}
}

// PostCard はデッキに新しいカードを追加するためのハンドラ
func (h *CardHandler) PostCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCard"))

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

	var req model.PostCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateRequest(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("field", appErr.Detail.Field))
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.CreateCard(r.Context(), userID, deckID, &req)
	if err != nil {
		logger.Error("Error creating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card created successfully", slog.Uint64("card_id", uint64(card.CardID)))
	webutil.RespondWithJSON(w, http.StatusCreated, card, logger)
}

// GetCards はデッキ内のカード一覧を取得するためのハンドラ
func (h *CardHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCards"))

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

	cards, err := h.service.ListCards(r.Context(), userID, deckID)
	if err != nil {
		logger.Error("Error listing cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if cards == nil {
		cards = []*model.Card{}
	}
	logger.Info("Cards listed successfully", slog.Int("count", len(cards)))
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GetCard は特定のカードを取得するためのハンドラ
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

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
	cardID, appErr := parseUintParam(r, "card_id")
	if appErr != nil {
		logger.Warn("Invalid card ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)), slog.Uint64("card_id", uint64(cardID)))

	card, err := h.service.GetCard(r.Context(), userID, deckID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Card not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting card from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// PutCard はカードの表裏の文面を更新するためのハンドラ
func (h *CardHandler) PutCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCard"))

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
	cardID, appErr := parseUintParam(r, "card_id")
	if appErr != nil {
		logger.Warn("Invalid card ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)), slog.Uint64("card_id", uint64(cardID)))

	var req model.PutCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := validateRequest(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("field", appErr.Detail.Field))
		webutil.HandleError(w, logger, appErr)
		return
	}

	card, err := h.service.UpdateCard(r.Context(), userID, deckID, cardID, &req)
	if err != nil {
		logger.Error("Error updating card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// DeleteCard は特定のカードを削除するためのハンドラ
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCard"))

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
	cardID, appErr := parseUintParam(r, "card_id")
	if appErr != nil {
		logger.Warn("Invalid card ID format in URL")
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Uint64("deck_id", uint64(deckID)), slog.Uint64("card_id", uint64(cardID)))

	if err := h.service.DeleteCard(r.Context(), userID, deckID, cardID); err != nil {
		logger.Error("Error deleting card in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Card deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// GetDueCount は本日出題対象のカード枚数を返すためのハンドラ
func (h *CardHandler) GetDueCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueCount"))

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

	count, err := h.service.CountDueCards(r.Context(), userID, deckID)
	if err != nil {
		logger.Error("Error counting due cards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.DueCountResponse{DueCount: count}, logger)
}
