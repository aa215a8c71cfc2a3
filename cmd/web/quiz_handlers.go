package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/i18n"
	mw "almaradiante.org/alma-web/internal/middleware"
	"almaradiante.org/alma-web/internal/quiz"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// QuizStartHandler begins the flow for the visitor's session in the active
// language. Without loaded quiz data the session stays on the start screen
// and the error is surfaced to the user.
func QuizStartHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := sessionFor(r)

	data := quiz.Data{}
	if tree, ok := store.Tree(lang); ok {
		parsed, err := i18n.QuizData(tree)
		if err != nil {
			logger.Warn("quiz data unusable", zap.String("lang", lang), zap.Error(err))
		} else {
			data = parsed
		}
	}
	sess.Quiz.SetData(data)
	if err := sess.Quiz.Start(); err != nil {
		if errors.Is(err, quiz.ErrUnavailable) {
			writeJSONError(w, http.StatusConflict, startErrorMessage(lang))
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "quiz unavailable")
		return
	}
	writeJSON(w, http.StatusOK, sess.Quiz.Snapshot())
}

// startErrorMessage localizes the quiz-unavailable notice, falling back to the
// primary language and finally a hardcoded string.
func startErrorMessage(lang string) string {
	for _, code := range []string{lang, i18n.LangPrimary} {
		if tree, ok := store.Tree(code); ok {
			if msg, ok := i18n.ResolveString(tree, "catalog.quiz.error"); ok {
				return msg
			}
		}
	}
	return "quiz data unavailable"
}

type answerRequest struct {
	Option int `json:"option"`
}

// QuizAnswerHandler records the selected option for the current question.
func QuizAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid body")
		return
	}
	sess := sessionFor(r)
	if err := sess.Quiz.Select(req.Option); err != nil {
		switch {
		case errors.Is(err, quiz.ErrOptionOutOfRange):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, quiz.ErrNotAcceptingAnswers):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			writeJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, sess.Quiz.Snapshot())
}

// QuizResetHandler discards the session's quiz progress.
func QuizResetHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFor(r)
	sess.Quiz.Reset()
	writeJSON(w, http.StatusOK, sess.Quiz.Snapshot())
}

// QuizStateHandler reports the current engine state; clients poll it through
// the delayed transitions (acknowledgment, loading, scroll).
func QuizStateHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFor(r)
	writeJSON(w, http.StatusOK, sess.Quiz.Snapshot())
}
