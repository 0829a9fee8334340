package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
)

// envelope is the uniform response shape of every endpoint: exactly one
// of data and error is non-null.
type envelope struct {
	Data  any            `json:"data"`
	Error *errorResponse `json:"error"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Data: data}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(envelope{
		Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
	})
}

// decodeAndValidate decodes a JSON request body into dst and runs
// validator struct tags over it.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError(fmt.Sprintf("invalid request body: %v", err))
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return errors.NewValidationError(f.Field(), fmt.Sprintf("failed %q constraint", f.Tag()))
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
