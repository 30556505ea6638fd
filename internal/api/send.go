package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/nyashahama/mandrill-mailer/internal/mailer"
)

// ─── POST /api/method/send_email_with_template ───────────────────────────────

// sendResponse wraps method results under "message". Message is null when a
// provider failure was swallowed.
type sendResponse struct {
	Message any `json:"message"`
}

// handleSendEmailWithTemplate accepts either a JSON body or a form post where
// recipients and variables arrive as serialized JSON.
func (s *Server) handleSendEmailWithTemplate(w http.ResponseWriter, r *http.Request) {
	var req mailer.Request
	if isForm(r) {
		if !decodeForm(w, r, &req) {
			return
		}
	} else if !decode(w, r, &req) {
		return
	}

	results, err := s.mailer.Send(r.Context(), req)
	if err != nil {
		s.respondSendErr(w, r, err)
		return
	}

	respond(w, http.StatusOK, sendResponse{Message: results})
}

// respondSendErr maps dispatcher errors onto status codes. Anything that is
// not a validation, configuration or lookup failure came from the provider.
func (s *Server) respondSendErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *mailer.ValidationError
		ce *mailer.ConfigurationError
	)
	switch {
	case errors.As(err, &ve):
		respondErr(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &ce):
		s.logger.Error("send: api key not configured", "error", err, logField(r))
		respondErr(w, http.StatusInternalServerError, "Mailchimp API Key not specified")
	case errors.Is(err, mailer.ErrKeyLookup):
		s.respondInternalErr(w, r, err)
	default:
		s.logger.Warn("send: provider error", "error", err, logField(r))
		respondErr(w, http.StatusBadGateway, err.Error())
	}
}

// ─── FORM DECODING ───────────────────────────────────────────────────────────

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

// decodeForm fills req from a url-encoded or multipart body. Returns false
// and writes 400 on any parse failure.
func decodeForm(w http.ResponseWriter, r *http.Request, req *mailer.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondErr(w, http.StatusBadRequest, "invalid form body: "+err.Error())
		return false
	}

	form := r.PostForm
	var err error
	if req.Recipients, err = mailer.ParseRecipients(form.Get("recipients")); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return false
	}
	if req.Variables, err = mailer.ParseVariables(form.Get("variables")); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return false
	}
	if req.RaiseOnError, err = mailer.ParseFlag(form.Get("raise_exc")); err != nil {
		respondErr(w, http.StatusBadRequest, err.Error())
		return false
	}
	req.FromEmail = form.Get("from_email")
	req.Template = form.Get("template")
	req.Subject = form.Get("subject")
	req.BCCAddress = form.Get("bcc_address")
	return true
}
