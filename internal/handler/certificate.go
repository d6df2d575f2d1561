package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

type issueCertificateRequest struct {
	FullName string `json:"fullName"`
}

// handleIssueCertificate issues the caller's certificate. The body is optional.
func (h *Handler) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	var req issueCertificateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	cert, err := h.certificateService.Issue(r.Context(), currentUser(r).ID, cleanText(req.FullName))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, cert)
}

func (h *Handler) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := h.certificateService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	jsonOK(w, cert)
}

func (h *Handler) handleCertificatePDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pdf, err := h.certificateService.PDF(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeFile(w, "application/pdf", "aaaquest-certificate-"+id+".pdf", pdf)
}
