package httpserver

import (
	"encoding/json"
	"net/http"

	"socialbid/internal/domain"
	"socialbid/internal/service"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

func handleGenerate(genSvc *service.GenerateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		entry, err := genSvc.Generate(r.Context(), CurrentUser(r), req.Prompt, domain.PromptType(req.Type))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	}
}
