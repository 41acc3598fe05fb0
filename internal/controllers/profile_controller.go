package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"cjd/internal/providers"
	"cjd/internal/services"
)

type ProfileController struct {
	logger   providers.Logger
	profiles services.ProfileServiceInterface
}

func NewProfileController(logger providers.Logger, profiles services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{logger: logger, profiles: profiles}
}

func (pc *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := pc.profiles.Get()
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type profileRequest struct {
	Name              string `json:"name"`
	StateOfDeployment string `json:"stateOfDeployment"`
	StartDate         string `json:"startDate"`
}

func (pc *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload profileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	profile, err := pc.profiles.Save(payload.Name, payload.StateOfDeployment, payload.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (pc *ProfileController) SettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.profiles.Settings())
}

// SettingsSave merges the posted keys into the settings blob. Keys not
// present in the payload are left alone.
func (pc *ProfileController) SettingsSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	for key, value := range payload {
		pc.profiles.PutSetting(key, value)
	}
	w.WriteHeader(http.StatusOK)
}
