package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"time"
)

const basePath = "/api/v1"

// TestResponse wraps the API envelope for assertions.
type TestResponse struct {
	Code    int
	Status  string
	Message string
	Data    map[string]interface{}
	RawData string
	Errors  map[string]string
	Next    map[string]interface{}
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if r.Data == nil {
		return ""
	}
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

func (r TestResponse) NextDestination() string {
	if r.Next == nil {
		return ""
	}
	if v, ok := r.Next["destination"].(string); ok {
		return v
	}
	return ""
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(fmt.Sprintf("failed to encode request body: %v", err))
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, basePath+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var envelope struct {
		Status  string                 `json:"status"`
		Message string                 `json:"message"`
		Data    json.RawMessage        `json:"data"`
		Errors  map[string]string      `json:"errors"`
		Next    map[string]interface{} `json:"next"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		panic(fmt.Sprintf("failed to decode response for %s %s: %v", method, path, err))
	}

	resp := TestResponse{
		Code:    w.Code,
		Status:  envelope.Status,
		Message: envelope.Message,
		RawData: string(envelope.Data),
		Errors:  envelope.Errors,
		Next:    envelope.Next,
	}
	if len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		json.Unmarshal(envelope.Data, &resp.Data)
	}
	return resp
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func contactForm(email string) map[string]interface{} {
	return map[string]interface{}{
		"username": "Jane Doe",
		"email":    email,
		"phone":    "+1 415-555-2671",
	}
}

func registrationForm(userID, email string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":                  userID,
		"username":                 "Jane Doe",
		"email":                    email,
		"phone":                    "+1 415-555-2671",
		"birth_date":               "1990-05-01T00:00:00Z",
		"gender":                   "Female",
		"address":                  "14 Elm Street, Springfield",
		"occupation":               "Engineer",
		"emergency_contact_name":   "John Doe",
		"emergency_contact_number": "(415) 555 2671",
		"primary_physician":        "John Green",
		"insurance_provider":       "BlueCross",
		"insurance_policy_number":  "ABC123456",
		"treatment_consent":        true,
		"disclosure_consent":       true,
		"privacy_consent":          true,
	}
}

func appointmentForm(userID string) map[string]interface{} {
	return map[string]interface{}{
		"user_id":           userID,
		"patient":           "Jane Doe",
		"primary_physician": "John Green",
		"schedule":          time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"reason":            "Annual check-up",
	}
}
