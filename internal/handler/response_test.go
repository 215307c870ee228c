package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/taskrule"
)

func failWith(t *testing.T, err error) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, err)

	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w.Code, body.Code
}

func TestFailMapsCodedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"not found", fmt.Errorf("40402:solution not found"), http.StatusNotFound, 40402},
		{"forbidden", fmt.Errorf("40301:no permission"), http.StatusForbidden, 40301},
		{"conflict", fmt.Errorf("40902:user already holds a role in this class"), http.StatusConflict, 40902},
		{"bad request", fmt.Errorf("40002:end date before start date"), http.StatusBadRequest, 40002},
		{"uncoded error", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, 50001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpCode, bodyCode := failWith(t, tt.err)
			if httpCode != tt.wantHTTP || bodyCode != tt.wantCode {
				t.Errorf("got http=%d code=%d, want http=%d code=%d",
					httpCode, bodyCode, tt.wantHTTP, tt.wantCode)
			}
		})
	}
}

func TestFailMapsValidationKinds(t *testing.T) {
	tests := []struct {
		kind     taskrule.ErrorKind
		wantCode int
	}{
		{taskrule.ErrIllegalParentType, 40021},
		{taskrule.ErrOutOfRange, 40022},
		{taskrule.ErrCrossSolutionDependency, 40023},
		{taskrule.ErrDependencyOrdering, 40024},
		{taskrule.ErrUserNotInTeam, 40025},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := &taskrule.ValidationError{Kind: tt.kind, Detail: "boom"}
			httpCode, bodyCode := failWith(t, err)
			if httpCode != http.StatusBadRequest {
				t.Errorf("http = %d, want 400", httpCode)
			}
			if bodyCode != tt.wantCode {
				t.Errorf("code = %d, want %d", bodyCode, tt.wantCode)
			}
		})
	}
}
