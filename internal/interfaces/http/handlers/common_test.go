package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/turtacn/molgen/internal/testutil"
	"github.com/turtacn/molgen/pkg/errors"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		detail  string
		logged  bool
	}{
		{
			name:    "client error keeps message and detail",
			err:     errors.New(errors.ErrCodeFunctionalGroupAttach, "failed to add functional group O at index 7").WithDetail("molecule has 3 atoms"),
			status:  http.StatusUnprocessableEntity,
			code:    "MOL_017",
			message: "failed to add functional group O at index 7",
			detail:  "molecule has 3 atoms",
		},
		{
			name:    "server error is masked",
			err:     errors.Wrap(fmt.Errorf("pq: connection reset"), errors.ErrCodeDatabaseError, "failed to list generation history"),
			status:  http.StatusInternalServerError,
			code:    "COMMON_012",
			message: "database error",
			logged:  true,
		},
		{
			name:    "foreign error",
			err:     fmt.Errorf("boom"),
			status:  http.StatusInternalServerError,
			code:    "UNKNOWN",
			message: "unknown error",
			logged:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := testutil.NewMockLogger()
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { writeAppError(c, log, tt.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, w.Code)
			e := decodeError(t, w)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.message, e.Message)
			assert.Equal(t, tt.detail, e.Detail)
			if tt.logged {
				assert.Equal(t, 1, log.Count("error"))
			} else {
				assert.Zero(t, log.Count("error"))
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 20},
		{"?n=5", 5},
		{"?n=0", 20},
		{"?n=-3", 20},
		{"?n=abc", 20},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		assert.Equal(t, tt.want, queryInt(c, "n", 20), tt.query)
	}
}

//Personal.AI order the ending
