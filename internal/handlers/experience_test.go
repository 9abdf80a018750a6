package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func formContext(t *testing.T, form url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPut, "/api/experience/1", strings.NewReader(form.Encode()))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ctx
}

func TestExperienceFromForm_EmptyFieldClears(t *testing.T) {
	existing := &models.Experience{
		Role:           "Engineer",
		Company:        "Acme",
		Location:       "Berlin",
		Description:    "Shipped things",
		CompanyWebsite: "https://acme.example",
		StartDate:      time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	form := url.Values{}
	form.Set("description", "")
	form.Set("location", "")
	form.Set("companyWebsite", "")
	ctx := formContext(t, form)

	experience, ok := experienceFromForm(ctx, existing)
	require.True(t, ok)
	require.Empty(t, experience.Description)
	require.Empty(t, experience.Location)
	require.Empty(t, experience.CompanyWebsite)
	// Fields the form does not carry survive untouched.
	require.Equal(t, "Engineer", experience.Role)
	require.Equal(t, "Acme", experience.Company)
}

func TestExperienceFromForm_ClearedRoleRejected(t *testing.T) {
	existing := &models.Experience{
		Role:      "Engineer",
		Company:   "Acme",
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	form := url.Values{}
	form.Set("role", "")
	ctx := formContext(t, form)

	_, ok := experienceFromForm(ctx, existing)
	require.False(t, ok)
}

func TestParseStringList_JSON(t *testing.T) {
	require.Equal(t, datatypes.NewJSONSlice([]string{"Go", "Postgres"}), parseStringList(`["Go","Postgres"]`))
	require.Empty(t, parseStringList(`[]`))
}

func TestParseStringList_CommaFallback(t *testing.T) {
	require.Equal(t, datatypes.NewJSONSlice([]string{"Go", "Postgres"}), parseStringList("Go, Postgres"))
	require.Equal(t, datatypes.NewJSONSlice([]string{"Go"}), parseStringList("Go,,  "))
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("2023-04-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = parseDate("2023-04-01T12:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 12, parsed.Hour())

	_, err = parseDate("April 2023")
	require.Error(t, err)
}

func TestNewUnsubscribeToken(t *testing.T) {
	a := newUnsubscribeToken()
	b := newUnsubscribeToken()

	require.Len(t, a, 64)
	require.NotEqual(t, a, b)
}
