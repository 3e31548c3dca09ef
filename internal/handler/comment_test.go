package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentContext(method, path, body string, companyID string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := jsonContext(method, path, body)
	c.SetParamNames("companyId")
	c.SetParamValues(companyID)
	return c, rec
}

func TestListComments(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.seed("Ana", "ana@x.com", "hash")
	comments := newFakeCommentStore(users)
	_, err := comments.Add(t.Context(), 1, "PETR4", "bom resultado")
	require.NoError(t, err)

	h := NewCommentHandler(comments, nil)
	c, rec := commentContext(http.MethodGet, "/comments/get/PETR4", "", "PETR4")

	require.NoError(t, h.ListByCompany(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"Ana"`)
	assert.Contains(t, rec.Body.String(), `"content":"bom resultado"`)
}

func TestListComments_EmptyCompany(t *testing.T) {
	t.Parallel()

	h := NewCommentHandler(newFakeCommentStore(newFakeUserStore()), nil)
	c, rec := commentContext(http.MethodGet, "/comments/get/VALE3", "", "VALE3")

	require.NoError(t, h.ListByCompany(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPostComment(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	acc := users.seed("Ana", "ana@x.com", "hash")
	events := newFakePublisher()
	h := NewCommentHandler(newFakeCommentStore(users), events)

	c, rec := commentContext(http.MethodPost, "/comments/post/PETR4", `{"content":"comprando mais"}`, "PETR4")
	c.Set("user_id", acc.ID)
	c.Set("user_name", acc.Name)

	require.NoError(t, h.Post(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Ana", body["username"])
	assert.Equal(t, "comprando mais", body["content"])

	select {
	case evt := <-events.commented:
		assert.Equal(t, acc.ID, evt.UserID)
		assert.Equal(t, "PETR4", evt.CompanyID)
	case <-time.After(time.Second):
		t.Fatal("comment event not published")
	}
}

func TestPostComment_MissingContent(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	acc := users.seed("Ana", "ana@x.com", "hash")
	h := NewCommentHandler(newFakeCommentStore(users), nil)

	c, rec := commentContext(http.MethodPost, "/comments/post/PETR4", `{"content":"  "}`, "PETR4")
	c.Set("user_id", acc.ID)

	require.NoError(t, h.Post(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostComment_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := NewCommentHandler(newFakeCommentStore(newFakeUserStore()), nil)
	c, rec := commentContext(http.MethodPost, "/comments/post/PETR4", `{"content":"oi"}`, "PETR4")

	require.NoError(t, h.Post(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
