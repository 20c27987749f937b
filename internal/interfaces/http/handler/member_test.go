package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appmembership "github.com/ruralsoc/backend/internal/application/membership"
	"github.com/ruralsoc/backend/internal/domain/membership"
	"github.com/ruralsoc/backend/internal/interfaces/http/middleware"
)

func newMemberRouter(repo *stubProfileRepo, role membership.Role, chapterID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := appmembership.NewMemberService(stubIdentity{}, repo, &stubChapterRepo{}, zap.NewNop())
	h := NewMemberHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, uuid.New().String())
		c.Set(middleware.ContextKeyRole, string(role))
		c.Set(middleware.ContextKeyChapterID, chapterID.String())
	})
	r.GET("/api/v1/members", h.List)
	r.PUT("/api/v1/members/:id", h.Update)
	return r
}

func seedMember(t *testing.T, repo *stubProfileRepo, chapterID uuid.UUID, email, document string) *membership.MemberProfile {
	t.Helper()
	profile, err := membership.NewMemberProfile(uuid.New(), chapterID, email, document, "Ana", "Pérez")
	require.NoError(t, err)
	repo.put(profile)
	return profile
}

func TestListMembersChapterAdminScoped(t *testing.T) {
	repo := newStubProfileRepo()
	ownChapter := uuid.New()
	otherChapter := uuid.New()
	mine := seedMember(t, repo, ownChapter, "ana@example.com", "30111222")
	seedMember(t, repo, otherChapter, "juan@example.com", "27999888")

	router := newMemberRouter(repo, membership.RoleChapterAdmin, ownChapter)

	// Asking for the other chapter explicitly changes nothing
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/members?chapter_id="+otherChapter.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			ID        string `json:"id"`
			ChapterID string `json:"chapter_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1, "chapter admins only see their own chapter")
	assert.Equal(t, mine.ID.String(), body.Data[0].ID)
}

func TestListMembersSuperadminUnscoped(t *testing.T) {
	repo := newStubProfileRepo()
	seedMember(t, repo, uuid.New(), "ana@example.com", "30111222")
	seedMember(t, repo, uuid.New(), "juan@example.com", "27999888")

	router := newMemberRouter(repo, membership.RoleSuperAdmin, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestUpdateMemberOtherChapterForbidden(t *testing.T) {
	repo := newStubProfileRepo()
	target := seedMember(t, repo, uuid.New(), "ana@example.com", "30111222")

	router := newMemberRouter(repo, membership.RoleChapterAdmin, uuid.New())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/members/"+target.ID.String(),
		strings.NewReader(`{"phone":"+54 387 555 0101"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := repo.FindByID(req.Context(), target.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Phone)
}
