package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubAccount struct {
	principal models.Principal
	password  string
}

type stubPrincipals struct {
	mu        sync.Mutex
	class     auth.Class
	tokens    *auth.TokenService
	byEmail   map[string]*stubAccount
	signUps   int
	signUpErr error
}

func (s *stubPrincipals) Class() auth.Class { return s.class }

func (s *stubPrincipals) SignUp(_ context.Context, in services.SignUpInput) (*models.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signUps++
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}
	if _, ok := s.byEmail[in.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	acc := &stubAccount{
		principal: models.Principal{ID: uuid.NewString(), Email: in.Email, FirstName: in.FirstName, LastName: in.LastName},
		password:  in.Password,
	}
	s.byEmail[in.Email] = acc
	p := acc.principal
	return &p, nil
}

func (s *stubPrincipals) SignIn(_ context.Context, email, password string) (string, *models.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byEmail[email]
	if !ok || acc.password != password {
		return "", nil, common.ErrorUnauthorized
	}
	token, err := s.tokens.Issue(acc.principal.ID, s.class)
	if err != nil {
		return "", nil, err
	}
	p := acc.principal
	return token, &p, nil
}

func (s *stubPrincipals) byID(id string) (*models.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.byEmail {
		if acc.principal.ID == id {
			p := acc.principal
			return &p, true
		}
	}
	return nil, false
}

type stubCourses struct {
	mu    sync.Mutex
	byID  map[string]*models.Course
	calls int
}

func (s *stubCourses) Create(_ context.Context, adminID string, f models.CourseFields) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for _, c := range s.byID {
		if c.Title == f.Title {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := &models.Course{ID: uuid.NewString(), Title: f.Title, Description: f.Description, Price: f.Price, ImageURL: f.ImageURL, CreatorID: adminID}
	s.byID[c.ID] = c
	cp := *c
	return &cp, nil
}

func (s *stubCourses) owned(adminID, courseID string) (*models.Course, error) {
	c, ok := s.byID[courseID]
	if !ok || c.CreatorID != adminID {
		return nil, common.ErrorNotOwned
	}
	return c, nil
}

func (s *stubCourses) Update(_ context.Context, adminID, courseID string, f models.CourseFields) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	c, err := s.owned(adminID, courseID)
	if err != nil {
		return nil, err
	}
	c.Title, c.Description, c.Price, c.ImageURL = f.Title, f.Description, f.Price, f.ImageURL
	cp := *c
	return &cp, nil
}

func (s *stubCourses) Delete(_ context.Context, adminID, courseID string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	c, err := s.owned(adminID, courseID)
	if err != nil {
		return nil, err
	}
	delete(s.byID, courseID)
	return c, nil
}

func (s *stubCourses) ListByCreator(_ context.Context, adminID string) ([]*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Course, 0)
	for _, c := range s.byID {
		if c.CreatorID == adminID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubCourses) ListAll(context.Context) ([]*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Course, 0, len(s.byID))
	for _, c := range s.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubCourses) Preview(_ context.Context, courseID string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[courseID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCourses) PresignImageUpload(_ context.Context, adminID, courseID string) (*services.ImageUpload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.owned(adminID, courseID); err != nil {
		return nil, err
	}
	key := "courses/" + courseID + "/img"
	return &services.ImageUpload{Key: key, UploadURL: "https://s3.local/course-images/" + key}, nil
}

type stubPurchases struct {
	mu      sync.Mutex
	courses *stubCourses
	users   *stubPrincipals
	rows    map[[2]string]*models.Purchase
	inserts int
}

func (s *stubPurchases) Purchase(ctx context.Context, userID, courseID string) (*services.PurchaseResult, error) {
	if _, err := s.courses.Preview(ctx, courseID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]string{courseID, userID}
	if _, ok := s.rows[key]; ok {
		return &services.PurchaseResult{Created: false}, nil
	}
	s.inserts++
	p := &models.Purchase{ID: uuid.NewString(), CourseID: courseID, UserID: userID, CreatedAt: time.Now()}
	s.rows[key] = p
	buyer, _ := s.users.byID(userID)
	return &services.PurchaseResult{Purchase: p, Created: true, Buyer: buyer}, nil
}

func (s *stubPurchases) ListByUser(_ context.Context, userID string) ([]*models.PurchasedCourse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.PurchasedCourse, 0)
	for _, p := range s.rows {
		if p.UserID == userID {
			out = append(out, &models.PurchasedCourse{Purchase: *p})
		}
	}
	return out, nil
}

type testEnv struct {
	handler   http.Handler
	tokens    *auth.TokenService
	users     *stubPrincipals
	admins    *stubPrincipals
	courses   *stubCourses
	purchases *stubPurchases
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService([]byte("user-secret"), []byte("admin-secret"), time.Hour)
	require.NoError(t, err)

	users := &stubPrincipals{class: auth.ClassUser, tokens: tokens, byEmail: map[string]*stubAccount{}}
	admins := &stubPrincipals{class: auth.ClassAdmin, tokens: tokens, byEmail: map[string]*stubAccount{}}
	courses := &stubCourses{byID: map[string]*models.Course{}}
	purchases := &stubPurchases{courses: courses, users: users, rows: map[[2]string]*models.Purchase{}}

	srv := NewServer(":0", logging.Discard(), Deps{
		Users:     users,
		Admins:    admins,
		Courses:   courses,
		Purchases: purchases,
		Tokens:    tokens,
	})

	return &testEnv{
		handler:   srv.Handler(),
		tokens:    tokens,
		users:     users,
		admins:    admins,
		courses:   courses,
		purchases: purchases,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.TokenHeaderName, token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// signIn signs a principal of the given class up and in and returns its token.
func (e *testEnv) signIn(t *testing.T, class auth.Class, email string) string {
	t.Helper()

	prefix := "/" + string(class)
	body := map[string]any{"email": email, "password": "secret1", "firstName": "Ann", "lastName": "Lee"}

	rec := e.do(t, http.MethodPost, prefix+"/signup", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, prefix+"/signin", map[string]any{"email": email, "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func courseBody(title string) map[string]any {
	return map[string]any{
		"title":       title,
		"description": "A course about " + title,
		"imageUrl":    "https://img.local/" + title + ".png",
		"price":       49.5,
	}
}
