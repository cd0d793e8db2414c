// Package backendtest runs an in-memory LabelForge backend over httptest.
// It implements the documented REST surface (auth, projects, labels,
// assets) with real bcrypt hashes and HS256 bearer tokens, so client code
// can be exercised against faithful wire behaviour without a live backend.
package backendtest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/labelforge/labelforge-go/internal/core/domain"
)

type userRecord struct {
	user         domain.User
	passwordHash []byte
}

// Server is a fake LabelForge backend. Create with New, point clients at
// URL(), and Close when done. All state lives in memory.
type Server struct {
	secret string
	http   *httptest.Server

	mu       sync.Mutex
	users    map[string]*userRecord // keyed by user ID
	revoked  map[string]bool        // tokens invalidated by logout
	projects map[string]*domain.Project
	labels   map[string]*domain.Label
	assets   map[string]*domain.Asset
}

func New() *Server {
	s := &Server{
		secret:   "backendtest-secret",
		users:    make(map[string]*userRecord),
		revoked:  make(map[string]bool),
		projects: make(map[string]*domain.Project),
		labels:   make(map[string]*domain.Label),
		assets:   make(map[string]*domain.Asset),
	}

	e := echo.New()
	e.HideBanner = true

	e.POST("/api/auth/login", s.login)
	e.POST("/api/auth/register", s.register)

	authed := e.Group("/api", s.requireAuth)
	authed.POST("/auth/logout", s.logout)
	authed.GET("/auth/session", s.session)
	authed.GET("/auth/profile", s.profile)

	authed.GET("/projects", s.listProjects)
	authed.POST("/projects", s.createProject)
	authed.GET("/projects/labels/:id", s.getLabel)
	authed.PUT("/projects/labels/:id", s.updateLabel)
	authed.DELETE("/projects/labels/:id", s.deleteLabel)
	authed.POST("/projects/labels/:id/duplicate", s.duplicateLabel)
	authed.GET("/projects/:id", s.getProject)
	authed.PUT("/projects/:id", s.updateProject)
	authed.DELETE("/projects/:id", s.deleteProject)
	authed.GET("/projects/:id/labels", s.listLabels)
	authed.POST("/projects/:id/labels", s.createLabel)

	authed.GET("/assets", s.listAssets)
	authed.POST("/assets/upload", s.uploadAsset)
	authed.GET("/assets/:id", s.getAsset)
	authed.PUT("/assets/:id", s.updateAsset)
	authed.DELETE("/assets/:id", s.deleteAsset)

	s.http = httptest.NewServer(e)
	return s
}

// URL returns the server origin, suitable for rest.New.
func (s *Server) URL() string { return s.http.URL }

func (s *Server) Close() { s.http.Close() }

// SeedUser registers a user directly and returns its record.
func (s *Server) SeedUser(email, username, password string) domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := domain.User{
		ID:                uuid.NewString(),
		Email:             email,
		Username:          username,
		Role:              domain.RoleUser,
		Subscription:      domain.SubscriptionFree,
		SubscriptionState: domain.SubscriptionActive,
	}
	s.mu.Lock()
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	s.mu.Unlock()
	return user
}

// RevokeToken invalidates a token server-side without a logout round trip,
// simulating expiry or an admin kill.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

// --- envelope helpers ---

func ok(c echo.Context, status int, data any) error {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]any{"success": false, "message": msg})
}

// --- auth ---

func (s *Server) mintToken(userID string) string {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := t.SignedString([]byte(s.secret))
	return signed
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fail(c, http.StatusUnauthorized, "missing authorization header")
		}
		token := parts[1]

		s.mu.Lock()
		revoked := s.revoked[token]
		s.mu.Unlock()
		if revoked {
			return fail(c, http.StatusUnauthorized, "session expired")
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.secret), nil
		})
		if err != nil || !tkn.Valid {
			return fail(c, http.StatusUnauthorized, "invalid token")
		}

		sub, _ := claims["sub"].(string)
		s.mu.Lock()
		_, exists := s.users[sub]
		s.mu.Unlock()
		if !exists {
			return fail(c, http.StatusUnauthorized, "unknown user")
		}

		c.Set("userID", sub)
		c.Set("token", token)
		return next(c)
	}
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	var rec *userRecord
	for _, u := range s.users {
		if u.user.Email == req.Login || u.user.Username == req.Login {
			rec = u
			break
		}
	}
	s.mu.Unlock()

	if rec == nil || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	return ok(c, http.StatusOK, map[string]any{
		"user":  rec.user,
		"token": s.mintToken(rec.user.ID),
	})
}

func (s *Server) register(c echo.Context) error {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "missing required fields")
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.user.Email == req.Email || u.user.Username == req.Username {
			s.mu.Unlock()
			return fail(c, http.StatusConflict, "User already exists")
		}
	}
	s.mu.Unlock()

	user := s.SeedUser(req.Email, req.Username, req.Password)
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	s.mu.Lock()
	s.users[user.ID].user = user
	s.mu.Unlock()

	return ok(c, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
	return ok(c, http.StatusOK, nil)
}

func (s *Server) session(c echo.Context) error {
	return ok(c, http.StatusOK, map[string]any{"valid": true})
}

func (s *Server) profile(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	rec := s.users[userID]
	s.mu.Unlock()
	return ok(c, http.StatusOK, rec.user)
}

// --- projects ---

func (s *Server) listProjects(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	search := strings.ToLower(c.QueryParam("search"))

	s.mu.Lock()
	out := make([]domain.Project, 0)
	for _, p := range s.projects {
		if p.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		cp := *p
		cp.Count.Labels = s.countLabels(p.ID)
		out = append(out, cp)
	}
	s.mu.Unlock()

	return ok(c, http.StatusOK, out)
}

func (s *Server) countLabels(projectID string) int {
	n := 0
	for _, l := range s.labels {
		if l.ProjectID == projectID {
			n++
		}
	}
	return n
}

func (s *Server) createProject(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	s.projects[project.ID] = project
	s.mu.Unlock()

	return ok(c, http.StatusCreated, project)
}

func (s *Server) findProject(c echo.Context) (*domain.Project, error) {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	p := s.projects[c.Param("id")]
	s.mu.Unlock()
	if p == nil || p.UserID != userID {
		return nil, fail(c, http.StatusNotFound, "Project not found")
	}
	return p, nil
}

func (s *Server) getProject(c echo.Context) error {
	p, err := s.findProject(c)
	if p == nil {
		return err
	}
	return ok(c, http.StatusOK, p)
}

func (s *Server) updateProject(c echo.Context) error {
	p, errResp := s.findProject(c)
	if p == nil {
		return errResp
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
		Color       *string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Icon != nil {
		p.Icon = *req.Icon
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	p.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	return ok(c, http.StatusOK, p)
}

func (s *Server) deleteProject(c echo.Context) error {
	p, errResp := s.findProject(c)
	if p == nil {
		return errResp
	}

	// Cascade delete of labels, as the real backend does.
	s.mu.Lock()
	delete(s.projects, p.ID)
	for id, l := range s.labels {
		if l.ProjectID == p.ID {
			delete(s.labels, id)
		}
	}
	s.mu.Unlock()

	return ok(c, http.StatusOK, nil)
}

// --- labels ---

func (s *Server) listLabels(c echo.Context) error {
	p, errResp := s.findProject(c)
	if p == nil {
		return errResp
	}
	search := strings.ToLower(c.QueryParam("search"))

	s.mu.Lock()
	out := make([]domain.Label, 0)
	for _, l := range s.labels {
		if l.ProjectID != p.ID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		out = append(out, *l)
	}
	s.mu.Unlock()

	return ok(c, http.StatusOK, out)
}

func (s *Server) createLabel(c echo.Context) error {
	p, errResp := s.findProject(c)
	if p == nil {
		return errResp
	}
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Width       float64 `json:"width"`
		Height      float64 `json:"height"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Width <= 0 || req.Height <= 0 {
		return fail(c, http.StatusBadRequest, "name, width and height are required")
	}

	now := time.Now().UTC()
	label := &domain.Label{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		ProjectID:   p.ID,
		Width:       req.Width,
		Height:      req.Height,
		Status:      domain.LabelDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	s.labels[label.ID] = label
	s.mu.Unlock()

	return ok(c, http.StatusCreated, label)
}

func (s *Server) findLabel(c echo.Context) (*domain.Label, error) {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	l := s.labels[c.Param("id")]
	var owner *domain.Project
	if l != nil {
		owner = s.projects[l.ProjectID]
	}
	s.mu.Unlock()
	if l == nil || owner == nil || owner.UserID != userID {
		return nil, fail(c, http.StatusNotFound, "Label not found")
	}
	return l, nil
}

func (s *Server) getLabel(c echo.Context) error {
	l, errResp := s.findLabel(c)
	if l == nil {
		return errResp
	}
	return ok(c, http.StatusOK, l)
}

func (s *Server) updateLabel(c echo.Context) error {
	l, errResp := s.findLabel(c)
	if l == nil {
		return errResp
	}
	var req struct {
		Name        *string             `json:"name"`
		Description *string             `json:"description"`
		Thumbnail   *string             `json:"thumbnail"`
		Status      *domain.LabelStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Thumbnail != nil {
		l.Thumbnail = *req.Thumbnail
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	l.Version++
	l.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	return ok(c, http.StatusOK, l)
}

func (s *Server) deleteLabel(c echo.Context) error {
	l, errResp := s.findLabel(c)
	if l == nil {
		return errResp
	}
	s.mu.Lock()
	delete(s.labels, l.ID)
	s.mu.Unlock()
	return ok(c, http.StatusOK, nil)
}

func (s *Server) duplicateLabel(c echo.Context) error {
	l, errResp := s.findLabel(c)
	if l == nil {
		return errResp
	}

	now := time.Now().UTC()
	s.mu.Lock()
	dup := *l
	dup.ID = uuid.NewString()
	dup.Name = l.Name + " (Copy)"
	dup.Status = domain.LabelDraft
	dup.Version = 1
	dup.CreatedAt = now
	dup.UpdatedAt = now
	s.labels[dup.ID] = &dup
	s.mu.Unlock()

	return ok(c, http.StatusCreated, &dup)
}

// --- assets ---

func (s *Server) listAssets(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	out := make([]domain.Asset, 0)
	for _, a := range s.assets {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	s.mu.Unlock()
	return ok(c, http.StatusOK, out)
}

func (s *Server) uploadAsset(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "file is unreadable")
	}
	defer f.Close()
	size, err := io.Copy(io.Discard, f)
	if err != nil {
		return fail(c, http.StatusBadRequest, "file is unreadable")
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:          uuid.NewString(),
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        size,
		URL:         "/files/" + uuid.NewString(),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.mu.Lock()
	s.assets[asset.ID] = asset
	s.mu.Unlock()

	return ok(c, http.StatusCreated, asset)
}

func (s *Server) findAsset(c echo.Context) (*domain.Asset, error) {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	a := s.assets[c.Param("id")]
	s.mu.Unlock()
	if a == nil || a.UserID != userID {
		return nil, fail(c, http.StatusNotFound, "Asset not found")
	}
	return a, nil
}

func (s *Server) getAsset(c echo.Context) error {
	a, errResp := s.findAsset(c)
	if a == nil {
		return errResp
	}
	return ok(c, http.StatusOK, a)
}

func (s *Server) updateAsset(c echo.Context) error {
	a, errResp := s.findAsset(c)
	if a == nil {
		return errResp
	}
	var req struct {
		Name *string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	s.mu.Lock()
	if req.Name != nil {
		a.Name = *req.Name
	}
	a.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	return ok(c, http.StatusOK, a)
}

func (s *Server) deleteAsset(c echo.Context) error {
	a, errResp := s.findAsset(c)
	if a == nil {
		return errResp
	}
	s.mu.Lock()
	delete(s.assets, a.ID)
	s.mu.Unlock()
	return ok(c, http.StatusOK, nil)
}
