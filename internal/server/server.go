package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kintree/kintree/internal/config"
	"github.com/kintree/kintree/internal/core"
	"github.com/kintree/kintree/internal/core/family"
	"github.com/kintree/kintree/internal/core/layout"
	"github.com/kintree/kintree/internal/core/model"
	"github.com/kintree/kintree/internal/store"
)

type Server struct {
	Engine *core.Kintree
	Config *config.Config
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over file config.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}

	return &Server{
		Engine: core.New(st),
		Config: cfg,
	}
}

func openStore(cfg *config.Config) (store.EntityStore, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.Store.SQLitePath)
	case "memgraph":
		uri := cfg.Memgraph.URI
		if uri == "" {
			uri = "bolt://localhost:7687"
		}
		s, err := store.NewMemgraphStore(uri, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, err
		}
		return s, s.EnsureIndices(context.Background())
	default:
		return store.NewMemoryStore(), nil
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/persons", s.ListPersons)
	r.POST("/persons", s.CreatePerson)
	r.GET("/persons/:id", s.GetPerson)
	r.PUT("/persons/:id", s.UpdatePerson)
	r.DELETE("/persons/:id", s.DeletePerson)

	r.GET("/relationships", s.ListRelationships)
	r.POST("/relationships", s.CreateRelationship)
	r.DELETE("/relationships/:id", s.DeleteRelationship)

	r.GET("/family/:id", s.Family)
	r.GET("/layout", s.Layout)

	return r
}

func (s *Server) ListPersons(c *gin.Context) {
	persons, err := s.Engine.ListPersons(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"persons": persons})
}

func (s *Server) CreatePerson(c *gin.Context) {
	var p model.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	saved, err := s.Engine.SavePerson(c.Request.Context(), &p)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) GetPerson(c *gin.Context) {
	p, err := s.Engine.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) UpdatePerson(c *gin.Context) {
	var p model.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	p.ID = c.Param("id")

	saved, err := s.Engine.SavePerson(c.Request.Context(), &p)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) DeletePerson(c *gin.Context) {
	if err := s.Engine.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) ListRelationships(c *gin.Context) {
	rels, err := s.Engine.ListRelationships(c.Request.Context(), c.Query("person_id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": rels})
}

type createRelationshipRequest struct {
	Type   model.RelationshipType `json:"type"`
	FromID string                 `json:"person_from_id"`
	ToID   string                 `json:"person_to_id"`
}

func (s *Server) CreateRelationship(c *gin.Context) {
	var req createRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	pairing, err := s.Engine.CreateRelationship(c.Request.Context(), req.Type, req.FromID, req.ToID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, pairing)
}

func (s *Server) DeleteRelationship(c *gin.Context) {
	if err := s.Engine.DeleteRelationship(c.Request.Context(), c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) Family(c *gin.Context) {
	set, err := s.Engine.ResolveFamily(c.Request.Context(), c.Param("id"), s.familyOptions(c))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (s *Server) Layout(c *gin.Context) {
	layOpts := layout.Options{
		FocusID:           c.Query("focus_id"),
		HorizontalSpacing: s.Config.Layout.HorizontalSpacing,
		VerticalSpacing:   s.Config.Layout.VerticalSpacing,
		SpouseSpacing:     s.Config.Layout.SpouseSpacing,
		RootSpacing:       s.Config.Layout.RootSpacing,
	}

	tree, err := s.Engine.BuildLayout(c.Request.Context(), s.familyOptions(c), layOpts)
	if err != nil {
		abortWith(c, err)
		return
	}

	resp := gin.H{"tree": tree}
	vpWidth := floatQuery(c, "viewport_width", 0)
	vpHeight := floatQuery(c, "viewport_height", 0)
	if vpWidth > 0 && vpHeight > 0 {
		padding := floatQuery(c, "padding", 40)
		resp["fit"] = layout.FitToViewport(tree, layout.Viewport{Width: vpWidth, Height: vpHeight}, padding)
	}
	c.JSON(http.StatusOK, resp)
}

// familyOptions starts from the configured resolver defaults and applies any
// query-string overrides.
func (s *Server) familyOptions(c *gin.Context) family.Options {
	r := s.Config.Resolver
	return family.Options{
		IncludeSpouses:        boolQuery(c, "include_spouses", r.IncludeSpouses),
		GenerationsUp:         intQuery(c, "generations_up", r.GenerationsUp),
		GenerationsDown:       intQuery(c, "generations_down", r.GenerationsDown),
		IncludeSiblings:       boolQuery(c, "include_siblings", r.IncludeSiblings),
		IncludeExtendedFamily: boolQuery(c, "include_extended_family", r.IncludeExtendedFamily),
	}
}

func boolQuery(c *gin.Context, name string, fallback bool) bool {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func floatQuery(c *gin.Context, name string, fallback float64) float64 {
	if v := c.Query(name); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func abortWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "This relationship already exists"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
