// Package web serves the server-rendered HTML frontend. Pages are classic
// templates; search and tag filtering swap fragments via htmx so a request
// carrying the HX-Request header gets the fragment alone.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/magicchef/magic-chef/backend/internal/models"
	"github.com/magicchef/magic-chef/backend/internal/service"
)

//go:embed templates/*
var templatesFS embed.FS

type Handler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	pages         map[string]*template.Template
	fragments     *template.Template
}

func NewHandler(recipeService *service.RecipeService, authService *service.AuthService) (*Handler, error) {
	fragments, err := template.ParseFS(templatesFS, "templates/fragments/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{"home.html", "recipes.html", "recipe.html", "search.html"} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/fragments/*.html", "templates/pages/"+name)
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}

	return &Handler{
		recipeService: recipeService,
		authService:   authService,
		pages:         pages,
		fragments:     fragments,
	}, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Home)
	router.GET("/recipes", h.Recipes)
	router.GET("/recipes/:id", h.Recipe)
	router.GET("/search", h.Search)
}

// viewer resolves the browsing user from the token cookie. Anonymous viewers
// get the nil id and see only public recipes.
func (h *Handler) viewer(c *gin.Context) uuid.UUID {
	token, err := c.Cookie("token")
	if err != nil || token == "" {
		return uuid.Nil
	}
	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		return uuid.Nil
	}
	return claims.UserID
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// render executes a page into a buffer first so a template failure can still
// answer 500 instead of a truncated 200.
func (h *Handler) render(c *gin.Context, page string, data gin.H) {
	tmpl, ok := h.pages[page]
	if !ok {
		log.Printf("unknown page template %q", page)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("template error: %v", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) renderFragment(c *gin.Context, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("template error: %v", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Home shows the signed-in user's own recipes; anonymous visitors get the
// public collection.
func (h *Handler) Home(c *gin.Context) {
	viewer := h.viewer(c)

	var recipes []models.Recipe
	var err error
	if viewer != uuid.Nil {
		recipes, err = h.recipeService.ListByOwner(viewer)
	} else {
		recipes, err = h.recipeService.Search(uuid.Nil, service.SearchQuery{})
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	h.render(c, "home.html", gin.H{
		"Title":   "Magic Chef",
		"Recipes": recipes,
	})
}

func (h *Handler) Recipes(c *gin.Context) {
	viewer := h.viewer(c)

	recipes, err := h.recipeService.Search(viewer, service.SearchQuery{Tag: c.Query("tag")})
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	if isHTMX(c) {
		h.renderFragment(c, "recipe_list", recipes)
		return
	}

	tags, err := h.recipeService.AllTags()
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	h.render(c, "recipes.html", gin.H{
		"Title":   "Recipes",
		"Recipes": recipes,
		"Tags":    tags,
	})
}

func (h *Handler) Recipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "recipe not found")
		return
	}

	recipe, err := h.recipeService.Get(h.viewer(c), id)
	if err != nil {
		c.String(http.StatusNotFound, "recipe not found")
		return
	}

	h.render(c, "recipe.html", gin.H{
		"Title":  recipe.Title,
		"Recipe": recipe,
	})
}

// Search renders the search page, or just the result list when htmx asks.
func (h *Handler) Search(c *gin.Context) {
	query := service.SearchQuery{
		Query:      c.Query("q"),
		Tag:        c.Query("tag"),
		Ingredient: c.Query("ingredient"),
	}

	var recipes []models.Recipe
	var err error
	if query.Query != "" || query.Tag != "" || query.Ingredient != "" {
		recipes, err = h.recipeService.Search(h.viewer(c), query)
		if err != nil {
			c.String(http.StatusInternalServerError, "something went wrong")
			return
		}
	}

	if isHTMX(c) {
		h.renderFragment(c, "recipe_list", recipes)
		return
	}

	h.render(c, "search.html", gin.H{
		"Title":   "Search",
		"Query":   query.Query,
		"Recipes": recipes,
	})
}
