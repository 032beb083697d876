package api

import (
	"errors"
	"time"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/bilgisen/ainews/internal/middleware"
	"github.com/bilgisen/ainews/internal/models"
	"github.com/bilgisen/ainews/internal/store"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName   *string             `json:"firstName"`
	LastName    *string             `json:"lastName"`
	Bio         *string             `json:"bio"`
	Interests   []string            `json:"interests"`
	Preferences *models.Preferences `json:"preferences"`
}

// Register handles POST /api/users/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("hashing password")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error registering user",
		})
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Profile: models.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
	}

	err = h.users.CreateUser(c.Context(), user)
	if errors.Is(err, store.ErrEmailTaken) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email already registered",
		})
	}
	if errors.Is(err, store.ErrUsernameTaken) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username already taken",
		})
	}
	if err != nil {
		logger.Error().Err(err).Msg("creating user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error registering user",
		})
	}

	token, err := middleware.NewToken(h.auth.Secret, h.auth.Expire, user)
	if err != nil {
		logger.Error().Err(err).Msg("signing token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error registering user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"fullName": user.FullName(),
		},
		"token": token,
	})
}

// Login handles POST /api/users/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	user, err := h.users.GetUserByEmail(c.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}
	if err != nil {
		logger.Error().Err(err).Msg("loading user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error logging in",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	user.LastLoginAt = time.Now()
	user.LoginCount++
	if err := h.users.UpdateUser(c.Context(), user); err != nil {
		logger.Warn().Err(err).Str("user", user.ID).Msg("recording login")
	}

	token, err := middleware.NewToken(h.auth.Secret, h.auth.Expire, user)
	if err != nil {
		logger.Error().Err(err).Msg("signing token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error logging in",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"fullName": user.FullName(),
			"role":     user.Role,
		},
		"token": token,
	})
}

// GetProfile handles GET /api/users/profile.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	var req updateProfileRequest
	if !middleware.ParseAndValidate(c, &req) {
		return nil
	}

	if req.FirstName != nil {
		user.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.Profile.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Profile.Bio = *req.Bio
	}
	if req.Interests != nil {
		user.Profile.Interests = req.Interests
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := h.users.UpdateUser(c.Context(), user); err != nil {
		logger.Error().Err(err).Str("user", user.ID).Msg("updating profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user": fiber.Map{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"profile":     user.Profile,
			"preferences": user.Preferences,
		},
	})
}

// AddFavorite handles POST /api/users/favorites/:articleId.
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	articleID := c.Params("articleId")
	if _, err := h.articles.GetArticle(c.Context(), articleID); errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Article not found",
		})
	} else if err != nil {
		logger.Error().Err(err).Str("article", articleID).Msg("loading article")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding to favorites",
		})
	}

	var body struct {
		Tags  []string `json:"tags"`
		Notes string   `json:"notes"`
	}
	// An empty body is fine; a favorite needs no annotations.
	_ = c.BodyParser(&body)

	user.AddToFavorites(articleID, body.Tags, body.Notes)
	if err := h.users.UpdateUser(c.Context(), user); err != nil {
		logger.Error().Err(err).Str("user", user.ID).Msg("saving favorites")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding to favorites",
		})
	}
	return c.JSON(fiber.Map{"message": "Article added to favorites"})
}

// RemoveFavorite handles DELETE /api/users/favorites/:articleId.
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	user.RemoveFromFavorites(c.Params("articleId"))
	if err := h.users.UpdateUser(c.Context(), user); err != nil {
		logger.Error().Err(err).Str("user", user.ID).Msg("saving favorites")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error removing from favorites",
		})
	}
	return c.JSON(fiber.Map{"message": "Article removed from favorites"})
}

// ListFavorites handles GET /api/users/favorites.
func (h *Handlers) ListFavorites(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := len(user.Favorites)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"favorites": user.Favorites[start:end],
		"pagination": fiber.Map{
			"currentPage":    page,
			"totalPages":     totalPages,
			"totalFavorites": total,
			"hasNextPage":    page < totalPages,
			"hasPrevPage":    page > 1,
			"limit":          limit,
		},
	})
}

// AddReadingHistory handles POST /api/users/reading-history/:articleId.
func (h *Handlers) AddReadingHistory(c *fiber.Ctx) error {
	user, ok := h.currentUser(c)
	if !ok {
		return nil
	}

	articleID := c.Params("articleId")
	if _, err := h.articles.GetArticle(c.Context(), articleID); errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Article not found",
		})
	} else if err != nil {
		logger.Error().Err(err).Str("article", articleID).Msg("loading article")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding to reading history",
		})
	}

	var body struct {
		ReadingTime int `json:"readingTime"`
	}
	_ = c.BodyParser(&body)

	user.AddToReadingHistory(articleID, body.ReadingTime)
	if err := h.users.UpdateUser(c.Context(), user); err != nil {
		logger.Error().Err(err).Str("user", user.ID).Msg("saving reading history")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding to reading history",
		})
	}
	return c.JSON(fiber.Map{"message": "Added to reading history"})
}

// currentUser loads the account behind the authenticated request. On
// failure it writes the error response and reports false.
func (h *Handlers) currentUser(c *fiber.Ctx) (*models.User, bool) {
	id := middleware.UserID(c)
	user, err := h.users.GetUserByID(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
		return nil, false
	}
	if err != nil {
		logger.Error().Err(err).Str("user", id).Msg("loading user")
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching profile",
		})
		return nil, false
	}
	return user, true
}
