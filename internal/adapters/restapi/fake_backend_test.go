package restapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	fakeEmail    = "a@b.com"
	fakePassword = "Secret123"
	fakeJWTKey   = "test_key"
	fakeUserID   = "u-1"
)

// fakeBackend بک‌اند BhasaConnect را با همان envelopeهای واقعی شبیه‌سازی می‌کند
type fakeBackend struct {
	mu           sync.Mutex
	passwordHash []byte
	liked        map[string]bool
	requests     map[string]int
}

func (b *fakeBackend) count(route string) {
	b.mu.Lock()
	b.requests[route]++
	b.mu.Unlock()
}

func (b *fakeBackend) hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[route]
}

func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := &jwt.StandardClaims{
		Subject:   fakeUserID,
		Issuer:    "bhasaconnect",
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(fakeJWTKey))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return signed
}

func fakeUserJSON() gin.H {
	return gin.H{
		"id":              fakeUserID,
		"email":           fakeEmail,
		"first_name":      "A",
		"last_name":       "B",
		"bio":             "hello there",
		"languages":       []string{"English", "Hindi"},
		"state":           "Kerala",
		"followers_count": 3,
		"following_count": 2,
		"posts_count":     1,
		"created_at":      "2024-01-01T10:00:00",
	}
}

func fakePostJSON(id string, liked bool, likes int) gin.H {
	return gin.H{
		"id":            id,
		"user":          fakeUserJSON(),
		"content":       "hello #bhasa",
		"language":      "English",
		"like_count":    likes,
		"comment_count": 1,
		"is_liked":      liked,
		"created_at":    "2024-01-02T08:30:00",
	}
}

func requireBearer(c *gin.Context) bool {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return false
	}
	return true
}

func newFakeBackend(t *testing.T) (*httptest.Server, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(fakePassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	b := &fakeBackend{
		passwordHash: hash,
		liked:        map[string]bool{},
		requests:     map[string]int{},
	}

	r := gin.New()

	r.POST("/api/auth/register", func(c *gin.Context) {
		b.count("register")
		var req struct {
			Email     string `json:"email" binding:"required"`
			Password  string `json:"password" binding:"required"`
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "invalid input"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"data":    gin.H{"id": fakeUserID, "email": req.Email},
		})
	})

	r.POST("/api/auth/login", func(c *gin.Context) {
		b.count("login")
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input"})
			return
		}
		if req.Email != fakeEmail || bcrypt.CompareHashAndPassword(b.passwordHash, []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"data": gin.H{
				"access_token":  mintToken(t, time.Hour),
				"refresh_token": "refresh-ok",
				"token_type":    "bearer",
			},
		})
	})

	r.POST("/api/auth/refresh", func(c *gin.Context) {
		b.count("refresh")
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken != "refresh-ok" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid refresh token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"access_token": mintToken(t, time.Hour), "token_type": "bearer"},
		})
	})

	r.POST("/api/auth/logout", func(c *gin.Context) {
		b.count("logout")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
	})

	r.GET("/api/auth/me", func(c *gin.Context) {
		b.count("me")
		if !requireBearer(c) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": fakeUserJSON()})
	})

	r.GET("/api/posts/", func(c *gin.Context) {
		b.count("posts")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"items":    []gin.H{fakePostJSON("p-1", b.liked["p-1"], 2)},
				"total":    1,
				"page":     1,
				"limit":    20,
				"has_next": false,
			},
		})
	})

	// این endpoint بدون envelope جواب می‌دهد؛ کلاینت باید هر دو شکل را تحمل کند
	r.GET("/api/posts/:id", func(c *gin.Context) {
		b.count("post")
		c.JSON(http.StatusOK, fakePostJSON(c.Param("id"), false, 0))
	})

	r.POST("/api/posts/", func(c *gin.Context) {
		b.count("createPost")
		if !requireBearer(c) {
			return
		}
		var req struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Content must be 1-500 characters"})
			return
		}
		post := fakePostJSON("p-new", false, 0)
		post["content"] = req.Content
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Post created successfully", "data": post})
	})

	r.DELETE("/api/posts/:id", func(c *gin.Context) {
		b.count("deletePost")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully"})
	})

	r.POST("/api/posts/:id/like", func(c *gin.Context) {
		b.count("like")
		b.mu.Lock()
		b.liked[c.Param("id")] = true
		b.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post liked successfully"})
	})

	r.DELETE("/api/posts/:id/like", func(c *gin.Context) {
		b.count("unlike")
		b.mu.Lock()
		b.liked[c.Param("id")] = false
		b.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post unliked successfully"})
	})

	r.POST("/api/posts/upload-image", func(c *gin.Context) {
		b.count("upload")
		if _, err := c.FormFile("file"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file field is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Image uploaded successfully",
			"data":    gin.H{"image_url": "https://cdn.example.com/img.png"},
		})
	})

	r.GET("/api/posts/:id/comments", func(c *gin.Context) {
		b.count("comments")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"comments": []gin.H{
					{
						"id":         "c-1",
						"user":       fakeUserJSON(),
						"content":    "nice post",
						"can_delete": true,
						"created_at": "2024-01-02T09:00:00",
					},
				},
				"total":    1,
				"page":     1,
				"limit":    20,
				"has_next": false,
			},
		})
	})

	r.POST("/api/posts/:id/comments", func(c *gin.Context) {
		b.count("createComment")
		var req struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Comment must be 1-1000 characters"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"id":         "c-2",
				"user":       fakeUserJSON(),
				"content":    req.Content,
				"can_delete": true,
				"created_at": "2024-01-02T09:05:00",
			},
		})
	})

	r.DELETE("/api/comments/:id", func(c *gin.Context) {
		b.count("deleteComment")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted successfully"})
	})

	r.GET("/api/users/search", func(c *gin.Context) {
		b.count("search")
		item := fakeUserJSON()
		item["id"] = "u-2"
		item["is_following"] = false
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"items":    []gin.H{item},
				"total":    1,
				"page":     1,
				"limit":    20,
				"has_next": false,
			},
		})
	})

	r.GET("/api/users/:id", func(c *gin.Context) {
		b.count("profile")
		u := fakeUserJSON()
		u["id"] = c.Param("id")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
	})

	r.PUT("/api/users/profile", func(c *gin.Context) {
		b.count("updateProfile")
		if !requireBearer(c) {
			return
		}
		var req struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Bio       string `json:"bio"`
			State     string `json:"state"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "invalid input"})
			return
		}
		u := fakeUserJSON()
		if req.Bio != "" {
			u["bio"] = req.Bio
		}
		if req.State != "" {
			u["state"] = req.State
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "data": u})
	})

	r.PUT("/api/users/password", func(c *gin.Context) {
		b.count("updatePassword")
		var req struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "invalid input"})
			return
		}
		if bcrypt.CompareHashAndPassword(b.passwordHash, []byte(req.CurrentPassword)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
	})

	r.POST("/api/users/upload-avatar", func(c *gin.Context) {
		b.count("uploadAvatar")
		if _, err := c.FormFile("file"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file field is required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Avatar uploaded successfully",
			"data":    gin.H{"profile_picture": "https://cdn.example.com/avatar.png"},
		})
	})

	r.POST("/api/users/:id/follow", func(c *gin.Context) {
		b.count("follow")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Now following user"})
	})

	r.DELETE("/api/users/:id/follow", func(c *gin.Context) {
		b.count("unfollow")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unfollowed user"})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, b
}
