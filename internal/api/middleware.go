package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/auth"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/util"
)

const ctxUserKey = "user"

// authorize is the access gate: it enforces the route's declared capability
// before the handler runs. Public routes pass through untouched.
func (h *Handler) authorize(access Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		if access == AccessPublic {
			c.Next()
			return
		}

		user, err := h.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{"error": apperr.MessageOf(err)})
			return
		}
		c.Set(ctxUserKey, user)

		if access == AccessAdmin && !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Åtkomst nekad. Endast administratörer har tillgång till denna funktion.",
			})
			return
		}
		c.Next()
	}
}

// authenticate verifies the bearer token and loads the user it references.
func (h *Handler) authenticate(c *gin.Context) (*models.User, error) {
	tokenStr, err := auth.FromHeader(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}
	claims, err := auth.Parse(tokenStr, []byte(h.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Ogiltig token")
	}
	user, err := h.store.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Unauthorized, "Ogiltig token")
		}
		return nil, err
	}
	return user, nil
}

// currentUser returns the user the access gate attached, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			zap.L().Error("request", fields...)
		} else {
			zap.L().Info("request", fields...)
		}
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
