package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TeamIDKey is the gin context key the team auth middleware stores the
// caller's team id under.
const TeamIDKey = "teamId"

// TeamClaims are the JWT claims carried by a team token. The core only ever
// needs the team id; membership management lives in the sync backend.
type TeamClaims struct {
	TeamID string `json:"teamId"`
	jwt.RegisteredClaims
}

// GenerateTeamToken issues a signed token binding the caller to a team.
func GenerateTeamToken(secret, teamID string, ttl time.Duration) (string, error) {
	claims := TeamClaims{
		TeamID: teamID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TeamAuth requires a valid Bearer team token and stores the team id in the
// request context.
func TeamAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing team token",
			})
			return
		}

		claims := &TeamClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
		if err != nil || !token.Valid || claims.TeamID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid team token",
			})
			return
		}

		c.Set(TeamIDKey, claims.TeamID)
		c.Next()
	}
}
