package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store designer claims in the Gin context.
	ContextUserClaims = "userClaims"

	designerIDClaim = "designerID"
)

// Authoriz rejects requests without a valid bearer token and stores the token claims
// in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if _, ok := designerID(claims); !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// DesignerID returns the ID of the designer authenticated by Authoriz.
func DesignerID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	return designerID(claims)
}

func designerID(claims map[string]interface{}) (uuid.UUID, bool) {
	raw, ok := claims[designerIDClaim].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
