package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/internal/middleware"
	"github.com/portfolio-dev/portfolio/internal/types"
)

func GetCurrentIdentity(ctx *gin.Context) (middleware.Identity, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.Identity{}, fmt.Errorf("user not authenticated")
	}

	identity, ok := value.(middleware.Identity)

	if !ok {
		return middleware.Identity{}, fmt.Errorf("invalid identity type in context")
	}

	return identity, nil
}
