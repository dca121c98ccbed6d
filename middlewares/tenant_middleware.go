package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
	"github.com/foodtruckos/backend/utils"
)

// TenantIDKey is the context key carrying the resolved tenant id. Handlers
// must take the tenant from here and never from request payload fields.
const TenantIDKey = "tenantID"

// TenantMiddleware resolves the tenant from the request host's subdomain,
// falling back to the X-Tenant-Slug header. Unknown or inactive tenants get
// a 404, indistinguishable from a missing resource.
func TenantMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := tenantSlugFromHost(c.Request.Host)
		if slug == "" {
			slug = c.GetHeader("X-Tenant-Slug")
		}
		if slug == "" {
			utils.RespondError(c, http.StatusNotFound, errors.New("tenant not found"))
			c.Abort()
			return
		}

		var tenant models.Tenant
		err := db.Where("slug = ? AND is_active = ?", slug, true).First(&tenant).Error
		if err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("tenant not found"))
			c.Abort()
			return
		}

		c.Set(TenantIDKey, tenant.ID)
		c.Next()
	}
}

// TenantID returns the tenant resolved for this request, or "" outside the
// tenant-scoped route groups.
func TenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

func tenantSlugFromHost(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	parts := strings.Split(host, ".")
	// subdomain.domain.tld at minimum
	if len(parts) >= 3 {
		return parts[0]
	}
	return ""
}
