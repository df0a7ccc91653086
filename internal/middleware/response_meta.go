package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-portal-api/pkg/middleware/requestid"
)

const (
	metaKey      = "response_meta"
	metaStartKey = "response_meta_start"
	cacheHitKey  = "cache_hit"
)

// WithResponseMeta stamps the request start and opens the meta bag handlers
// fill through SetMeta and SetCacheHit.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Set(metaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta stores a field under the envelope's meta object.
func SetMeta(c *gin.Context, key string, value interface{}) {
	metaBag(c)[key] = value
}

// SetCacheHit records whether the payload was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, cacheHitKey, hit)
}

// ResponseMeta snapshots the meta bag, adding the request id and the time
// spent since the request started. Without WithResponseMeta the clock starts
// at the first meta write.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	bag := metaBag(c)
	meta := make(map[string]interface{}, len(bag)+2)
	for k, v := range bag {
		meta[k] = v
	}
	if start, ok := c.Get(metaStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	if id := requestid.Value(c); id != "" {
		meta["request_id"] = id
	}
	return meta
}

func metaBag(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(metaKey); ok {
		if bag, ok := v.(map[string]interface{}); ok {
			return bag
		}
	}
	bag := map[string]interface{}{}
	c.Set(metaKey, bag)
	if _, ok := c.Get(metaStartKey); !ok {
		c.Set(metaStartKey, time.Now())
	}
	return bag
}
