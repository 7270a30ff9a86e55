package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cook-assistant/internal/api/handlers"
	"cook-assistant/internal/api/handlers/health"
	"cook-assistant/internal/api/middleware"
	"cook-assistant/internal/core/cache"
	"cook-assistant/internal/core/detect"
	recipeService "cook-assistant/internal/core/recipe"
	"cook-assistant/internal/core/session"
	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，偵測結果與食譜記錄都是小型 payload
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, sessionStore session.Store, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("spoonacular_enabled", cfg.Spoonacular.Enabled),
	)

	// 初始化偵測標準化器
	normalizer, err := detect.NewNormalizerFromFile(cfg.Detection.LabelMap)
	if err != nil {
		common.LogError("Failed to initialize detection normalizer", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize detection normalizer: %w", err)
	}

	// 初始化食譜搜尋服務
	recipeSvc := recipeService.NewService(cfg, cacheManager)
	if recipeSvc == nil {
		common.LogError("Failed to initialize recipe service")
		return nil, fmt.Errorf("failed to initialize recipe service")
	}

	// 初始化處理器
	pantryHandler := handlers.NewPantryHandler(sessionStore, normalizer)
	recipeHandler := handlers.NewRecipeHandler(sessionStore, recipeSvc)
	shoppingHandler := handlers.NewShoppingHandler(sessionStore)

	// 全局中間件：設置超時和共用資源
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		// 設置配置與快取統計，健康檢查使用
		c.Set("config", cfg)
		if cacheManager != nil {
			c.Set("cache_stats", cacheManager)
		}

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		// 食材清單相關路由
		pantryGroup := api.Group("/pantry")
		{
			// 偵測結果上報
			pantryGroup.POST("/detections", pantryHandler.HandleDetections)

			// 手動加入食材
			pantryGroup.POST("/ingredients", pantryHandler.HandleAddIngredients)

			// 查詢、移除、清空
			pantryGroup.GET("", pantryHandler.HandleGetPantry)
			pantryGroup.DELETE("/ingredients/:name", pantryHandler.HandleRemoveIngredient)
			pantryGroup.DELETE("", pantryHandler.HandleClearPantry)
		}

		// 食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			// 依食材清單搜尋食譜
			recipeGroup.POST("/search", recipeHandler.HandleSearch)

			// 選定食譜
			recipeGroup.PUT("/selected", recipeHandler.HandleSelectRecipe)
		}

		// 購物清單相關路由
		shoppingGroup := api.Group("/shopping")
		{
			shoppingGroup.GET("", shoppingHandler.HandleGetShoppingList)
			shoppingGroup.GET("/export", shoppingHandler.HandleExport)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
