package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_console/internal/apperr"
	"inventory_console/internal/config"
	"inventory_console/internal/dashboard"
	"inventory_console/internal/inventory"
	"inventory_console/internal/middleware"
	"inventory_console/internal/model"
)

// Setup 注册全部 HTTP 路由。写操作挂 console token 校验。
func Setup(r *gin.Engine, core *inventory.Core, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	guard := middleware.ConsoleToken(cfg.ConsoleToken)

	// Products
	r.GET("/api/products", listProducts(core))
	r.GET("/api/products/:id", getProduct(core))
	r.POST("/api/products", guard, createProduct(core))
	r.DELETE("/api/products/:id", guard, deleteProduct(core))

	// Orders（合并视图 + 购买 + 本地订单生命周期）
	r.GET("/api/orders", listOrders(core))
	r.GET("/api/orders/:id", getOrder(core))
	r.POST("/api/orders", placeOrder(core))
	r.POST("/api/orders/:id/status", guard, setOrderStatus(core))
	r.POST("/api/orders/:id/refund", guard, refundOrder(core))

	// Dashboard + 手动刷新
	r.GET("/api/dashboard", getDashboard(core))
	r.POST("/api/refresh", refresh(core))
}

// fail 按错误分类输出统一失败包体。
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, gin.H{"code": status, "msg": err.Error()})
}

// listProducts 返回当前商品快照。
func listProducts(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": core.Products()})
	}
}

// createProduct 创建商品（服务端确认后才进入本地集合）。
func createProduct(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name     string   `json:"name" binding:"required"`
			Price    *float64 `json:"price" binding:"required"`
			Quantity *int     `json:"quantity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		p, err := core.AddProduct(c.Request.Context(), model.ProductInput{
			Name:     req.Name,
			Price:    *req.Price,
			Quantity: *req.Quantity,
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}

// getProduct 回源查询单个商品。
func getProduct(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := core.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": p})
	}
}

// deleteProduct 删除商品。删除失败（含服务端非 1 响应）时本地集合不变。
func deleteProduct(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := core.DeleteProduct(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "deleted"})
	}
}

// listOrders 返回合并订单视图（远端在前、本地兜底在后）。
func listOrders(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": core.Orders()})
	}
}

// getOrder 回源查询远端订单。
func getOrder(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := core.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": o})
	}
}

// placeOrder 购买入口。
// 前置校验失败返回 400；校验通过后必然成功——要么 committed（远端落单），
// 要么 deferred（本地兜底订单已持久化），两种结果对调用方都是 success。
func placeOrder(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"product_id" binding:"required"`
			Quantity  int    `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		res, err := core.PlaceOrder(c.Request.Context(), req.ProductID, req.Quantity)
		if err != nil {
			if apperr.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{
					"code": 400,
					"msg":  err.Error(),
					"data": gin.H{"success": false, "message": err.Error()},
				})
				return
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{
			"success": true,
			"outcome": res.Outcome,
			"order":   res.Order,
		}})
	}
}

// setOrderStatus 迁移本地兜底订单状态；未命中或迁移不合法时 applied=false。
func setOrderStatus(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})
			return
		}
		applied, err := core.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{"applied": applied}})
	}
}

// refundOrder 退款；仅 completed 的本地订单会迁移到 refunded。
func refundOrder(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		refunded, err := core.Refund(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": gin.H{"refunded": refunded}})
	}
}

// getDashboard 每次请求即时重算聚合指标。
func getDashboard(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := dashboard.Compute(core.Products(), core.Orders())
		c.JSON(http.StatusOK, gin.H{"code": 0, "data": stats})
	}
}

// refresh 手动触发一次全量刷新。
func refresh(core *inventory.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := core.Refresh(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "refreshed"})
	}
}
