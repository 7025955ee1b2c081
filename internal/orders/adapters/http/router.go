package ordershttp

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all order routes registered. Extra
// middleware must be passed here so it is installed before the routes.
func NewRouter(api OrderAPI, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)

	router.GET("/", api.Index)

	orders := router.Group("/orders")
	{
		orders.POST("", api.CreateOrder)
		orders.GET("", api.ListOrders)
		orders.GET("/:order_id", api.GetOrder)
		orders.PUT("/:order_id", api.UpdateOrder)
		orders.DELETE("/:order_id", api.DeleteOrder)

		orders.POST("/:order_id/items", api.AddItem)
		orders.GET("/:order_id/items", api.ListItems)
		orders.GET("/:order_id/items/:item_id", api.GetItem)
		orders.PUT("/:order_id/items/:item_id", api.UpdateItem)
		orders.DELETE("/:order_id/items/:item_id", api.DeleteItem)
	}

	return router
}
