package api

import "github.com/gin-gonic/gin"

// Routes registers the API on r. authenticate guards the array routes.
func Routes(r gin.IRouter, h *Handler, authenticate gin.HandlerFunc) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	protected := r.Group("/", authenticate)
	protected.POST("/bubble-sort", h.BubbleSort)
	protected.POST("/filter-even", h.FilterEven)
	protected.POST("/sum-elements", h.SumElements)
	protected.POST("/max-value", h.MaxValue)
	protected.POST("/binary-search", h.BinarySearch)
}
