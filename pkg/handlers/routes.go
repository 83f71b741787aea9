package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Setup registers the portal routes on the given router.
func Setup(r gin.IRouter, h *Handlers) {
	r.GET("/healthz", h.Health)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
	r.GET("/login", h.LoginPage)
	r.GET("/signup", h.SignupPage)

	// NativeSubmit trails each submit handler and only runs when the
	// submit was not prevented.
	r.POST("/login", h.SubmitLogin, NativeSubmit)
	r.POST("/signup", h.SubmitSignup, NativeSubmit)
}
