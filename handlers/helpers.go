package handlers

import (
	"net/http"
	"strconv"

	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

// currentSession returns the authenticated session or aborts with 401.
func currentSession(c *gin.Context) (utils.Session, bool) {
	s, ok := utils.SessionFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
	}
	return s, ok
}

// bindJSON decodes and validates the body, aborting with 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter. Missing or malformed values yield 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
