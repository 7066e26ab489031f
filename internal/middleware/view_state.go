package middleware

import (
	"log"

	"github.com/BharadwajDivyanshu/Task-Manager/internal/constants"
	apierrors "github.com/BharadwajDivyanshu/Task-Manager/internal/errors"
	"github.com/BharadwajDivyanshu/Task-Manager/internal/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ViewState is the search term and status filter of a task list
type ViewState struct {
	Search string
	Status models.StatusFilter
}

// RememberViewState resolves the view state of a list request. Query
// parameters that are present replace the values kept in the session;
// absent ones fall back to the session, then to an unfiltered view.
func RememberViewState() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		state := ViewState{Status: models.StatusAll}

		if search, ok := session.Get(constants.SessionKeySearch).(string); ok {
			state.Search = search
		}
		if status, ok := session.Get(constants.SessionKeyStatus).(string); ok {
			if parsed, err := models.ParseStatusFilter(status); err == nil {
				state.Status = parsed
			}
		}

		changed := false
		if search, ok := c.GetQuery("search"); ok {
			state.Search = search
			changed = true
		}
		if status, ok := c.GetQuery("status"); ok {
			parsed, err := models.ParseStatusFilter(status)
			if err != nil {
				apierrors.InvalidFormat(c, err.Error())
				return
			}
			state.Status = parsed
			changed = true
		}

		if changed {
			session.Set(constants.SessionKeySearch, state.Search)
			session.Set(constants.SessionKeyStatus, string(state.Status))
			if err := session.Save(); err != nil {
				log.Printf("Failed to save view state: %v", err)
			}
		}

		c.Set(constants.ContextKeyViewState, state)
		c.Next()
	}
}

// GetViewState retrieves the view state set by RememberViewState
func GetViewState(c *gin.Context) ViewState {
	if value, exists := c.Get(constants.ContextKeyViewState); exists {
		if state, ok := value.(ViewState); ok {
			return state
		}
	}
	return ViewState{Status: models.StatusAll}
}
