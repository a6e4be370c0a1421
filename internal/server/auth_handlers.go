package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/ryyderbros/wellness_server/internal/model"
)

const stateCookie = "oauth_state"

// googleLogin starts the Google auth-code flow. Offline access plus the
// consent prompt make Google hand back a refresh token, which calendar calls
// need later.
func (s *Server) googleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 300, "/", "", false, true)

	url := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusFound, url)
}

// googleCallback exchanges the code, resolves the local user and redirects to
// the frontend with a fresh JWT.
func (s *Server) googleCallback(c *gin.Context) {
	failure := s.cfg.ClientURL + "/login?error=google_auth_failed"

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.Redirect(http.StatusFound, failure)
		return
	}

	token, err := s.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		s.logger.Warn("Google code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, failure)
		return
	}

	oauthService, err := googleoauth.NewService(c.Request.Context(),
		option.WithTokenSource(s.oauth.TokenSource(c.Request.Context(), token)))
	if err != nil {
		s.logger.Warn("Failed to build userinfo service", zap.Error(err))
		c.Redirect(http.StatusFound, failure)
		return
	}

	info, err := oauthService.Userinfo.Get().Do()
	if err != nil {
		s.logger.Warn("Failed to fetch google userinfo", zap.Error(err))
		c.Redirect(http.StatusFound, failure)
		return
	}

	user, err := s.userService.FindOrCreateGoogleUser(c.Request.Context(), model.GoogleProfile{
		GoogleID: info.Id,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
	})
	if err != nil {
		s.logger.Error("Failed to resolve google user", zap.Error(err))
		c.Redirect(http.StatusFound, failure)
		return
	}

	// Google only returns the refresh token on the consent round
	if token.RefreshToken != "" {
		if err := s.userService.SaveGoogleRefreshToken(c.Request.Context(), user.ID, token.RefreshToken); err != nil {
			s.logger.Warn("Failed to store refresh token",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	jwtToken, err := s.authManager.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		c.Redirect(http.StatusFound, failure)
		return
	}

	c.Redirect(http.StatusFound, s.cfg.ClientURL+"/bookings?token="+jwtToken)
}

func (s *Server) me(c *gin.Context) {
	identity := currentIdentity(c)
	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":    identity.UserID,
		"email": identity.Email,
		"name":  identity.Name,
		"role":  identity.Role,
	}})
}

// logout is a stateless acknowledgement, the JWT lives on the client.
func (s *Server) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out. Please delete JWT on client."})
}
