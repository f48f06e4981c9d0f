package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/pkg/httputil"
)

// Settings are the preferences of the owner.
type Settings struct {
	DefaultCurrency string `json:"defaultCurrency" example:"EUR"` // Used for new transactions and budgets without a currency and for aggregates
}

// SettingsEditable contains the settings a client can change.
type SettingsEditable struct {
	DefaultCurrency *string `json:"defaultCurrency" example:"EUR"`
}

type SettingsResponse struct {
	Data Settings `json:"data"`
}

// RegisterSettingRoutes registers the routes for settings with
// the RouterGroup that is passed.
func (co Controller) RegisterSettingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSettings)
	r.GET("", co.GetSettings)
	r.PATCH("", co.UpdateSettings)
}

// OptionsSettings returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Settings
//	@Success		204
//	@Router			/v1/settings [options]
func (co Controller) OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

func (co Controller) settings(c *gin.Context) Settings {
	return Settings{
		DefaultCurrency: co.Settings.DefaultCurrency(c.Request.Context(), httputil.Owner(c)),
	}
}

// GetSettings returns the settings of the owner
//
//	@Summary		Get settings
//	@Description	Returns the settings of the owner
//	@Tags			Settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Security		BearerAuth
//	@Router			/v1/settings [get]
func (co Controller) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsResponse{Data: co.settings(c)})
}

// UpdateSettings changes the settings of the owner
//
//	@Summary		Update settings
//	@Description	Updates the settings of the owner. Only values to be updated need to be specified.
//	@Tags			Settings
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	SettingsResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			settings	body		SettingsEditable	true	"Settings"
//	@Security		BearerAuth
//	@Router			/v1/settings [patch]
func (co Controller) UpdateSettings(c *gin.Context) {
	var editable SettingsEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if editable.DefaultCurrency != nil {
		err := co.Settings.SetDefaultCurrency(c.Request.Context(), httputil.Owner(c), *editable.DefaultCurrency)
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: co.settings(c)})
}
