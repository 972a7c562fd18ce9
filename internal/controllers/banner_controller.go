package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/models"
	"rental_admin/internal/screens"
)

var bannerResource = resource[models.Banner]{
	screen: screens.BannerScreen,
	label:  "Banner",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.Banner, error) {
		return api.ListBanners(ctx)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteBanner(ctx, id)
	},
}

var notificationResource = resource[models.Notification]{
	screen: screens.NotificationScreen,
	label:  "Notification",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.Notification, error) {
		return api.ListNotifications(ctx)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteNotification(ctx, id)
	},
}

func (h *Handler) ListBanners(c *gin.Context) { serveList(h, c, bannerResource) }
func (h *Handler) DeleteBanner(c *gin.Context) { serveDelete(h, c, bannerResource) }

func (h *Handler) ListNotifications(c *gin.Context) { serveList(h, c, notificationResource) }
func (h *Handler) DeleteNotification(c *gin.Context) { serveDelete(h, c, notificationResource) }

// CreateBanner uploads a new banner. At least one image is required.
func (h *Handler) CreateBanner(c *gin.Context) {
	form, cleanup, err := multipartForm(c, "images")
	defer cleanup()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(form.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one image"})
		return
	}

	if err := h.client(c).CreateBanner(c.Request.Context(), form); err != nil {
		respondError(c, err, "Failed to upload banner")
		return
	}
	h.afterBannerChange(c, events.ActionCreated, "")
	c.JSON(http.StatusCreated, gin.H{"message": "Banner uploaded successfully"})
}

// UpdateBanner replaces a banner's images.
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	form, cleanup, err := multipartForm(c, "images")
	defer cleanup()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(form.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one image"})
		return
	}

	if err := h.client(c).UpdateBanner(c.Request.Context(), id, form); err != nil {
		respondError(c, err, "Failed to update banner")
		return
	}
	h.afterBannerChange(c, events.ActionUpdated, id)
	respondRow(c, bannerResource, bannerResource.view(h, c), id, "Banner updated successfully")
}

func (h *Handler) afterBannerChange(c *gin.Context, action, id string) {
	if err := bannerResource.refetch(h, c, bannerResource.view(h, c)); err != nil {
		logrus.WithError(err).Warn("Banner saved but list refresh failed")
	}
	h.publish(c, screens.Banners, action, id)
}
