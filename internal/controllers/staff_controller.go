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

var staffResource = resource[models.Staff]{
	screen: screens.StaffScreen,
	label:  "Staff",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.Staff, error) {
		return api.ListStaff(ctx)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteStaff(ctx, id)
	},
}

type staffInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Mobile       string `json:"mobile" binding:"required"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage"`
	Role         string `json:"role" binding:"required,oneof=admin manager staff"`
	Status       string `json:"status" binding:"required,oneof=active inactive"`
}

func (in staffInput) upstream() apiclient.StaffInput {
	return apiclient.StaffInput{
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		Address:      in.Address,
		ProfileImage: in.ProfileImage,
		Role:         in.Role,
		Status:       in.Status,
		CreatedBy:    "admin",
	}
}

func (in staffInput) apply(s models.Staff) models.Staff {
	s.Name = in.Name
	s.Email = in.Email
	s.Mobile = in.Mobile
	s.Address = in.Address
	s.ProfileImage = in.ProfileImage
	s.Role = in.Role
	s.Status = in.Status
	return s
}

func (h *Handler) ListStaff(c *gin.Context) { serveList(h, c, staffResource) }
func (h *Handler) ExportStaff(c *gin.Context) { serveExport(h, c, staffResource) }
func (h *Handler) GetStaff(c *gin.Context) { serveDetail(h, c, staffResource) }
func (h *Handler) DeleteStaff(c *gin.Context) { serveDelete(h, c, staffResource) }

func (h *Handler) CreateStaff(c *gin.Context) {
	var input staffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff input: " + err.Error()})
		return
	}

	if err := h.client(c).AddStaff(c.Request.Context(), input.upstream()); err != nil {
		respondError(c, err, "Failed to add staff")
		return
	}

	v := staffResource.view(h, c)
	if err := staffResource.refetch(h, c, v); err != nil {
		logrus.WithError(err).Warn("Staff added but list refresh failed")
	}
	h.publish(c, screens.Staff, events.ActionCreated, "")
	c.JSON(http.StatusCreated, gin.H{"message": "Staff added successfully"})
}

// UpdateStaff saves the edit form and refreshes the list. If the refresh
// fails the edited row is patched in place instead.
func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	var input staffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff input: " + err.Error()})
		return
	}

	if err := h.client(c).UpdateStaff(c.Request.Context(), id, input.upstream()); err != nil {
		respondError(c, err, "Failed to update staff")
		return
	}

	v := staffResource.view(h, c)
	if err := staffResource.refetch(h, c, v); err != nil {
		logrus.WithError(err).WithField("staff_id", id).Warn("Staff list refresh failed, patching row locally")
		v.Patch(staffResource.screen.Matches(id), input.apply)
	}
	h.publish(c, screens.Staff, events.ActionUpdated, id)
	respondRow(c, staffResource, v, id, "Staff updated successfully")
}
