package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/models"
	"rental_admin/internal/screens"
)

var userResource = resource[models.User]{
	screen: screens.UserScreen,
	label:  "User",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.User, error) {
		return api.ListUsers(ctx)
	},
	detail: func(ctx context.Context, api *apiclient.Client, id string) (models.User, error) {
		return api.GetUser(ctx, id)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteUser(ctx, id)
	},
	enrich: true,
}

type userInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Mobile        string `json:"mobile" binding:"required"`
	ProfileImage  string `json:"profileImage"`
	AadharStatus  string `json:"aadharStatus" binding:"omitempty,oneof=pending approved rejected"`
	LicenseStatus string `json:"licenseStatus" binding:"omitempty,oneof=pending approved rejected"`
}

func (in userInput) changesDocuments() bool {
	return in.AadharStatus != "" || in.LicenseStatus != ""
}

// documents merges the requested statuses into current without touching
// the rest of each document.
func (in userInput) documents(current *models.Documents) *models.Documents {
	if !in.changesDocuments() {
		return current
	}
	docs := models.Documents{}
	if current != nil {
		docs = *current
	}
	if in.AadharStatus != "" {
		d := models.Document{}
		if docs.AadharCard != nil {
			d = *docs.AadharCard
		}
		d.Status = in.AadharStatus
		docs.AadharCard = &d
	}
	if in.LicenseStatus != "" {
		d := models.Document{}
		if docs.DrivingLicense != nil {
			d = *docs.DrivingLicense
		}
		d.Status = in.LicenseStatus
		docs.DrivingLicense = &d
	}
	return &docs
}

func (h *Handler) ListUsers(c *gin.Context) { serveList(h, c, userResource) }
func (h *Handler) ExportUsers(c *gin.Context) { serveExport(h, c, userResource) }
func (h *Handler) GetUser(c *gin.Context) { serveDetail(h, c, userResource) }
func (h *Handler) DeleteUser(c *gin.Context) { serveDelete(h, c, userResource) }

// UpdateUser saves the edit form and patches the listed row in place.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user input: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	api := h.client(c)
	v := userResource.view(h, c)

	// List rows carry no documents, so a status change starts from the
	// detail record to keep each document's url.
	var docs *models.Documents
	if input.changesDocuments() {
		current, err := api.GetUser(ctx, id)
		if err != nil {
			respondError(c, err, "Failed to fetch user details")
			return
		}
		docs = input.documents(current.Documents)
	}

	update := apiclient.UserUpdate{
		Name:         input.Name,
		Email:        input.Email,
		Mobile:       input.Mobile,
		ProfileImage: input.ProfileImage,
		Documents:    docs,
	}
	if err := api.UpdateUser(ctx, id, update); err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	v.Patch(userResource.screen.Matches(id), func(u models.User) models.User {
		u.Name = input.Name
		u.Email = input.Email
		u.Mobile = input.Mobile
		if input.ProfileImage != "" {
			u.ProfileImage = input.ProfileImage
		}
		if docs != nil {
			u.Documents = docs
		}
		return u
	})
	h.publish(c, screens.Users, events.ActionUpdated, id)
	respondRow(c, userResource, v, id, "User updated successfully")
}
