package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/models"
	"rental_admin/internal/screens"
)

var vehicleResource = resource[models.Vehicle]{
	screen: screens.VehicleScreen,
	label:  "Vehicle",
	list: func(ctx context.Context, api *apiclient.Client) ([]models.Vehicle, error) {
		return api.ListVehicles(ctx)
	},
	detail: func(ctx context.Context, api *apiclient.Client, id string) (models.Vehicle, error) {
		return api.GetVehicle(ctx, id)
	},
	remove: func(ctx context.Context, api *apiclient.Client, id string) error {
		return api.DeleteVehicle(ctx, id)
	},
}

// vehicleRequired are the form fields a new vehicle must carry.
var vehicleRequired = []string{"carName", "model", "vehicleNumber", "pricePerHour", "pricePerDay"}

// multipartForm copies the request's multipart fields and the named file
// parts into an upstream form. The returned func closes the opened files.
func multipartForm(c *gin.Context, fileFields ...string) (apiclient.Form, func(), error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return apiclient.Form{}, func() {}, fmt.Errorf("invalid multipart form: %w", err)
	}
	form := apiclient.Form{Fields: map[string][]string{}}
	for key, values := range mf.Value {
		form.Fields[key] = values
	}

	var closers []io.Closer
	cleanup := func() {
		for _, cl := range closers {
			cl.Close()
		}
	}
	for _, field := range fileFields {
		for _, fh := range mf.File[field] {
			f, err := fh.Open()
			if err != nil {
				cleanup()
				return apiclient.Form{}, func() {}, fmt.Errorf("opening %s: %w", fh.Filename, err)
			}
			closers = append(closers, f)
			form.Files = append(form.Files, apiclient.FormFile{Field: field, Filename: fh.Filename, Content: f})
		}
	}
	return form, cleanup, nil
}

func missingFields(form apiclient.Form, required []string) []string {
	var missing []string
	for _, key := range required {
		values := form.Fields[key]
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func (h *Handler) ListVehicles(c *gin.Context) { serveList(h, c, vehicleResource) }
func (h *Handler) ExportVehicles(c *gin.Context) { serveExport(h, c, vehicleResource) }
func (h *Handler) GetVehicle(c *gin.Context) { serveDetail(h, c, vehicleResource) }
func (h *Handler) DeleteVehicle(c *gin.Context) { serveDelete(h, c, vehicleResource) }

// CreateVehicle forwards the vehicle form, including carImage and carDocs
// uploads, and refreshes the list.
func (h *Handler) CreateVehicle(c *gin.Context) {
	form, cleanup, err := multipartForm(c, "carImage", "carDocs")
	defer cleanup()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if missing := missingFields(form, vehicleRequired); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	if err := h.client(c).AddVehicle(c.Request.Context(), form); err != nil {
		respondError(c, err, "Failed to add vehicle")
		return
	}

	v := vehicleResource.view(h, c)
	if err := vehicleResource.refetch(h, c, v); err != nil {
		logrus.WithError(err).Warn("Vehicle added but list refresh failed")
	}
	h.publish(c, screens.Vehicles, events.ActionCreated, "")
	c.JSON(http.StatusCreated, gin.H{"message": "Vehicle added successfully"})
}

// UpdateVehicle forwards the edit form. New files replace the stored ones
// upstream; omitted file fields keep them.
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	form, cleanup, err := multipartForm(c, "carImage", "carDocs")
	defer cleanup()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.client(c).UpdateVehicle(c.Request.Context(), id, form); err != nil {
		respondError(c, err, "Failed to update vehicle")
		return
	}

	v := vehicleResource.view(h, c)
	if err := vehicleResource.refetch(h, c, v); err != nil {
		respondError(c, err, "Vehicle updated but the list could not be refreshed")
		return
	}
	h.publish(c, screens.Vehicles, events.ActionUpdated, id)
	respondRow(c, vehicleResource, v, id, "Vehicle updated successfully")
}
