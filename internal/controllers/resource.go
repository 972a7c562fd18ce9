package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"rental_admin/internal/apiclient"
	"rental_admin/internal/events"
	"rental_admin/internal/export"
	"rental_admin/internal/listing"
	"rental_admin/internal/middleware"
	"rental_admin/internal/screens"
)

// resource binds a screen to the rental API calls behind it.
type resource[T any] struct {
	screen screens.Screen[T]
	label  string
	list   func(context.Context, *apiclient.Client) ([]T, error)
	// detail is nil when the API has no single-record endpoint.
	detail func(context.Context, *apiclient.Client, string) (T, error)
	remove func(context.Context, *apiclient.Client, string) error
	// enrich fetches detail records before export.
	enrich bool
}

type listPayload struct {
	Items      []any             `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
	RawTotal   int               `json:"rawTotal"`
	Field      string            `json:"field,omitempty"`
	Query      string            `json:"query"`
	Sort       listing.SortState `json:"sort"`
	Controls   listing.Controls  `json:"controls"`
}

func (r resource[T]) view(h *Handler, c *gin.Context) *listing.View[T] {
	s, _ := middleware.CurrentSession(c)
	return listing.ViewFor(h.views, s.ID, r.screen.Name, r.screen.List)
}

// refetch replaces the session's list with a fresh copy from the API.
func (r resource[T]) refetch(h *Handler, c *gin.Context, v *listing.View[T]) error {
	items, err := r.list(c.Request.Context(), h.client(c))
	if err != nil {
		return err
	}
	v.SetItems(items)
	return nil
}

func (r resource[T]) payload(v *listing.View[T]) listPayload {
	snap := v.Snapshot()
	return listPayload{
		Items:      r.screen.Rows(snap.Items),
		Page:       snap.Page,
		PageSize:   snap.PageSize,
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		RawTotal:   snap.RawTotal,
		Field:      snap.Field,
		Query:      snap.Query,
		Sort:       snap.Sort,
		Controls:   snap.Controls,
	}
}

// serveList applies refresh, page, sort and search from the query string,
// in that order, and returns the current page.
func serveList[T any](h *Handler, c *gin.Context, r resource[T]) {
	v := r.view(h, c)

	if !v.Loaded() || cast.ToBool(c.Query("refresh")) {
		if err := r.refetch(h, c, v); err != nil {
			respondError(c, err, fmt.Sprintf("Failed to fetch %s", r.label))
			return
		}
	}

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		v.SetPage(page)
	}

	if key := c.Query("sort"); key != "" {
		if err := v.ToggleSort(key); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	field, hasField := c.GetQuery("field")
	query, hasQuery := c.GetQuery("q")
	if hasField || hasQuery {
		if !hasQuery {
			query = v.Snapshot().Query
		}
		if err := v.Search(field, query); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, r.payload(v))
}

// serveDetail returns one record, from the API when it has a detail
// endpoint and from the session's list otherwise.
func serveDetail[T any](h *Handler, c *gin.Context, r resource[T]) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	if r.detail == nil {
		item, found := r.view(h, c).Find(r.screen.Matches(id))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", r.label)})
			return
		}
		c.JSON(http.StatusOK, r.screen.Rows([]T{item})[0])
		return
	}
	item, err := r.detail(c.Request.Context(), h.client(c), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", r.label)})
			return
		}
		respondError(c, err, fmt.Sprintf("Failed to fetch %s details", r.label))
		return
	}
	c.JSON(http.StatusOK, r.screen.Rows([]T{item})[0])
}

// serveDelete removes a record upstream after explicit confirmation and
// drops exactly the matching rows from the session's list.
func serveDelete[T any](h *Handler, c *gin.Context, r resource[T]) {
	id, ok := objectIDParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	if err := r.remove(c.Request.Context(), h.client(c), id); err != nil {
		respondError(c, err, fmt.Sprintf("Failed to delete %s", r.label))
		return
	}
	removed := r.view(h, c).Remove(r.screen.Matches(id))
	logrus.WithFields(logrus.Fields{"screen": r.screen.Name, "id": id, "rows": removed}).Info("Record deleted")
	h.publish(c, r.screen.Name, events.ActionDeleted, id)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", r.label), "id": id})
}

// serveExport writes the session's full list (not just the visible page) as
// a workbook, enriching each record first when the screen asks for it.
func serveExport[T any](h *Handler, c *gin.Context, r resource[T]) {
	ctx := c.Request.Context()
	v := r.view(h, c)
	if !v.Loaded() {
		if err := r.refetch(h, c, v); err != nil {
			respondError(c, err, fmt.Sprintf("Failed to fetch %s", r.label))
			return
		}
	}
	items := v.Items()

	fallbacks := 0
	if r.enrich && r.detail != nil {
		api := h.client(c)
		var err error
		items, fallbacks, err = export.Enrich(ctx, items, h.exportLimit, func(ctx context.Context, item T) (T, error) {
			return r.detail(ctx, api, r.screen.Key(item))
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logrus.WithField("screen", r.screen.Name).Warn("Export cancelled by client")
				return
			}
			respondError(c, err, "Failed to prepare export")
			return
		}
	}

	data, err := r.screen.Sheet.Bytes(items)
	if err != nil {
		logrus.WithError(err).WithField("screen", r.screen.Name).Error("Failed to generate Excel file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file"})
		return
	}
	h.metrics.ObserveExport(r.screen.Name, len(items), fallbacks)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, r.screen.Sheet.File))
	c.Data(http.StatusOK, export.ContentType, data)
}

// respondRow answers with the record id from the refreshed list, or with
// only the id when the record is no longer listed.
func respondRow[T any](c *gin.Context, r resource[T], v *listing.View[T], id, msg string) {
	if item, ok := v.Find(r.screen.Matches(id)); ok {
		c.JSON(http.StatusOK, gin.H{"message": msg, "item": r.screen.Rows([]T{item})[0]})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "id": id})
}
