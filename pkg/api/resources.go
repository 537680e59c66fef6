package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"zoo_management/pkg/casing"
	"zoo_management/pkg/resources"
	"zoo_management/pkg/store"
)

func (h *Handler) listResource(res *resources.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.store.List(c.Request.Context(), res)
		if err != nil {
			h.respondError(c, err, "Failed to fetch "+res.Path)
			return
		}
		c.JSON(http.StatusOK, casing.RowsToWire(rows))
	}
}

func (h *Handler) createResource(res *resources.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := res.NewPayload()
		if err := c.ShouldBindBodyWith(payload, binding.JSON); err != nil {
			h.respondError(c, bindError(err), "")
			return
		}

		row := res.InsertRow(payload, h.now())
		if err := h.store.Create(c.Request.Context(), res, row); err != nil {
			h.respondError(c, err, "Failed to add "+res.Noun)
			return
		}
		echoBody(c)
	}
}

func (h *Handler) updateResource(res *resources.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := res.NewPayload()
		if err := c.ShouldBindBodyWith(payload, binding.JSON); err != nil {
			h.respondError(c, bindError(err), "")
			return
		}

		if err := h.store.Update(c.Request.Context(), res, c.Param("id"), res.UpdateRow(payload)); err != nil {
			h.respondError(c, err, "Failed to update "+res.Noun)
			return
		}
		echoBody(c)
	}
}

func (h *Handler) deleteResource(res *resources.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.store.Delete(c.Request.Context(), res, c.Param("id")); err != nil {
			h.respondError(c, err, "Failed to delete "+res.Noun)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// createTicketSale records the sale, the visitor upsert and an optional
// event booking as one unit.
func (h *Handler) createTicketSale(res *resources.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload resources.TicketSalePayload
		if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
			h.respondError(c, bindError(err), "")
			return
		}

		sale := store.Sale{
			Row:      res.InsertRow(&payload, h.now()),
			Quantity: payload.Quantity,
		}
		if payload.EventID != nil {
			sale.EventID = *payload.EventID
		}
		if err := h.store.RecordSale(c.Request.Context(), sale); err != nil {
			h.respondError(c, err, "Failed to add "+res.Noun)
			return
		}
		echoBody(c)
	}
}

// echoBody answers with the request body exactly as the client sent it.
func echoBody(c *gin.Context) {
	body, ok := c.Get(gin.BodyBytesKey)
	raw, _ := body.([]byte)
	if !ok || len(raw) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
