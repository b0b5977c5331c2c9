package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/views"
)

const msgNothingSaved = "No se pudieron guardar los detalles"

// handleListEvents groups a product's readings into control events and
// returns them as a table page
// GET /api/Products/:id/events
func (s *Server) handleListEvents(c *gin.Context) {
	q, err := parseTableQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	productID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	details, err := s.backend.ListProductDetails(ctx, productID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	dropped := 0
	grouper := control.Grouper{
		SlotCount: s.cfg.SlotCount,
		OnDrop: func(rec control.Record, reason control.DropReason) {
			dropped++
			s.logger.Debug("dropped reading",
				zap.String("product_id", rec.SubjectID),
				zap.String("fecha", rec.Timestamp),
				zap.String("tipo_control", rec.Tag),
				zap.Stringer("reason", reason),
			)
		},
	}
	events := grouper.Group(model.Records(details))

	tbl, err := views.Events(events, s.cfg.SlotCount)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := views.Apply(tbl, q); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tbl.View(),
		"meta": gin.H{
			"productId": productID,
			"events":    len(events),
			"records":   len(details),
			"dropped":   dropped,
			"slots":     s.cfg.SlotCount,
		},
	})
}

type captureRequest struct {
	Fill  []*float64 `json:"pesosFill"`
	Net   []*float64 `json:"pesosNeto"`
	Fecha string     `json:"fecha"`
}

// handleCaptureEvent stores one control event entered by an operator
// POST /api/Products/:id/events
func (s *Server) handleCaptureEvent(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	at := s.now()
	if req.Fecha != "" {
		t, err := control.ParseTimestamp(req.Fecha)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fecha"})
			return
		}
		at = t
	}

	productID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !product.Active {
		s.respondError(c, fmt.Errorf("%w: producto %s", model.ErrInactive, product.Producto))
		return
	}

	records, err := control.Capture(productID, at, req.Fill, req.Net, s.cfg.SlotCount)
	if err != nil {
		s.respondError(c, err)
		return
	}

	res, err := s.backend.CreateProductDetails(ctx, model.DetailInputs(records))
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("save control event", zap.String("product_id", productID), zap.Error(err))
		}
		c.JSON(status, gin.H{
			"saved":  res.Saved,
			"errors": res.Errors,
			"error":  firstNonEmpty(res.LastError, err.Error(), msgNothingSaved),
		})
		return
	}

	message := strconv.Itoa(res.Saved) + " detalle(s) guardado(s) exitosamente"
	if res.Errors > 0 {
		message += " (" + strconv.Itoa(res.Errors) + " errores)"
	}
	c.JSON(http.StatusCreated, gin.H{
		"saved":   res.Saved,
		"errors":  res.Errors,
		"message": message,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
