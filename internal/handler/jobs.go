package handler

import (
	"context"
	"net/http"

	"trazabilidad/internal/apierror"
	"trazabilidad/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// dlqQueues maps the public queue names onto their Redis lists.
var dlqQueues = map[string]string{
	"etiquetas": worker.QueueEtiquetas,
	"email":     worker.QueueEmail,
}

type JobsHandler struct{ rdb *redis.Client }

func NewJobsHandler(rdb *redis.Client) *JobsHandler { return &JobsHandler{rdb: rdb} }

type dlqQuery struct {
	Limite int64 `form:"limite" validate:"omitempty,min=1,max=100"`
}

// DLQ godoc
// @Summary      Inspeccionar trabajos fallidos
// @Description  Devuelve los trabajos más recientes que agotaron sus reintentos, sin retirarlos de la cola.
// @Tags         jobs
// @Produce      json
// @Param        cola   path  string true  "etiquetas | email"
// @Param        limite query int    false "Máximo de entradas (1-100, por defecto 20)"
// @Success      200 {array}  worker.DLQEntry
// @Failure      404 {object} apierror.APIError
// @Router       /v1/jobs/dlq/{cola} [get]
func (h *JobsHandler) DLQ(c *gin.Context) {
	queue, ok := dlqQueues[c.Param("cola")]
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Cola desconocida"))
		return
	}
	var q dlqQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Limite == 0 {
		q.Limite = 20
	}
	entries, err := worker.PeekDLQ(c.Request.Context(), h.rdb, queue, q.Limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// dlqDepths reports how many parked jobs each queue holds.
func dlqDepths(ctx context.Context, rdb *redis.Client) (map[string]int64, error) {
	depths := make(map[string]int64, len(dlqQueues))
	for name, queue := range dlqQueues {
		n, err := worker.DLQLength(ctx, rdb, queue)
		if err != nil {
			return nil, err
		}
		depths[name] = n
	}
	return depths, nil
}
