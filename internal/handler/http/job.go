package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JobHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.Service
	now        func() time.Time
}

func NewJobHandler(jobService job.Service) JobHandler {
	return &jobHandlerImpl{jobService: jobService, now: time.Now}
}

// Trigger runs the named job synchronously and answers with its summary:
// 200 when clean, 207 when some companies or employees failed, 500 when fatal.
func (h *jobHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	summary, err := h.jobService.Trigger(r.Context(), chi.URLParam(r, "job"), h.now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Job completed"
	switch summary.StatusCode() {
	case http.StatusMultiStatus:
		message = "Job completed with errors"
	case http.StatusInternalServerError:
		message = "Job failed"
	}
	response.WithStatus(w, summary.StatusCode(), message, summary)
}

func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string][]string{"jobs": h.jobService.Enabled()})
}
