package http

import (
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/nowboard"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/response"
)

type NowBoardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Weekly(w http.ResponseWriter, r *http.Request)
}

type nowBoardHandlerImpl struct {
	nowBoardService nowboard.NowBoardService
}

func NewNowBoardHandler(nowBoardService nowboard.NowBoardService) NowBoardHandler {
	return &nowBoardHandlerImpl{
		nowBoardService: nowBoardService,
	}
}

// Get implements NowBoardHandler.
func (h *nowBoardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	req := nowboard.NowBoardRequest{
		CompanyID:    c.CompanyID,
		Date:         r.URL.Query().Get("date"),
		DepartmentID: optionalQuery(r, "department_id"),
	}

	result, err := h.nowBoardService.GetNowBoard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Weekly implements NowBoardHandler.
func (h *nowBoardHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	req := nowboard.WeeklySummaryRequest{
		CompanyID:    c.CompanyID,
		WeekStart:    r.URL.Query().Get("week_start"),
		DepartmentID: optionalQuery(r, "department_id"),
	}

	result, err := h.nowBoardService.GetWeeklySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
