package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"socialbid/internal/domain"
	"socialbid/internal/service"
)

type createAuctionRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Images       []string  `json:"images"`
	StartingBid  float64   `json:"starting_bid"`
	ReservePrice *float64  `json:"reserve_price"`
	Category     string    `json:"category"`
	Condition    string    `json:"condition"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
}

type placeBidRequest struct {
	Amount float64 `json:"amount"`
}

type toggleWatchRequest struct {
	Watch bool `json:"watch"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// auctionFilterFromQuery decodes the optional, conjunctive listing filters
// from the query string.
func auctionFilterFromQuery(r *http.Request) domain.AuctionFilter {
	q := r.URL.Query()
	var f domain.AuctionFilter

	if v := q.Get("category"); v != "" {
		f.Category = &v
	}
	if v := q.Get("status"); v != "" {
		status := domain.AuctionStatus(v)
		f.Status = &status
	}
	if v := q.Get("featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Featured = &b
		}
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	f.Search = q.Get("search")
	f.Sort = domain.AuctionSort(q.Get("sort"))
	return f
}

func handleListAuctions(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := auctionSvc.List(r.Context(), auctionFilterFromQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func handleGetAuction(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt64(r, "auctionID")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid auction id"})
			return
		}
		detail, err := auctionSvc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func handleCreateAuction(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAuctionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		auction, err := auctionSvc.Create(r.Context(), CurrentUser(r), service.CreateAuctionInput{
			Title:        req.Title,
			Description:  req.Description,
			Images:       req.Images,
			StartingBid:  req.StartingBid,
			ReservePrice: req.ReservePrice,
			Category:     req.Category,
			Condition:    req.Condition,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       domain.AuctionStatus(req.Status),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, auction)
	}
}

func handlePlaceBid(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt64(r, "auctionID")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid auction id"})
			return
		}
		var req placeBidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		bid, err := auctionSvc.PlaceBid(r.Context(), CurrentUser(r), id, req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, bid)
	}
}

func handleToggleWatch(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt64(r, "auctionID")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid auction id"})
			return
		}
		var req toggleWatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		count, err := auctionSvc.ToggleWatch(r.Context(), CurrentUser(r), id, req.Watch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"watch_count": count})
	}
}

func handleSetAuctionStatus(auctionSvc *service.AuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlParamInt64(r, "auctionID")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid auction id"})
			return
		}
		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		auction, err := auctionSvc.SetStatus(r.Context(), CurrentUser(r), id, domain.AuctionStatus(req.Status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, auction)
	}
}

func urlParamInt64(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
