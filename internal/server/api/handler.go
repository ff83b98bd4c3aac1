package api

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/gorilla/mux"
)

type Handler struct {
	users   *services.UserService
	catalog *services.CatalogService
	carts   *services.CartService
	logger  logging.Logger
}

func NewHandler(us *services.UserService, cs *services.CatalogService, carts *services.CartService, l logging.Logger) *Handler {
	return &Handler{users: us, catalog: cs, carts: carts, logger: l}
}

// fail writes err as an API error. Server-side failures are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err)
	}
	respondWithError(w, status, msg)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Registration
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.User{ID: u.ID, Email: u.Email, Name: u.Name})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())

	u, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.User{ID: u.ID, Email: u.Email, Name: u.Name})
}

func queryInt(r *http.Request, key string) (int64, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := models.ProductQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   models.ProductSort(r.URL.Query().Get("sort")),
	}
	if q.Sort != "" && q.Sort != models.SortPriceAsc && q.Sort != models.SortPriceDesc {
		respondWithError(w, http.StatusBadRequest, "sort must be price_asc or price_desc")
		return
	}

	category, ok1 := queryInt(r, "category_id")
	page, ok2 := queryInt(r, "page")
	size, ok3 := queryInt(r, "page_size")
	if !ok1 || !ok2 || !ok3 {
		respondWithError(w, http.StatusBadRequest, "invalid query parameter")
		return
	}
	q.CategoryID, q.Page, q.PageSize = category, int(page), int(size)

	res, err := h.catalog.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func cartResponse(items []models.LineItem) models.CartEnvelope {
	total := models.TotalPrice(items)
	return models.CartEnvelope{Items: items, Total: &total}
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, items []models.LineItem, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cartResponse(items))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFrom(r.Context())
	items, err := h.carts.Get(r.Context(), userID)
	h.writeCart(w, r, items, err)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, _ := userIDFrom(r.Context())
	items, err := h.carts.Add(r.Context(), userID, req.ProductID, req.Quantity)
	h.writeCart(w, r, items, err)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req models.UpdateItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, _ := userIDFrom(r.Context())
	items, err := h.carts.Update(r.Context(), userID, itemID, req.Quantity)
	h.writeCart(w, r, items, err)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	userID, _ := userIDFrom(r.Context())
	items, err := h.carts.Remove(r.Context(), userID, itemID)
	h.writeCart(w, r, items, err)
}
