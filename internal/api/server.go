package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/stackify/marketplace-engine/internal/entity"
	"github.com/stackify/marketplace-engine/internal/marketplace"
	"github.com/stackify/marketplace-engine/internal/repository"
	"go.uber.org/zap"
)

// principalHeader carries the caller identity. Authentication is the host
// submission layer's job; the API trusts whatever principal it hands over.
const principalHeader = "X-Principal"

type Server struct {
	engine    marketplace.Engine
	tradeRepo repository.TradeRepository
	actions   repository.ActionRepository
}

func NewServer(engine marketplace.Engine, tradeRepo repository.TradeRepository, actions repository.ActionRepository) Server {
	return Server{engine, tradeRepo, actions}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/fee", s.handleGetFee).Methods("GET")
	r.HandleFunc("/fee", s.handleSetFee).Methods("PUT")

	r.HandleFunc("/listings", s.handleListNft).Methods("POST")
	r.HandleFunc("/listings/{collection}/{assetId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{collection}/{assetId}", s.handleCancelListing).Methods("DELETE")

	r.HandleFunc("/offers", s.handleMakeOffer).Methods("POST")
	r.HandleFunc("/offers/{collection}/{assetId}", s.handleWithdrawOffer).Methods("DELETE")

	r.HandleFunc("/settlements/accept", s.handleAcceptOffer).Methods("POST")
	r.HandleFunc("/settlements/buy", s.handleBuyNow).Methods("POST")

	r.HandleFunc("/assets/{collection}/{assetId}/trades", s.handleGetTrades).Methods("GET")
	r.HandleFunc("/assets/{collection}/{assetId}/actions", s.handleGetActions).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s Server) handleGetFee(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]uint64{"fee": s.engine.GetFee()})
}

func (s Server) handleSetFee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fee uint64 `json:"fee"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.engine.SetFee(caller(r), req.Fee); err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]uint64{"fee": s.engine.GetFee()})
}

func (s Server) handleListNft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collection entity.Principal `json:"collection"`
		AssetId    uint64           `json:"assetId"`
		Price      uint64           `json:"price"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := s.engine.ListNft(caller(r), req.Collection, req.AssetId, req.Price)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, listing)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	collection, assetId, err := assetVars(r)
	if err != nil {
		http.Error(w, "invalid parameters", http.StatusBadRequest)
		return
	}

	listing, found := s.engine.GetListing(collection, assetId)
	if !found {
		http.Error(w, "listing not found", http.StatusNotFound)
		return
	}

	writeJson(w, http.StatusOK, listing)
}

func (s Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	collection, assetId, err := assetVars(r)
	if err != nil {
		http.Error(w, "invalid parameters", http.StatusBadRequest)
		return
	}

	if err := s.engine.CancelListing(caller(r), collection, assetId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleMakeOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collection entity.Principal `json:"collection"`
		AssetId    uint64           `json:"assetId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	offer, err := s.engine.MakeOffer(caller(r), req.Collection, req.AssetId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, offer)
}

func (s Server) handleWithdrawOffer(w http.ResponseWriter, r *http.Request) {
	collection, assetId, err := assetVars(r)
	if err != nil {
		http.Error(w, "invalid parameters", http.StatusBadRequest)
		return
	}

	if err := s.engine.WithdrawOffer(caller(r), collection, assetId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collection entity.Principal `json:"collection"`
		AssetId    uint64           `json:"assetId"`
		Buyer      entity.Principal `json:"buyer"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	trade, err := s.engine.AcceptOffer(caller(r), req.Collection, req.AssetId, req.Buyer)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, trade)
}

func (s Server) handleBuyNow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Collection entity.Principal `json:"collection"`
		AssetId    uint64           `json:"assetId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	trade, err := s.engine.BuyNow(caller(r), req.Collection, req.AssetId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJson(w, http.StatusOK, trade)
}

func (s Server) handleGetTrades(w http.ResponseWriter, r *http.Request) {
	collection, assetId, err := assetVars(r)
	if err != nil {
		http.Error(w, "invalid parameters", http.StatusBadRequest)
		return
	}

	trades, err := s.tradeRepo.GetTradesByAsset(collection, assetId)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Trades not available")
		http.Error(w, "trades not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, trades)
}

func (s Server) handleGetActions(w http.ResponseWriter, r *http.Request) {
	collection, assetId, err := assetVars(r)
	if err != nil {
		http.Error(w, "invalid parameters", http.StatusBadRequest)
		return
	}

	actions, err := s.actions.GetActionsByAsset(collection, assetId)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("Actions not available")
		http.Error(w, "actions not available", http.StatusInternalServerError)
		return
	}

	writeJson(w, http.StatusOK, actions)
}

func caller(r *http.Request) entity.Principal {
	return entity.Principal(r.Header.Get(principalHeader))
}

func assetVars(r *http.Request) (entity.Principal, uint64, error) {
	collection, ok := mux.Vars(r)["collection"]
	if !ok {
		return "", 0, errors.New("invalid parameters")
	}

	assetId, err := strconv.ParseUint(mux.Vars(r)["assetId"], 10, 64)
	if err != nil {
		return "", 0, err
	}

	return entity.Principal(collection), assetId, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var mpErr marketplace.Error
	if !errors.As(err, &mpErr) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, statusFor(mpErr), map[string]interface{}{
		"code":    mpErr.Code(),
		"message": mpErr.Error(),
	})
}

func statusFor(err marketplace.Error) int {
	switch err {
	case marketplace.ErrOwnerOnly, marketplace.ErrNotTokenOwner, marketplace.ErrNotSeller:
		return http.StatusForbidden
	case marketplace.ErrListingNotFound, marketplace.ErrOfferNotFound:
		return http.StatusNotFound
	case marketplace.ErrAlreadyListed, marketplace.ErrDuplicateOffer, marketplace.ErrOfferToSelf:
		return http.StatusConflict
	case marketplace.ErrPriceZero:
		return http.StatusBadRequest
	case marketplace.ErrPaymentFailed:
		return http.StatusPaymentRequired
	}

	return http.StatusInternalServerError
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
