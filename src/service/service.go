package service

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/mosaicnetworks/hashgraph-sdk/src/ledger"
	"github.com/mosaicnetworks/hashgraph-sdk/src/metrics"
	"github.com/mosaicnetworks/hashgraph-sdk/src/mocknet"
	"github.com/sirupsen/logrus"
)

// Service exposes a simulated network over HTTP: the metrics registry plus
// read-only views of the nodes and the shared ledger.
type Service struct {
	sync.Mutex

	bindAddress string
	network     *mocknet.Network
	mux         *http.ServeMux
	server      *http.Server
	logger      *logrus.Entry
}

// NodeStats ...
type NodeStats struct {
	Account  string `json:"account"`
	Address  string `json:"address"`
	Received int    `json:"received"`
}

// Balance ...
type Balance struct {
	Account  string `json:"account"`
	Tinybars int64  `json:"tinybars"`
	Hbars    string `json:"hbars"`
}

// Receipt ...
type Receipt struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	AccountID     string `json:"account_id,omitempty"`
	TokenID       string `json:"token_id,omitempty"`
	ContractID    string `json:"contract_id,omitempty"`
}

// NewService ...
func NewService(bindAddress string, network *mocknet.Network, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		network:     network,
		mux:         http.NewServeMux(),
		logger:      logger.WithField("prefix", "service"),
	}

	service.registerHandlers()

	return &service
}

func (s *Service) registerHandlers() {
	s.logger.Debug("Registering mocknet API handlers")
	s.mux.Handle("/metrics", metrics.Handler())
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/balance/", s.makeHandler(s.GetBalance))
	s.mux.HandleFunc("/receipt/", s.makeHandler(s.GetReceipt))
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the handler serving every route, for embedding in another
// server.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call that returns
// http.ErrServerClosed after Shutdown.
func (s *Service) Serve() error {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving mocknet API")

	s.Lock()
	s.server = &http.Server{Addr: s.bindAddress, Handler: s.mux}
	server := s.server
	s.Unlock()

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error(err)
	}
	return err
}

// Close stops a server started by Serve.
func (s *Service) Close() error {
	s.Lock()
	defer s.Unlock()
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := []NodeStats{}
	for _, n := range s.network.Nodes() {
		stats = append(stats, NodeStats{
			Account:  n.ID().String(),
			Address:  n.Addr(),
			Received: n.Received(),
		})
	}

	writeJSON(w, stats)
}

// GetBalance ...
func (s *Service) GetBalance(w http.ResponseWriter, r *http.Request) {
	param := strings.TrimPrefix(r.URL.Path, "/balance/")

	id, err := ledger.AccountIDFromString(param)
	if err != nil {
		s.logger.WithError(err).Errorf("Parsing account parameter %s", param)

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	amount, ok := s.network.Ledger().Balance(id)
	if !ok {
		http.Error(w, "unknown account "+id.String(), http.StatusNotFound)

		return
	}

	writeJSON(w, Balance{
		Account:  id.String(),
		Tinybars: amount.Tinybars(),
		Hbars:    amount.String(),
	})
}

// GetReceipt ...
func (s *Service) GetReceipt(w http.ResponseWriter, r *http.Request) {
	param := strings.TrimPrefix(r.URL.Path, "/receipt/")

	id, err := ledger.TransactionIDFromString(param)
	if err != nil {
		s.logger.WithError(err).Errorf("Parsing transaction id parameter %s", param)

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	receipt, ok := s.network.Ledger().Receipt(id)
	if !ok {
		http.Error(w, "unknown transaction "+id.String(), http.StatusNotFound)

		return
	}

	res := Receipt{
		TransactionID: id.String(),
		Status:        receipt.Status.String(),
	}
	if receipt.AccountID != nil {
		res.AccountID = receipt.AccountID.String()
	}
	if receipt.TokenID != nil {
		res.TokenID = receipt.TokenID.String()
	}
	if receipt.ContractID != nil {
		res.ContractID = receipt.ContractID.String()
	}

	writeJSON(w, res)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(v)
}
