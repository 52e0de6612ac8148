package launcher

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/gamestate"
	"github.com/rony4d/go-honey-hive/inter"
)

// statsResponse is the /stats payload.
type statsResponse struct {
	Version      uint64  `json:"version"`
	Connected    bool    `json:"connected"`
	Player       string  `json:"player"`
	Block        uint64  `json:"block"`
	Initialized  bool    `json:"initialized"`
	HiveLevel    uint32  `json:"hive_level"`
	Bees         uint64  `json:"bees"`
	HoneyPower   uint64  `json:"honey_power"`
	PlayerShare  float64 `json:"player_share"`
	EmissionRate float64 `json:"emission_rate"`
	HourlyRate   float64 `json:"hourly_rate"`
	PendingHoney string  `json:"pending_honey"`
	HoneyBalance string  `json:"honey_balance"`
	NextHalving  uint64  `json:"next_halving_block"`
}

// newRouter serves metrics, a liveness check and the latest stats.
func newRouter(store *gamestate.Store, calc *economy.Calculator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		snap := store.Current()
		st := calc.Compute(snap)
		resp := statsResponse{
			Version:      store.Version(),
			Connected:    store.Connected(),
			Player:       snap.Player.Address.Hex(),
			Block:        uint64(snap.Network.CurrentBlock),
			Initialized:  snap.Player.Initialized,
			HiveLevel:    snap.Player.HiveLevel,
			Bees:         snap.Player.TotalBeesOwned(),
			HoneyPower:   snap.Player.HoneyPower,
			PlayerShare:  st.PlayerShare,
			EmissionRate: st.EmissionRate,
			HourlyRate:   st.HourlyRate,
			PendingHoney: inter.FormatAmount(snap.Player.PendingHoney, 4),
			HoneyBalance: inter.FormatAmount(snap.Player.HoneyBalance, 4),
			NextHalving:  uint64(st.Halving.NextHalvingBlock),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return r
}
