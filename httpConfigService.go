package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type apiHandler struct {
	rt *runtimeConfig
}

type displayStatus struct {
	Name       string `json:"name"`
	Digits     string `json:"digits"`
	DigitCount int    `json:"digitCount"`
	RefreshHz  int    `json:"refreshHz"`
	Brightness int    `json:"brightness"`
	SegAdjust  bool   `json:"segAdjust"`
}

type stringValue struct {
	Value string `json:"value"`
}

type intValue struct {
	Value int `json:"value"`
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("config service: %v", err)
	}
}

func (h *apiHandler) panelOr404(w http.ResponseWriter, r *http.Request) *panel {
	p := h.rt.findPanel(mux.Vars(r)["name"])
	if p == nil {
		http.Error(w, "no such display", http.StatusNotFound)
	}
	return p
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	out := make([]displayStatus, 0, len(h.rt.panels))
	for _, p := range h.rt.panels {
		out = append(out, displayStatus{
			Name:       p.disp.Name(),
			Digits:     p.disp.Text(),
			DigitCount: p.disp.DigitCount(),
			RefreshHz:  p.disp.RefreshHz(),
			Brightness: p.disp.Brightness(),
			SegAdjust:  p.disp.SegAdjust(),
		})
	}
	writeJSON(w, out)
}

func (h *apiHandler) apiDigits(w http.ResponseWriter, r *http.Request) {
	p := h.panelOr404(w, r)
	if p == nil {
		return
	}
	if r.Method == "PUT" {
		var v stringValue
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.disp.SetText(v.Value)
	}
	writeJSON(w, stringValue{Value: p.disp.Text()})
}

func (h *apiHandler) apiRefresh(w http.ResponseWriter, r *http.Request) {
	p := h.panelOr404(w, r)
	if p == nil {
		return
	}
	if r.Method == "PUT" {
		var v intValue
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// a rejected rate leaves the display untouched
		if err := p.disp.SetRefreshHz(v.Value); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, intValue{Value: p.disp.RefreshHz()})
}

func (h *apiHandler) apiBrightness(w http.ResponseWriter, r *http.Request) {
	p := h.panelOr404(w, r)
	if p == nil {
		return
	}
	if r.Method == "PUT" {
		var v intValue
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := p.disp.SetBrightness(v.Value); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, intValue{Value: p.disp.Brightness()})
}

// newAPIRouter wires the JSON endpoints; split out so tests can hit the
// router without a listening socket.
func newAPIRouter(handler *apiHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/displays/{name}/digits", handler.apiDigits).Methods("GET", "PUT")
	r.HandleFunc("/api/displays/{name}/refresh", handler.apiRefresh).Methods("GET", "PUT")
	r.HandleFunc("/api/displays/{name}/brightness", handler.apiBrightness).Methods("GET", "PUT")
	return r
}

type httpConfigService struct {
	srv *http.Server
}

func (h *httpConfigService) launch(handler *apiHandler, addr string) {
	h.srv = &http.Server{Addr: addr, Handler: newAPIRouter(handler)}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("starting config service http server")
		err := h.srv.ListenAndServe()
		log.Print(err)
		log.Print("Exiting config service")
	}()
}

func (h *httpConfigService) stop() {
	h.srv.Shutdown(context.Background())
}

func runConfigService(rt *runtimeConfig) {
	defer wg.Done()

	var svc httpConfigService
	svc.launch(&apiHandler{rt: rt}, rt.settings.GetString(sListen))
	<-rt.comms.quit
	svc.stop()
}
