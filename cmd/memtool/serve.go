package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/quickwritereader/memdomain/layout"
	"github.com/quickwritereader/memdomain/storage"
	"github.com/quickwritereader/memdomain/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// inspector answers read-only queries about one restored image.
type inspector struct {
	tgt    *storage.Target
	layout *layout.Layout
}

type blockReply struct {
	Domain string `json:"domain"`
	Addr   int    `json:"addr"`
	Data   string `json:"data"`
}

type valueReply struct {
	Domain string `json:"domain"`
	Addr   int    `json:"addr"`
	Width  string `json:"width"`
	Value  string `json:"value"`
}

func newInspectRouter(tgt *storage.Target, l *layout.Layout) *mux.Router {
	in := &inspector{tgt: tgt, layout: l}

	r := mux.NewRouter()
	r.HandleFunc("/api/device", in.device).Methods(http.MethodGet)
	r.HandleFunc("/api/symbols", in.symbols).Methods(http.MethodGet)
	r.HandleFunc("/api/symbol/{name}", in.symbol).Methods(http.MethodGet)
	r.HandleFunc("/api/{domain}/{addr}", in.block).Methods(http.MethodGet)
	r.HandleFunc("/api/{domain}/{addr}/{width}", in.value).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("reply failed", slog.Any("err", err))
	}
}

func (in *inspector) device(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, in.tgt.Config())
}

func (in *inspector) symbols(w http.ResponseWriter, r *http.Request) {
	data, err := in.layout.MarshalJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (in *inspector) symbol(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	sym, ok := in.layout.Lookup(name)
	if !ok {
		http.Error(w, fmt.Sprintf("symbol %q not found", name), http.StatusNotFound)
		return
	}
	buf := make([]byte, sym.Size)
	in.tgt.EEPROM.ReadBlock(buf, sym.Addr)
	writeJSON(w, blockReply{Domain: domainEEPROM, Addr: int(sym.Addr), Data: hex.EncodeToString(buf)})
}

// locate checks the {domain} and {addr} variables of a request against the
// domain size; n is the number of bytes the caller will read.
func (in *inspector) locate(w http.ResponseWriter, r *http.Request, n int) (string, types.Address, bool) {
	vars := mux.Vars(r)
	domain := vars["domain"]
	_, size, err := domainOf(in.tgt, domain)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", 0, false
	}
	addr, err := parseAddress(vars["addr"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", 0, false
	}
	if n > size || int(addr) > size-n {
		http.Error(w, fmt.Sprintf("%d bytes at 0x%04X beyond %s of %d bytes", n, uint16(addr), domain, size),
			http.StatusRequestedRangeNotSatisfiable)
		return "", 0, false
	}
	return domain, addr, true
}

func (in *inspector) block(w http.ResponseWriter, r *http.Request) {
	n := 16
	if s := r.URL.Query().Get("len"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			http.Error(w, fmt.Sprintf("len %q", s), http.StatusBadRequest)
			return
		}
		n = v
	}
	domain, addr, ok := in.locate(w, r, n)
	if !ok {
		return
	}
	mem, _, _ := domainOf(in.tgt, domain)
	buf := make([]byte, n)
	mem.ReadBlock(buf, addr)
	writeJSON(w, blockReply{Domain: domain, Addr: int(addr), Data: hex.EncodeToString(buf)})
}

func (in *inspector) value(w http.ResponseWriter, r *http.Request) {
	width, err := parseWidth(mux.Vars(r)["width"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	domain, addr, ok := in.locate(w, r, width.Size())
	if !ok {
		return
	}
	mem, _, _ := domainOf(in.tgt, domain)
	writeJSON(w, valueReply{
		Domain: domain,
		Addr:   int(addr),
		Width:  width.String(),
		Value:  loadValue(mem, domain, addr, width),
	})
}

var serveCmd = &cobra.Command{
	Use:   "serve IMAGE",
	Short: "Serve a read-only JSON view of an image over HTTP.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tgt, l, err := openImage(args[0])
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("listen")
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Handler:           newInspectRouter(tgt, l),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdown)
		}()

		logger.Info("serving image",
			slog.String("path", args[0]),
			slog.String("url", "http://"+listener.Addr().String()+"/api/device"))
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "localhost:0", "Address to listen on")
}
